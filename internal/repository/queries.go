package repository

import "supply-chain-cli/internal/entity"

const (
	outOfStockQuery = `
		SELECT ProductName
		FROM Products
		WHERE UnitsInStock = 0`

	// Inner join: customers without orders are not listed.
	ordersPerCustomerQuery = `
		SELECT Customers.CustomerName, COUNT(Orders.OrderID) AS TotalOrders
		FROM Orders
		JOIN Customers ON Orders.CustomerID = Customers.CustomerID
		GROUP BY Customers.CustomerID, Customers.CustomerName
		ORDER BY Customers.CustomerID`

	// Every line item priced at its order's maximum is returned, ties included.
	mostExpensivePerOrderQuery = `
		SELECT OrderDetails.OrderID, Products.ProductName, OrderDetails.Quantity, Products.UnitPrice
		FROM OrderDetails
		JOIN Products ON Products.ProductID = OrderDetails.ProductID
		INNER JOIN (
			SELECT od.OrderID, MAX(p.UnitPrice) AS MaxPrice
			FROM OrderDetails od
			JOIN Products p ON p.ProductID = od.ProductID
			GROUP BY od.OrderID
		) AS MaxPrices ON OrderDetails.OrderID = MaxPrices.OrderID AND Products.UnitPrice = MaxPrices.MaxPrice
		ORDER BY OrderDetails.OrderID, Products.ProductID`

	neverOrderedQuery = `
		SELECT Products.ProductName
		FROM Products
		LEFT JOIN OrderDetails ON Products.ProductID = OrderDetails.ProductID
		WHERE OrderDetails.ProductID IS NULL`

	revenuePerSupplierQuery = `
		SELECT Products.SupplierID, SUM(Products.UnitPrice * OrderDetails.Quantity) AS Revenue
		FROM OrderDetails
		JOIN Products ON Products.ProductID = OrderDetails.ProductID
		GROUP BY Products.SupplierID
		ORDER BY Products.SupplierID`

	newOrderCall           = `CALL new_order(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateUnitsInStockCall = `CALL update_units_in_stock(?, ?)`
)

var reportQueries = map[entity.Report]string{
	entity.ReportOutOfStock:            outOfStockQuery,
	entity.ReportOrdersPerCustomer:     ordersPerCustomerQuery,
	entity.ReportMostExpensivePerOrder: mostExpensivePerOrderQuery,
	entity.ReportNeverOrdered:          neverOrderedQuery,
	entity.ReportRevenuePerSupplier:    revenuePerSupplierQuery,
}
