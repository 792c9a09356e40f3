package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewOrder carries the ten positional parameters of the new_order procedure.
type NewOrder struct {
	CustomerID     int             `json:"customer_id"`
	OrderDate      string          `json:"order_date"`
	ShipDate       string          `json:"ship_date"`
	ShipAddress    string          `json:"ship_address"`
	ShipCity       string          `json:"ship_city"`
	ShipPostalCode string          `json:"ship_postal_code"`
	ShipCountry    string          `json:"ship_country"`
	ProductID      int             `json:"product_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// Args returns the procedure parameters in declaration order.
func (o NewOrder) Args() []any {
	return []any{
		o.CustomerID,
		o.OrderDate,
		o.ShipDate,
		o.ShipAddress,
		o.ShipCity,
		o.ShipPostalCode,
		o.ShipCountry,
		o.ProductID,
		o.Quantity,
		o.UnitPrice,
	}
}

// StockUpdate carries the parameters of the update_units_in_stock procedure.
type StockUpdate struct {
	ProductID    int `json:"product_id"`
	UnitsInStock int `json:"units_in_stock"`
}

func (u StockUpdate) Args() []any {
	return []any{u.ProductID, u.UnitsInStock}
}

const (
	EventOrderCreated = "order.created"
	EventStockUpdated = "stock.updated"
)

// Event is emitted after a write operation has been committed.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"-"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

/*
MySQL tables referenced by the tool (owned by the database, not created here):

Products(ProductID, ProductName, UnitPrice, UnitsInStock, SupplierID)
Customers(CustomerID, CustomerName)
Orders(OrderID, CustomerID, OrderDate, ShipDate, ShipAddress, ShipCity, ShipPostalCode, ShipCountry)
OrderDetails(OrderID, ProductID, Quantity)
Suppliers(SupplierID, ...)

Stored procedures:
	new_order(CustomerID, OrderDate, ShipDate, ShipAddress, ShipCity, ShipPostalCode, ShipCountry, ProductID, Quantity, UnitPrice)
	update_units_in_stock(ProductID, UnitsInStock)
*/
