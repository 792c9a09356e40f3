package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
)

// supplyChainSchema mirrors the tables and stored procedures the client is
// pointed at in production. It exists only so integration tests have a
// database to run against.
var supplyChainSchema = []string{
	`CREATE TABLE IF NOT EXISTS Suppliers (
		SupplierID INT AUTO_INCREMENT PRIMARY KEY,
		SupplierName VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Products (
		ProductID INT AUTO_INCREMENT PRIMARY KEY,
		ProductName VARCHAR(255) NOT NULL,
		UnitPrice DECIMAL(10,2) NOT NULL,
		UnitsInStock INT NOT NULL DEFAULT 0 CHECK (UnitsInStock >= 0),
		SupplierID INT NOT NULL,
		FOREIGN KEY (SupplierID) REFERENCES Suppliers(SupplierID)
	)`,
	`CREATE TABLE IF NOT EXISTS Customers (
		CustomerID INT AUTO_INCREMENT PRIMARY KEY,
		CustomerName VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Orders (
		OrderID INT AUTO_INCREMENT PRIMARY KEY,
		CustomerID INT NOT NULL,
		OrderDate DATE NOT NULL,
		ShipDate DATE NOT NULL,
		ShipAddress VARCHAR(255) NOT NULL,
		ShipCity VARCHAR(100) NOT NULL,
		ShipPostalCode VARCHAR(20) NOT NULL,
		ShipCountry VARCHAR(100) NOT NULL,
		FOREIGN KEY (CustomerID) REFERENCES Customers(CustomerID)
	)`,
	`CREATE TABLE IF NOT EXISTS OrderDetails (
		OrderID INT NOT NULL,
		ProductID INT NOT NULL,
		Quantity INT NOT NULL,
		UnitPrice DECIMAL(10,2) NOT NULL,
		PRIMARY KEY (OrderID, ProductID),
		FOREIGN KEY (OrderID) REFERENCES Orders(OrderID) ON DELETE CASCADE,
		FOREIGN KEY (ProductID) REFERENCES Products(ProductID)
	)`,
	`DROP PROCEDURE IF EXISTS new_order`,
	`CREATE PROCEDURE new_order(
		IN p_CustomerID INT,
		IN p_OrderDate DATE,
		IN p_ShipDate DATE,
		IN p_ShipAddress VARCHAR(255),
		IN p_ShipCity VARCHAR(100),
		IN p_ShipPostalCode VARCHAR(20),
		IN p_ShipCountry VARCHAR(100),
		IN p_ProductID INT,
		IN p_Quantity INT,
		IN p_UnitPrice DECIMAL(10,2)
	)
	BEGIN
		INSERT INTO Orders (CustomerID, OrderDate, ShipDate, ShipAddress, ShipCity, ShipPostalCode, ShipCountry)
		VALUES (p_CustomerID, p_OrderDate, p_ShipDate, p_ShipAddress, p_ShipCity, p_ShipPostalCode, p_ShipCountry);
		INSERT INTO OrderDetails (OrderID, ProductID, Quantity, UnitPrice)
		VALUES (LAST_INSERT_ID(), p_ProductID, p_Quantity, p_UnitPrice);
	END`,
	`DROP PROCEDURE IF EXISTS update_units_in_stock`,
	`CREATE PROCEDURE update_units_in_stock(IN p_ProductID INT, IN p_UnitsInStock INT)
	BEGIN
		UPDATE Products SET UnitsInStock = p_UnitsInStock WHERE ProductID = p_ProductID;
		IF ROW_COUNT() = 0 THEN
			SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'product not found';
		END IF;
	END`,
}

// AutoMigrateSupplyChain creates the supply chain tables and procedures if
// they do not exist.
func AutoMigrateSupplyChain(ctx context.Context, db *sql.DB) error {
	for i, stmt := range supplyChainSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

// ResetSupplyChain empties every table, children first, and restarts the
// auto-increment counters so fixtures can use fixed IDs.
func ResetSupplyChain(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"OrderDetails", "Orders", "Customers", "Products", "Suppliers"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		if table == "OrderDetails" {
			continue
		}
		if _, err := db.ExecContext(ctx, "ALTER TABLE "+table+" AUTO_INCREMENT = 1"); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}
