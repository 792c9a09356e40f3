package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supply-chain-cli/internal/entity"
)

func newMockRepository(t *testing.T) (*SupplyChainRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSupplyChainRepository(db), mock
}

func sampleOrder() entity.NewOrder {
	return entity.NewOrder{
		CustomerID:     3,
		OrderDate:      "2024-05-01",
		ShipDate:       "2024-05-03",
		ShipAddress:    "400 Dock St",
		ShipCity:       "Tacoma",
		ShipPostalCode: "98402",
		ShipCountry:    "USA",
		ProductID:      11,
		Quantity:       4,
		UnitPrice:      decimal.RequireFromString("12.50"),
	}
}

func TestRunReport_QueryShapes(t *testing.T) {
	tests := []struct {
		report   entity.Report
		fragment string
	}{
		{entity.ReportOutOfStock, `WHERE UnitsInStock = 0`},
		{entity.ReportOrdersPerCustomer, `FROM Orders JOIN Customers ON Orders.CustomerID = Customers.CustomerID`},
		{entity.ReportMostExpensivePerOrder, `MAX(p.UnitPrice) AS MaxPrice`},
		{entity.ReportNeverOrdered, `LEFT JOIN OrderDetails ON Products.ProductID = OrderDetails.ProductID WHERE OrderDetails.ProductID IS NULL`},
		{entity.ReportRevenuePerSupplier, `SUM(Products.UnitPrice * OrderDetails.Quantity) AS Revenue`},
	}

	for _, tt := range tests {
		t.Run(tt.report.String(), func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectQuery(regexp.QuoteMeta(tt.fragment)).
				WillReturnRows(sqlmock.NewRows([]string{"c"}))

			result, err := repo.RunReport(context.Background(), tt.report)
			require.NoError(t, err)
			assert.True(t, result.Empty())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunReport_OrdersPerCustomerIsInnerJoin(t *testing.T) {
	assert.NotContains(t, ordersPerCustomerQuery, "LEFT JOIN")
}

func TestRunReport_ConvertsBytes(t *testing.T) {
	repo, mock := newMockRepository(t)
	rows := sqlmock.NewRows([]string{"OrderID", "ProductName", "Quantity", "UnitPrice"}).
		AddRow(int64(1), []byte("Widget"), int64(2), []byte("25.00")).
		AddRow(int64(1), []byte("Gadget"), int64(1), []byte("25.00")).
		AddRow(int64(2), []byte("Sprocket"), nil, []byte("9.99"))
	mock.ExpectQuery(regexp.QuoteMeta("MaxPrices.MaxPrice")).WillReturnRows(rows)

	result, err := repo.RunReport(context.Background(), entity.ReportMostExpensivePerOrder)
	require.NoError(t, err)

	assert.Equal(t, []string{"OrderID", "ProductName", "Quantity", "UnitPrice"}, result.Columns)
	assert.Equal(t, [][]any{
		{int64(1), "Widget", int64(2), "25.00"},
		{int64(1), "Gadget", int64(1), "25.00"},
		{int64(2), "Sprocket", nil, "9.99"},
	}, result.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunReport_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t)
	dbErr := &mysql.MySQLError{Number: 1146, Message: "Table 'supply.Products' doesn't exist"}
	mock.ExpectQuery("Products").WillReturnError(dbErr)

	_, err := repo.RunReport(context.Background(), entity.ReportOutOfStock)
	assert.ErrorIs(t, err, dbErr)
}

func TestRunReport_RowError(t *testing.T) {
	repo, mock := newMockRepository(t)
	rowErr := errors.New("packet truncated")
	rows := sqlmock.NewRows([]string{"ProductName"}).
		AddRow("Chai").
		AddRow("Chang").
		RowError(1, rowErr)
	mock.ExpectQuery("Products").WillReturnRows(rows)

	_, err := repo.RunReport(context.Background(), entity.ReportNeverOrdered)
	assert.ErrorIs(t, err, rowErr)
}

func TestRunReport_UnknownReport(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.RunReport(context.Background(), entity.Report(42))
	assert.EqualError(t, err, "unknown report 42")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_ParameterOrderAndCommit(t *testing.T) {
	repo, mock := newMockRepository(t)
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CALL new_order(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")).
		WithArgs(3, "2024-05-01", "2024-05-03", "400 Dock St", "Tacoma", "98402", "USA", 11, 4, decimal.RequireFromString("12.50")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateOrder(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_RollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepository(t)
	dbErr := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CALL new_order(")).WillReturnError(dbErr)
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_CommitFailure(t *testing.T) {
	repo, mock := newMockRepository(t)
	commitErr := errors.New("commit failed")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CALL new_order(")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(commitErr)

	err := repo.CreateOrder(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, commitErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnitsInStock(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CALL update_units_in_stock(?, ?)")).
		WithArgs(11, 250).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateUnitsInStock(context.Background(), entity.StockUpdate{ProductID: 11, UnitsInStock: 250})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnitsInStock_BeginFailure(t *testing.T) {
	repo, mock := newMockRepository(t)
	beginErr := errors.New("invalid connection")

	mock.ExpectBegin().WillReturnError(beginErr)

	err := repo.UpdateUnitsInStock(context.Background(), entity.StockUpdate{ProductID: 1, UnitsInStock: 1})
	assert.ErrorIs(t, err, beginErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClose(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectClose()

	require.NoError(t, repo.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
