package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderArgs_DeclarationOrder(t *testing.T) {
	order := NewOrder{
		CustomerID:     7,
		OrderDate:      "2024-03-01",
		ShipDate:       "2024-03-04",
		ShipAddress:    "12 Harbor Rd",
		ShipCity:       "Oakland",
		ShipPostalCode: "94607",
		ShipCountry:    "USA",
		ProductID:      42,
		Quantity:       3,
		UnitPrice:      decimal.RequireFromString("19.99"),
	}

	assert.Equal(t, []any{
		7, "2024-03-01", "2024-03-04", "12 Harbor Rd", "Oakland", "94607", "USA",
		42, 3, decimal.RequireFromString("19.99"),
	}, order.Args())
}

func TestStockUpdateArgs(t *testing.T) {
	assert.Equal(t, []any{5, 0}, StockUpdate{ProductID: 5, UnitsInStock: 0}.Args())
}

func TestReportNames(t *testing.T) {
	assert.Len(t, Reports, 5)
	for i, r := range Reports {
		assert.Equal(t, Report(i+1), r)
		assert.NotEqual(t, "unknown", r.String())
		assert.NotEmpty(t, r.Title())
	}
	assert.Equal(t, "unknown", Report(99).String())
}

func TestResultSetEmpty(t *testing.T) {
	var nilSet *ResultSet
	assert.True(t, nilSet.Empty())
	assert.True(t, (&ResultSet{Columns: []string{"ProductName"}}).Empty())
	assert.False(t, (&ResultSet{Columns: []string{"ProductName"}, Rows: [][]any{{"Chai"}}}).Empty())
}
