package repository

import (
	"context"
	"database/sql"
	"fmt"

	"supply-chain-cli/internal/entity"
)

// SupplyChainRepository runs the fixed reports and stored-procedure calls
// over a single database handle owned by the caller.
type SupplyChainRepository struct {
	db *sql.DB
}

func NewSupplyChainRepository(db *sql.DB) *SupplyChainRepository {
	return &SupplyChainRepository{db}
}

// RunReport executes the fixed query behind report and returns its rows
// unmodified.
func (r *SupplyChainRepository) RunReport(ctx context.Context, report entity.Report) (*entity.ResultSet, error) {
	query, ok := reportQueries[report]
	if !ok {
		return nil, fmt.Errorf("unknown report %d", int(report))
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	result := &entity.ResultSet{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		// MySQL hands back VARCHAR, DECIMAL and DATE columns as raw bytes
		for i, val := range values {
			if b, ok := val.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// CreateOrder calls new_order with the ten order parameters and commits.
func (r *SupplyChainRepository) CreateOrder(ctx context.Context, order entity.NewOrder) error {
	return r.call(ctx, newOrderCall, order.Args()...)
}

// UpdateUnitsInStock calls update_units_in_stock and commits.
func (r *SupplyChainRepository) UpdateUnitsInStock(ctx context.Context, update entity.StockUpdate) error {
	return r.call(ctx, updateUnitsInStockCall, update.Args()...)
}

// Close releases the underlying connection.
func (r *SupplyChainRepository) Close() error {
	return r.db.Close()
}

// call runs one stored procedure as its own transaction.
func (r *SupplyChainRepository) call(ctx context.Context, query string, args ...any) error {
	// Start a transaction
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, query, args...)
	if err != nil {
		tx.Rollback()
		return err
	}

	// Commit the transaction
	err = tx.Commit()
	if err != nil {
		return err
	}

	return nil
}
