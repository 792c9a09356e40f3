package apperrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		connection bool
	}{
		{
			name:       "bad connection",
			err:        driver.ErrBadConn,
			connection: true,
		},
		{
			name:       "invalid mysql connection",
			err:        fmt.Errorf("exec: %w", mysql.ErrInvalidConn),
			connection: true,
		},
		{
			name:       "network failure",
			err:        &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			connection: true,
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			connection: true,
		},
		{
			name:       "constraint violation",
			err:        &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"},
			connection: false,
		},
		{
			name:       "unknown procedure",
			err:        errors.New("PROCEDURE supply.new_order does not exist"),
			connection: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("calling new_order", tt.err)
			require.Error(t, err)

			assert.Equal(t, tt.connection, IsConnection(err))
			assert.Equal(t, !tt.connection, IsQueryExecution(err))
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "calling new_order")
		})
	}
}

func TestClassify_KeepsMySQLError(t *testing.T) {
	original := &mysql.MySQLError{Number: 1644, Message: "insufficient stock"}

	err := Classify("calling update_units_in_stock", original)

	var myErr *mysql.MySQLError
	require.ErrorAs(t, err, &myErr)
	assert.Equal(t, uint16(1644), myErr.Number)
}

func TestClassify_Idempotent(t *testing.T) {
	first := Classify("report", driver.ErrBadConn)
	second := Classify("session", first)

	assert.Same(t, first, second)
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify("noop", nil))
}
