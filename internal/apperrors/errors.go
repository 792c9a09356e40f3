package apperrors

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrConnection     = errors.New("database connection failed")
	ErrQueryExecution = errors.New("query execution failed")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Classify tags err with ErrConnection or ErrQueryExecution depending on
// whether the failure came from the connection itself or from the statement.
// The original error stays reachable through errors.Is / errors.As.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConnection) || errors.Is(err, ErrQueryExecution) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, kindOf(err), err)
}

func kindOf(err error) error {
	var netErr *net.OpError
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return ErrConnection
	default:
		return ErrQueryExecution
	}
}

// IsConnection reports whether err was classified as a connection failure.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsQueryExecution reports whether err was classified as a rejected statement.
func IsQueryExecution(err error) bool {
	return errors.Is(err, ErrQueryExecution)
}
