package store

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"ordertrack/internal/pkg/errs"
)

// ErrSchemaMismatch is the cause of a StoreError raised for a field the table does not have.
var ErrSchemaMismatch = errors.New("schema mismatch")

// transientClasses are the SQLSTATE classes worth retrying: connection exceptions,
// transaction rollbacks (serialization failures and deadlocks), insufficient resources and
// operator intervention.
var transientClasses = []string{"08", "40", "53", "57"}

// classify wraps err into a StoreError, flagging it transient when a later retry could
// succeed. Nothing is retried here.
func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		return errs.NewTransientStoreError(op, table, err)
	}
	return errs.NewStoreError(op, table, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, class := range transientClasses {
			if strings.HasPrefix(pgErr.Code, class) {
				return true
			}
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsUniqueViolation reports whether err was caused by a duplicate key.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
