package postgres

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"deposit-address-service/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// classify wraps err with op and marks connectivity failures as transient so
// the consumer redelivers the request instead of dropping it.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	wrapped := fmt.Errorf("%s: %w", op, err)
	if isConnectionError(err) {
		return apperror.ErrStoreUnavailable(wrapped)
	}
	return wrapped
}

func isConnectionError(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection_exception
			return true
		case pgErr.Code == "57P01", pgErr.Code == "57P02", pgErr.Code == "57P03": // shutdown
			return true
		case pgErr.Code == "53300": // too_many_connections
			return true
		}
		return false
	}

	if pgconn.Timeout(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
