package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor implements ports.DBTransactor using pgxpool.Pool.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a new Transactor wrapping the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin starts a new database transaction. Connectivity failures on Begin and
// Commit come back as transient application errors.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return nil, classify("begin transaction", err)
	}
	return &classifiedTx{Tx: tx}, nil
}

type classifiedTx struct {
	pgx.Tx
}

func (t *classifiedTx) Commit(ctx context.Context) error {
	return classify("commit transaction", t.Tx.Commit(ctx))
}
