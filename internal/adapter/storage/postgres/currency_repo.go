package postgres

import (
	"context"
	"errors"

	"deposit-address-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CurrencyRepo implements ports.CurrencyRepository.
type CurrencyRepo struct {
	pool Pool
}

// NewCurrencyRepo creates a new CurrencyRepo.
func NewCurrencyRepo(pool Pool) *CurrencyRepo {
	return &CurrencyRepo{pool: pool}
}

// GetByID fetches a currency by its code.
func (r *CurrencyRepo) GetByID(ctx context.Context, id string) (*domain.Currency, error) {
	query := `SELECT id, name, type FROM currencies WHERE id = $1`

	c := &domain.Currency{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get currency by id", err)
	}
	return c, nil
}
