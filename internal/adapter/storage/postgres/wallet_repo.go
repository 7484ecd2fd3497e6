package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"deposit-address-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// GetActiveDeposit returns the active deposit wallet for a currency. When
// several qualify the oldest one wins.
func (r *WalletRepo) GetActiveDeposit(ctx context.Context, currencyID string) (*domain.Wallet, error) {
	query := `SELECT id, name, currency_id, kind, gateway, status, settings
		FROM wallets
		WHERE currency_id = $1 AND kind = $2 AND status = $3
		ORDER BY id LIMIT 1`

	w := &domain.Wallet{}
	var settings []byte
	err := r.pool.QueryRow(ctx, query, currencyID, domain.WalletKindDeposit, domain.WalletStatusActive).Scan(
		&w.ID, &w.Name, &w.CurrencyID, &w.Kind, &w.Gateway, &w.Status, &settings,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get active deposit wallet", err)
	}

	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &w.Settings); err != nil {
			return nil, fmt.Errorf("decode settings of wallet %d: %w", w.ID, err)
		}
	}
	return w, nil
}
