package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

const paymentAddressColumns = `id, account_id, currency_id, address, secret_encrypted, details, created_at, updated_at`

// PaymentAddressRepo implements ports.PaymentAddressRepository.
type PaymentAddressRepo struct {
	pool Pool
}

// NewPaymentAddressRepo creates a new PaymentAddressRepo.
func NewPaymentAddressRepo(pool Pool) *PaymentAddressRepo {
	return &PaymentAddressRepo{pool: pool}
}

// GetByAccountID fetches the payment address of an account (non-locking read).
func (r *PaymentAddressRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.PaymentAddress, error) {
	query := `SELECT ` + paymentAddressColumns + ` FROM payment_addresses WHERE account_id = $1`

	pa, err := scanPaymentAddress(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get payment address", err)
	}
	return pa, nil
}

// GetByAccountIDForUpdate creates the account's row if needed, then locks it.
// This MUST be called within a transaction; the lock is held until it ends.
func (r *PaymentAddressRepo) GetByAccountIDForUpdate(ctx context.Context, tx pgx.Tx, account *domain.Account) (*domain.PaymentAddress, error) {
	insert := `INSERT INTO payment_addresses (account_id, currency_id, details, created_at, updated_at)
		VALUES ($1, $2, '{}', NOW(), NOW())
		ON CONFLICT (account_id) DO NOTHING`

	if _, err := tx.Exec(ctx, insert, account.ID, account.CurrencyID); err != nil {
		return nil, classify("ensure payment address", err)
	}

	query := `SELECT ` + paymentAddressColumns + ` FROM payment_addresses WHERE account_id = $1 FOR UPDATE`

	pa, err := scanPaymentAddress(tx.QueryRow(ctx, query, account.ID))
	if err != nil {
		return nil, classify("lock payment address", err)
	}
	return pa, nil
}

// UpdateAddress stores a generated address. It never overwrites an address
// that is already set.
func (r *PaymentAddressRepo) UpdateAddress(ctx context.Context, tx pgx.Tx, pa *domain.PaymentAddress) error {
	details, err := json.Marshal(pa.Details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}

	query := `UPDATE payment_addresses
		SET address = $1, secret_encrypted = $2, details = $3, updated_at = NOW()
		WHERE id = $4 AND (address IS NULL OR address = '')`

	tag, err := tx.Exec(ctx, query, pa.Address, pa.SecretEncrypted, details, pa.ID)
	if err != nil {
		return classify("update payment address", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrAddressConflict()
	}
	return nil
}

func scanPaymentAddress(row pgx.Row) (*domain.PaymentAddress, error) {
	pa := &domain.PaymentAddress{}
	var details []byte
	err := row.Scan(
		&pa.ID, &pa.AccountID, &pa.CurrencyID, &pa.Address,
		&pa.SecretEncrypted, &details, &pa.CreatedAt, &pa.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	pa.Details = domain.Details{}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &pa.Details); err != nil {
			return nil, fmt.Errorf("decode details of payment address %d: %w", pa.ID, err)
		}
	}
	return pa, nil
}
