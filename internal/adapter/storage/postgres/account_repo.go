package postgres

import (
	"context"
	"errors"

	"deposit-address-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `a.id, a.member_id, m.uid, a.currency_id`

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// GetByID fetches an account together with its owner's uid.
func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts a JOIN members m ON m.id = a.member_id
		WHERE a.id = $1`

	return r.scanOne(ctx, "get account by id", query, id)
}

// GetByMemberUID fetches the account a member holds in a currency.
func (r *AccountRepo) GetByMemberUID(ctx context.Context, uid string, currencyID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts a JOIN members m ON m.id = a.member_id
		WHERE m.uid = $1 AND a.currency_id = $2`

	return r.scanOne(ctx, "get account by member uid", query, uid, currencyID)
}

func (r *AccountRepo) scanOne(ctx context.Context, op, query string, args ...any) (*domain.Account, error) {
	a := &domain.Account{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.MemberID, &a.MemberUID, &a.CurrencyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(op, err)
	}
	return a, nil
}
