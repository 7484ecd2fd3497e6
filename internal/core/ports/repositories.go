package ports

import (
	"context"

	"deposit-address-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// AccountRepository reads accounts. Returns nil, nil when absent.
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByMemberUID(ctx context.Context, uid string, currencyID string) (*domain.Account, error)
}

// CurrencyRepository reads currency reference data.
type CurrencyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Currency, error)
}

// WalletRepository reads wallet configuration.
type WalletRepository interface {
	// GetActiveDeposit returns the active deposit wallet of a currency, or nil.
	GetActiveDeposit(ctx context.Context, currencyID string) (*domain.Wallet, error)
}

// PaymentAddressRepository defines persistence operations for payment addresses.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type PaymentAddressRepository interface {
	GetByAccountID(ctx context.Context, accountID int64) (*domain.PaymentAddress, error)
	// GetByAccountIDForUpdate creates the row when missing and locks it until tx ends.
	GetByAccountIDForUpdate(ctx context.Context, tx pgx.Tx, account *domain.Account) (*domain.PaymentAddress, error)
	// UpdateAddress persists address, secret and details; it refuses to
	// overwrite an address that is already set.
	UpdateAddress(ctx context.Context, tx pgx.Tx, pa *domain.PaymentAddress) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
