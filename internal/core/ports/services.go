package ports

import (
	"context"
	"time"

	"deposit-address-service/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// AddressResult is what a wallet gateway returns for a freshly derived address.
type AddressResult struct {
	Address string
	Secret  string // optional, persisted encrypted
	Details domain.Details
}

// WalletService derives a new deposit address for an account.
type WalletService interface {
	CreateAddress(ctx context.Context, account *domain.Account) (*AddressResult, error)
	Gateway() string
}

// WalletServiceResolver picks the WalletService serving a wallet record.
type WalletServiceResolver interface {
	ForWallet(wallet *domain.Wallet) (WalletService, error)
}

// RetryScheduler re-submits assignment for accounts still missing an address.
// Requests are idempotent: a pending retry absorbs duplicates.
type RetryScheduler interface {
	RequestRetry(ctx context.Context, accountID int64) error
	// Reset forgets the attempt counter once an address exists.
	Reset(ctx context.Context, accountID int64) error
}

// DueRetrySource hands out retries whose delay has elapsed.
type DueRetrySource interface {
	PopDue(ctx context.Context, now time.Time, limit int) ([]domain.AssignmentRequest, error)
	// Defer puts a popped request back, due after delay.
	Defer(ctx context.Context, req domain.AssignmentRequest, delay time.Duration) error
}

// AssignmentQueue submits assignment requests to the worker queue.
type AssignmentQueue interface {
	Enqueue(ctx context.Context, req domain.AssignmentRequest) error
}

// EnqueueGuard throttles on-demand enqueues per account.
type EnqueueGuard interface {
	// Claim returns false while a previous claim is still active.
	Claim(ctx context.Context, accountID int64) (bool, error)
	Release(ctx context.Context, accountID int64) error
}

// NotificationPublisher broadcasts events to a member's private channel.
type NotificationPublisher interface {
	PublishDepositAddress(ctx context.Context, memberUID string, event domain.DepositAddressEvent) error
}

// ErrorReporter is the observability sink for absorbed failures.
type ErrorReporter interface {
	Report(ctx context.Context, err error, fields map[string]any)
}

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// TokenService validates member JWTs issued by the auth provider.
type TokenService interface {
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UID   string
	Email string
}

// --- Service Ports (Business Logic) ---

// AddressAssigner is the queue-facing worker entry point. Only errors that
// must cause redelivery are returned.
type AddressAssigner interface {
	Assign(ctx context.Context, accountID int64) error
}

// DepositAddressView is what a member sees for one currency.
type DepositAddressView struct {
	Currency string
	Address  string
	State    string // "active" or "pending"
}

const (
	DepositAddressActive  = "active"
	DepositAddressPending = "pending"
)

// DepositAddressService serves the member-facing lookup and retriggers
// generation when the address is still missing.
type DepositAddressService interface {
	Lookup(ctx context.Context, memberUID string, currencyID string) (*DepositAddressView, error)
}
