package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/internal/core/ports"
	"deposit-address-service/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

// --- In-Memory Reference Data ---

type inMemoryAccountRepo struct {
	accounts map[int64]*domain.Account
}

func (r *inMemoryAccountRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	return r.accounts[id], nil
}

func (r *inMemoryAccountRepo) GetByMemberUID(_ context.Context, uid string, currencyID string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.MemberUID == uid && a.CurrencyID == currencyID {
			return a, nil
		}
	}
	return nil, nil
}

type inMemoryCurrencyRepo struct {
	currencies map[string]*domain.Currency
}

func (r *inMemoryCurrencyRepo) GetByID(_ context.Context, id string) (*domain.Currency, error) {
	return r.currencies[id], nil
}

type inMemoryWalletRepo struct {
	wallets []*domain.Wallet
}

func (r *inMemoryWalletRepo) GetActiveDeposit(_ context.Context, currencyID string) (*domain.Wallet, error) {
	for _, w := range r.wallets {
		if w.CurrencyID == currencyID && w.IsActiveDeposit() {
			return w, nil
		}
	}
	return nil, nil
}

type staticResolver struct {
	svc ports.WalletService
}

func (r staticResolver) ForWallet(*domain.Wallet) (ports.WalletService, error) {
	return r.svc, nil
}

// --- In-Memory Payment Addresses With Row Locks ---

// inMemoryAddressRepo mimics SELECT ... FOR UPDATE: the lock taken by
// GetByAccountIDForUpdate is held until the memTx commits or rolls back, and
// staged writes become visible only on commit.
type inMemoryAddressRepo struct {
	mu     sync.Mutex
	rows   map[int64]*domain.PaymentAddress
	locks  map[int64]*sync.Mutex
	nextID int64
}

func newInMemoryAddressRepo() *inMemoryAddressRepo {
	return &inMemoryAddressRepo{
		rows:  make(map[int64]*domain.PaymentAddress),
		locks: make(map[int64]*sync.Mutex),
	}
}

func (r *inMemoryAddressRepo) seed(pa *domain.PaymentAddress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	pa.ID = r.nextID
	r.rows[pa.AccountID] = copyAddress(pa)
}

func (r *inMemoryAddressRepo) GetByAccountID(_ context.Context, accountID int64) (*domain.PaymentAddress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyAddress(r.rows[accountID]), nil
}

func (r *inMemoryAddressRepo) GetByAccountIDForUpdate(ctx context.Context, tx pgx.Tx, account *domain.Account) (*domain.PaymentAddress, error) {
	mtx, ok := tx.(*memTx)
	if !ok {
		return nil, fmt.Errorf("unexpected tx %T", tx)
	}

	r.mu.Lock()
	lock, ok := r.locks[account.ID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[account.ID] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	mtx.held = append(mtx.held, lock)

	r.mu.Lock()
	defer r.mu.Unlock()
	pa, ok := r.rows[account.ID]
	if !ok {
		r.nextID++
		pa = &domain.PaymentAddress{ID: r.nextID, AccountID: account.ID, CurrencyID: account.CurrencyID, Details: domain.Details{}}
		r.rows[account.ID] = pa
	}
	return copyAddress(pa), nil
}

func (r *inMemoryAddressRepo) UpdateAddress(_ context.Context, tx pgx.Tx, pa *domain.PaymentAddress) error {
	mtx, ok := tx.(*memTx)
	if !ok {
		return fmt.Errorf("unexpected tx %T", tx)
	}
	r.mu.Lock()
	current := r.rows[pa.AccountID]
	r.mu.Unlock()
	if current.IsAssigned() {
		return apperror.ErrAddressConflict()
	}

	staged := copyAddress(pa)
	mtx.writes = append(mtx.writes, func() { r.rows[staged.AccountID] = staged })
	return nil
}

func (r *inMemoryAddressRepo) apply(writes []func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range writes {
		w()
	}
}

func copyAddress(pa *domain.PaymentAddress) *domain.PaymentAddress {
	if pa == nil {
		return nil
	}
	c := *pa
	if pa.Address != nil {
		a := *pa.Address
		c.Address = &a
	}
	c.Details = domain.MergeDetails(nil, pa.Details)
	return &c
}

type inMemoryTransactor struct {
	repo *inMemoryAddressRepo
}

func (t *inMemoryTransactor) Begin(context.Context) (pgx.Tx, error) {
	return &memTx{repo: t.repo}, nil
}

// memTx is a pgx.Tx whose only meaningful methods are Commit and Rollback.
type memTx struct {
	pgx.Tx
	repo   *inMemoryAddressRepo
	held   []*sync.Mutex
	writes []func()
	done   bool
}

func (t *memTx) Commit(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.repo.apply(t.writes)
	t.release()
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.release()
	return nil
}

func (t *memTx) release() {
	t.done = true
	for _, l := range t.held {
		l.Unlock()
	}
	t.held = nil
}

// --- Wallet Gateways ---

// countingWallet hands out sequential addresses, failing the first failFirst calls.
type countingWallet struct {
	calls     atomic.Int64
	failFirst int64
	delay     time.Duration
	details   domain.Details
}

func (w *countingWallet) CreateAddress(ctx context.Context, account *domain.Account) (*ports.AddressResult, error) {
	n := w.calls.Add(1)
	if w.delay > 0 {
		select {
		case <-time.After(w.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if n <= w.failFirst {
		return nil, errors.New("node unavailable")
	}
	return &ports.AddressResult{
		Address: fmt.Sprintf("addr-%d-%d", account.ID, n),
		Secret:  fmt.Sprintf("secret-%d", n),
		Details: w.details,
	}, nil
}

func (w *countingWallet) Gateway() string { return "counting" }

// --- Recorders ---

type recordingRetries struct {
	mu       sync.Mutex
	requests []int64
	resets   []int64
}

func (r *recordingRetries) RequestRetry(_ context.Context, accountID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, accountID)
	return nil
}

func (r *recordingRetries) Reset(_ context.Context, accountID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets = append(r.resets, accountID)
	return nil
}

func (r *recordingRetries) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.DepositAddressEvent
}

func (n *recordingNotifier) PublishDepositAddress(_ context.Context, _ string, event domain.DepositAddressEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Report(_ context.Context, err error, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}
