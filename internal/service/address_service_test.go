package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/internal/core/ports"
	"deposit-address-service/internal/core/ports/mocks"
	"deposit-address-service/pkg/apperror"
	"deposit-address-service/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type addressTestDeps struct {
	svc        *AddressService
	accounts   *mocks.MockAccountRepository
	currencies *mocks.MockCurrencyRepository
	wallets    *mocks.MockWalletRepository
	addresses  *mocks.MockPaymentAddressRepository
	resolver   *mocks.MockWalletServiceResolver
	walletSvc  *mocks.MockWalletService
	transactor *mocks.MockDBTransactor
	encSvc     *mocks.MockEncryptionService
	retries    *mocks.MockRetryScheduler
	notifier   *mocks.MockNotificationPublisher
	reporter   *mocks.MockErrorReporter
	logs       *bytes.Buffer
	ctrl       *gomock.Controller
}

func setupAddressService(t *testing.T) *addressTestDeps {
	ctrl := gomock.NewController(t)
	d := &addressTestDeps{
		accounts:   mocks.NewMockAccountRepository(ctrl),
		currencies: mocks.NewMockCurrencyRepository(ctrl),
		wallets:    mocks.NewMockWalletRepository(ctrl),
		addresses:  mocks.NewMockPaymentAddressRepository(ctrl),
		resolver:   mocks.NewMockWalletServiceResolver(ctrl),
		walletSvc:  mocks.NewMockWalletService(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		encSvc:     mocks.NewMockEncryptionService(ctrl),
		retries:    mocks.NewMockRetryScheduler(ctrl),
		notifier:   mocks.NewMockNotificationPublisher(ctrl),
		reporter:   mocks.NewMockErrorReporter(ctrl),
		logs:       &bytes.Buffer{},
		ctrl:       ctrl,
	}
	d.walletSvc.EXPECT().Gateway().Return("hd").AnyTimes()
	d.svc = NewAddressService(AddressServiceDeps{
		Accounts:   d.accounts,
		Currencies: d.currencies,
		Wallets:    d.wallets,
		Addresses:  d.addresses,
		Resolver:   d.resolver,
		Transactor: d.transactor,
		EncSvc:     d.encSvc,
		Retries:    d.retries,
		Notifier:   d.notifier,
		Reporter:   d.reporter,
		Logger:     logger.NewWithWriter("debug", d.logs),
	})
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (m *mockTx) Rollback(_ context.Context) error {
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

func (m *mockTx) Commit(_ context.Context) error {
	m.committed = true
	return nil
}

func strPtr(s string) *string { return &s }

var (
	btc        = &domain.Currency{ID: "btc", Name: "Bitcoin", Type: domain.CurrencyTypeCoin}
	usd        = &domain.Currency{ID: "usd", Name: "US Dollar", Type: domain.CurrencyTypeFiat}
	btcDeposit = &domain.Wallet{ID: 2, CurrencyID: "btc", Kind: domain.WalletKindDeposit, Gateway: "hd", Status: domain.WalletStatusActive}
)

func btcAccount(id int64) *domain.Account {
	return &domain.Account{ID: id, MemberID: 1, MemberUID: "ID0000000001", CurrencyID: "btc"}
}

// expectWalletResolved sets up the path up to the wallet lookup.
func (d *addressTestDeps) expectWalletResolved(ctx context.Context, account *domain.Account) {
	d.accounts.EXPECT().GetByID(ctx, account.ID).Return(account, nil)
	d.currencies.EXPECT().GetByID(ctx, "btc").Return(btc, nil)
	d.wallets.EXPECT().GetActiveDeposit(ctx, "btc").Return(btcDeposit, nil)
	d.resolver.EXPECT().ForWallet(btcDeposit).Return(d.walletSvc, nil)
}

func TestAddressService_Assign_GeneratesAndNotifies(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(124)
	tx := &mockTx{}

	d.expectWalletResolved(ctx, account)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.addresses.EXPECT().GetByAccountIDForUpdate(ctx, tx, account).
		Return(&domain.PaymentAddress{ID: 10, AccountID: 124, Details: domain.Details{}}, nil)
	d.walletSvc.EXPECT().CreateAddress(gomock.Any(), account).
		Return(&ports.AddressResult{Address: "1abc", Secret: "privkey", Details: domain.Details{"path": "m/0"}}, nil)
	d.encSvc.EXPECT().Encrypt("privkey").Return("enc(privkey)", nil)
	d.addresses.EXPECT().UpdateAddress(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, pa *domain.PaymentAddress) error {
			assert.Equal(t, "1abc", pa.AddressValue())
			assert.Equal(t, "enc(privkey)", *pa.SecretEncrypted)
			assert.Equal(t, "m/0", pa.Details["path"])
			return nil
		})
	d.addresses.EXPECT().GetByAccountID(ctx, int64(124)).
		Return(&domain.PaymentAddress{ID: 10, AccountID: 124, Address: strPtr("1abc")}, nil)
	d.notifier.EXPECT().PublishDepositAddress(ctx, "ID0000000001", domain.DepositAddressEvent{
		Type: "deposit_address", Action: "create", Currency: "btc", Address: "1abc",
	}).Return(nil)
	d.retries.EXPECT().Reset(ctx, int64(124)).Return(nil)

	require.NoError(t, d.svc.Assign(ctx, 124))
	assert.True(t, tx.committed)
}

// Scenario A123: no active deposit wallet for the currency.
func TestAddressService_Assign_NoDepositWallet(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(123)

	d.accounts.EXPECT().GetByID(ctx, int64(123)).Return(account, nil)
	d.currencies.EXPECT().GetByID(ctx, "btc").Return(btc, nil)
	d.wallets.EXPECT().GetActiveDeposit(ctx, "btc").Return(nil, nil)

	require.NoError(t, d.svc.Assign(ctx, 123))
	assert.Contains(t, d.logs.String(), "deposit wallet for btc doesn't exist")
	assert.Contains(t, d.logs.String(), `"level":"warn"`)
}

func TestAddressService_Assign_AccountMissing(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()

	d.accounts.EXPECT().GetByID(ctx, int64(999)).Return(nil, nil)

	assert.NoError(t, d.svc.Assign(ctx, 999))
}

func TestAddressService_Assign_FiatIsSkipped(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()

	d.accounts.EXPECT().GetByID(ctx, int64(5)).Return(&domain.Account{ID: 5, CurrencyID: "usd"}, nil)
	d.currencies.EXPECT().GetByID(ctx, "usd").Return(usd, nil)

	assert.NoError(t, d.svc.Assign(ctx, 5))
}

func TestAddressService_Assign_UnsupportedGateway(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(7)

	d.accounts.EXPECT().GetByID(ctx, int64(7)).Return(account, nil)
	d.currencies.EXPECT().GetByID(ctx, "btc").Return(btc, nil)
	d.wallets.EXPECT().GetActiveDeposit(ctx, "btc").Return(btcDeposit, nil)
	d.resolver.EXPECT().ForWallet(btcDeposit).Return(nil, apperror.ErrUnsupportedGateway("hd"))

	assert.NoError(t, d.svc.Assign(ctx, 7))
	assert.Contains(t, d.logs.String(), "wallet gateway unavailable")
}

func TestAddressService_Assign_AlreadyAssignedSkipsWallet(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(8)
	tx := &mockTx{}

	d.expectWalletResolved(ctx, account)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.addresses.EXPECT().GetByAccountIDForUpdate(ctx, tx, account).
		Return(&domain.PaymentAddress{ID: 1, AccountID: 8, Address: strPtr("1xyz")}, nil)
	d.addresses.EXPECT().GetByAccountID(ctx, int64(8)).
		Return(&domain.PaymentAddress{ID: 1, AccountID: 8, Address: strPtr("1xyz")}, nil)
	d.notifier.EXPECT().PublishDepositAddress(ctx, account.MemberUID, gomock.Any()).Return(nil)
	d.retries.EXPECT().Reset(ctx, int64(8)).Return(nil)

	require.NoError(t, d.svc.Assign(ctx, 8))
	assert.True(t, tx.rolledBack, "lock is released without a write")
}

func TestAddressService_Assign_WalletFailureSchedulesRetry(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(9)
	tx := &mockTx{}

	d.expectWalletResolved(ctx, account)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.addresses.EXPECT().GetByAccountIDForUpdate(ctx, tx, account).
		Return(&domain.PaymentAddress{ID: 1, AccountID: 9}, nil)
	d.walletSvc.EXPECT().CreateAddress(gomock.Any(), account).Return(nil, errors.New("node unreachable"))
	d.reporter.EXPECT().Report(ctx, gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, err error, fields map[string]any) {
			assert.Equal(t, apperror.KindGeneration, apperror.KindOf(err))
			assert.Equal(t, int64(9), fields["account_id"])
			assert.Equal(t, int64(2), fields["wallet_id"])
		})
	d.addresses.EXPECT().GetByAccountID(ctx, int64(9)).Return(&domain.PaymentAddress{ID: 1, AccountID: 9}, nil)
	d.retries.EXPECT().RequestRetry(ctx, int64(9)).Return(nil)

	require.NoError(t, d.svc.Assign(ctx, 9))
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestAddressService_Assign_EmptyAddressIsAFailure(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(10)
	tx := &mockTx{}

	d.expectWalletResolved(ctx, account)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.addresses.EXPECT().GetByAccountIDForUpdate(ctx, tx, account).Return(&domain.PaymentAddress{ID: 1}, nil)
	d.walletSvc.EXPECT().CreateAddress(gomock.Any(), account).Return(&ports.AddressResult{}, nil)
	d.reporter.EXPECT().Report(ctx, gomock.Any(), gomock.Any())
	d.addresses.EXPECT().GetByAccountID(ctx, int64(10)).Return(&domain.PaymentAddress{ID: 1}, nil)
	d.retries.EXPECT().RequestRetry(ctx, int64(10)).Return(nil)

	require.NoError(t, d.svc.Assign(ctx, 10))
}

func TestAddressService_Assign_TransientStoreErrorIsReturned(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(11)

	d.expectWalletResolved(ctx, account)
	d.transactor.EXPECT().Begin(ctx).Return(nil, apperror.ErrStoreUnavailable(errors.New("connection refused")))

	err := d.svc.Assign(ctx, 11)
	require.Error(t, err)
	assert.True(t, apperror.IsTransient(err))
}

func TestAddressService_Assign_TransientLookupIsReturned(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()

	d.accounts.EXPECT().GetByID(ctx, int64(12)).Return(nil, apperror.ErrStoreUnavailable(errors.New("too many connections")))

	err := d.svc.Assign(ctx, 12)
	assert.True(t, apperror.IsTransient(err))
}

func TestAddressService_Assign_NonTransientLookupIsReported(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()

	d.accounts.EXPECT().GetByID(ctx, int64(13)).Return(nil, errors.New("column does not exist"))
	d.reporter.EXPECT().Report(ctx, gomock.Any(), map[string]any{"account_id": int64(13)})

	assert.NoError(t, d.svc.Assign(ctx, 13))
}

func TestAddressService_Assign_EncryptionFailureIsReported(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(14)
	tx := &mockTx{}

	d.expectWalletResolved(ctx, account)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.addresses.EXPECT().GetByAccountIDForUpdate(ctx, tx, account).Return(&domain.PaymentAddress{ID: 1}, nil)
	d.walletSvc.EXPECT().CreateAddress(gomock.Any(), account).Return(&ports.AddressResult{Address: "1abc", Secret: "k"}, nil)
	d.encSvc.EXPECT().Encrypt("k").Return("", errors.New("entropy exhausted"))
	d.reporter.EXPECT().Report(ctx, gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, err error, _ map[string]any) {
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "SYS_003", appErr.Code)
		})
	d.addresses.EXPECT().GetByAccountID(ctx, int64(14)).Return(&domain.PaymentAddress{ID: 1}, nil)
	d.retries.EXPECT().RequestRetry(ctx, int64(14)).Return(nil)

	require.NoError(t, d.svc.Assign(ctx, 14))
	assert.False(t, tx.committed)
}

func TestAddressService_Assign_NotificationFailureIsReported(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(15)
	tx := &mockTx{}

	d.expectWalletResolved(ctx, account)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.addresses.EXPECT().GetByAccountIDForUpdate(ctx, tx, account).Return(&domain.PaymentAddress{ID: 1, Address: strPtr("1abc")}, nil)
	d.addresses.EXPECT().GetByAccountID(ctx, int64(15)).Return(&domain.PaymentAddress{ID: 1, Address: strPtr("1abc")}, nil)
	d.notifier.EXPECT().PublishDepositAddress(ctx, account.MemberUID, gomock.Any()).
		Return(apperror.ErrNotification(errors.New("channel closed")))
	d.reporter.EXPECT().Report(ctx, gomock.Any(), gomock.Any())
	d.retries.EXPECT().Reset(ctx, int64(15)).Return(nil)

	require.NoError(t, d.svc.Assign(ctx, 15))
}

func TestAddressService_Assign_RetryFailureIsReported(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()
	account := btcAccount(16)
	tx := &mockTx{}

	d.expectWalletResolved(ctx, account)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.addresses.EXPECT().GetByAccountIDForUpdate(ctx, tx, account).Return(&domain.PaymentAddress{ID: 1}, nil)
	d.walletSvc.EXPECT().CreateAddress(gomock.Any(), account).Return(nil, apperror.ErrWalletUnavailable(errors.New("open")))
	d.addresses.EXPECT().GetByAccountID(ctx, int64(16)).Return(&domain.PaymentAddress{ID: 1}, nil)
	d.retries.EXPECT().RequestRetry(ctx, int64(16)).Return(apperror.ErrRetrySchedule(errors.New("redis down")))
	d.reporter.EXPECT().Report(ctx, gomock.Any(), gomock.Any()).Times(2)

	require.NoError(t, d.svc.Assign(ctx, 16))
}

func TestAddressService_Handle(t *testing.T) {
	d := setupAddressService(t)
	ctx := context.Background()

	d.accounts.EXPECT().GetByID(ctx, int64(17)).Return(nil, nil)

	require.NoError(t, d.svc.Handle(ctx, domain.AssignmentRequest{AccountID: 17, Attempt: 2}))
	assert.Contains(t, d.logs.String(), `"attempt":2`)
}

func TestWalletError(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, apperror.KindGeneration, apperror.KindOf(walletError(ctx, errors.New("boom"))))

	timeout := walletError(ctx, context.DeadlineExceeded)
	var appErr *apperror.AppError
	require.True(t, errors.As(timeout, &appErr))
	assert.Equal(t, "ADDR_012", appErr.Code)

	unavailable := apperror.ErrWalletUnavailable(errors.New("open"))
	assert.Same(t, unavailable, walletError(ctx, unavailable))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, walletError(cancelled, errors.New("x")), context.Canceled)
}

