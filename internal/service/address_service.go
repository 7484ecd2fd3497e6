package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/internal/core/ports"
	"deposit-address-service/pkg/apperror"
	"deposit-address-service/pkg/metrics"

	"github.com/rs/zerolog"
)

// AddressServiceDeps holds the collaborators of AddressService.
type AddressServiceDeps struct {
	Accounts   ports.AccountRepository
	Currencies ports.CurrencyRepository
	Wallets    ports.WalletRepository
	Addresses  ports.PaymentAddressRepository
	Resolver   ports.WalletServiceResolver
	Transactor ports.DBTransactor
	EncSvc     ports.EncryptionService
	Retries    ports.RetryScheduler
	Notifier   ports.NotificationPublisher
	Reporter   ports.ErrorReporter
	Metrics    *metrics.Metrics // optional

	WalletTimeout time.Duration // zero disables the bound
	Logger        zerolog.Logger
}

// AddressService implements ports.AddressAssigner: it ensures a coin account
// ends up with exactly one deposit address.
type AddressService struct {
	accounts      ports.AccountRepository
	currencies    ports.CurrencyRepository
	wallets       ports.WalletRepository
	addresses     ports.PaymentAddressRepository
	resolver      ports.WalletServiceResolver
	transactor    ports.DBTransactor
	encSvc        ports.EncryptionService
	retries       ports.RetryScheduler
	notifier      ports.NotificationPublisher
	reporter      ports.ErrorReporter
	metrics       *metrics.Metrics
	walletTimeout time.Duration
	log           zerolog.Logger
}

// NewAddressService creates a new AddressService.
func NewAddressService(d AddressServiceDeps) *AddressService {
	return &AddressService{
		accounts:      d.Accounts,
		currencies:    d.Currencies,
		wallets:       d.Wallets,
		addresses:     d.Addresses,
		resolver:      d.Resolver,
		transactor:    d.Transactor,
		encSvc:        d.EncSvc,
		retries:       d.Retries,
		notifier:      d.Notifier,
		reporter:      d.Reporter,
		metrics:       d.Metrics,
		walletTimeout: d.WalletTimeout,
		log:           d.Logger,
	}
}

// Handle adapts a queued request to Assign.
func (s *AddressService) Handle(ctx context.Context, req domain.AssignmentRequest) error {
	if req.Attempt > 0 {
		s.log.Debug().Int64("account_id", int64(req.AccountID)).Int("attempt", req.Attempt).Msg("retrying deposit address assignment")
	}
	return s.Assign(ctx, int64(req.AccountID))
}

// Assign runs one assignment attempt. Only errors that call for redelivery
// are returned; every other failure is reported and absorbed.
func (s *AddressService) Assign(ctx context.Context, accountID int64) error {
	start := time.Now()
	outcome, err := s.assign(ctx, accountID)
	if s.metrics != nil {
		s.metrics.ObserveAssignment(outcome, time.Since(start))
	}
	if err == nil {
		return nil
	}

	if apperror.IsTransient(err) || ctx.Err() != nil {
		return err
	}
	s.reporter.Report(ctx, err, map[string]any{"account_id": accountID})
	return nil
}

func (s *AddressService) assign(ctx context.Context, accountID int64) (string, error) {
	log := s.log.With().Int64("account_id", accountID).Logger()

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return failureOutcome(err), fmt.Errorf("load account: %w", err)
	}
	if account == nil {
		log.Debug().Msg("account not found, nothing to do")
		return metrics.OutcomeSkipped, nil
	}

	currency, err := s.currencies.GetByID(ctx, account.CurrencyID)
	if err != nil {
		return failureOutcome(err), fmt.Errorf("load currency: %w", err)
	}
	if currency == nil || !currency.IsCoin() {
		log.Debug().Str("currency", account.CurrencyID).Msg("currency needs no deposit address")
		return metrics.OutcomeSkipped, nil
	}
	log = log.With().Str("currency", currency.ID).Logger()

	wallet, err := s.wallets.GetActiveDeposit(ctx, currency.ID)
	if err != nil {
		return failureOutcome(err), fmt.Errorf("load deposit wallet: %w", err)
	}
	if wallet == nil {
		log.Warn().Msgf("unable to generate deposit address: deposit wallet for %s doesn't exist", currency.ID)
		return metrics.OutcomeNoWallet, nil
	}
	log = log.With().Int64("wallet_id", wallet.ID).Logger()

	walletSvc, err := s.resolver.ForWallet(wallet)
	if err != nil {
		log.Warn().Err(err).Str("gateway", wallet.Gateway).Msg("unable to generate deposit address: wallet gateway unavailable")
		return metrics.OutcomeNoWallet, nil
	}

	generated, err := s.checkAndGenerate(ctx, log, account, walletSvc)
	if err != nil {
		if apperror.IsTransient(err) || ctx.Err() != nil {
			return metrics.OutcomeTransient, err
		}
		s.reporter.Report(ctx, err, map[string]any{
			"account_id": account.ID,
			"currency":   currency.ID,
			"wallet_id":  wallet.ID,
		})
	}

	return s.settle(ctx, log, account, currency, generated)
}

// checkAndGenerate holds the row lock from the emptiness check until the new
// address is committed. The deferred rollback releases it on every path.
func (s *AddressService) checkAndGenerate(ctx context.Context, log zerolog.Logger, account *domain.Account, walletSvc ports.WalletService) (bool, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	pa, err := s.addresses.GetByAccountIDForUpdate(ctx, dbTx, account)
	if err != nil {
		return false, fmt.Errorf("lock payment address: %w", err)
	}
	if pa.IsAssigned() {
		log.Debug().Msg("deposit address already assigned")
		return false, nil
	}

	result, err := s.generate(ctx, account, walletSvc)
	if err != nil {
		return false, err
	}

	address := result.Address
	pa.Address = &address
	if result.Secret != "" {
		enc, err := s.encSvc.Encrypt(result.Secret)
		if err != nil {
			return false, apperror.ErrEncryptionFailure(fmt.Errorf("encrypt address secret: %w", err))
		}
		pa.SecretEncrypted = &enc
	}
	pa.Details = domain.MergeDetails(result.Details, pa.Details)

	if err := s.addresses.UpdateAddress(ctx, dbTx, pa); err != nil {
		return false, fmt.Errorf("update payment address: %w", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}

	log.Info().Str("address", address).Str("gateway", walletSvc.Gateway()).Msg("deposit address assigned")
	return true, nil
}

func (s *AddressService) generate(ctx context.Context, account *domain.Account, walletSvc ports.WalletService) (*ports.AddressResult, error) {
	callCtx := ctx
	if s.walletTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.walletTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := walletSvc.CreateAddress(callCtx, account)
	if err == nil && (result == nil || result.Address == "") {
		err = apperror.ErrWalletFailure(errors.New("gateway returned an empty address"))
	}
	if s.metrics != nil {
		s.metrics.ObserveWalletCall(walletSvc.Gateway(), err, time.Since(start))
	}
	if err != nil {
		return nil, walletError(ctx, err)
	}
	return result, nil
}

// settle acts on freshly read state: a missing address schedules a retry, a
// present one is announced to its owner.
func (s *AddressService) settle(ctx context.Context, log zerolog.Logger, account *domain.Account, currency *domain.Currency, generated bool) (string, error) {
	pa, err := s.addresses.GetByAccountID(ctx, account.ID)
	if err != nil {
		return failureOutcome(err), fmt.Errorf("reload payment address: %w", err)
	}

	if !pa.IsAssigned() {
		if err := s.retries.RequestRetry(ctx, account.ID); err != nil {
			s.reporter.Report(ctx, err, map[string]any{"account_id": account.ID, "currency": currency.ID})
		}
		return metrics.OutcomeRetry, nil
	}

	event := domain.NewDepositAddressCreated(currency, pa.AddressValue())
	if err := s.notifier.PublishDepositAddress(ctx, account.MemberUID, event); err != nil {
		s.reporter.Report(ctx, err, map[string]any{"account_id": account.ID, "currency": currency.ID})
	} else {
		log.Debug().Msg("deposit address notification published")
		if s.metrics != nil {
			s.metrics.NotificationPublished()
		}
	}

	if err := s.retries.Reset(ctx, account.ID); err != nil {
		log.Warn().Err(err).Msg("clearing retry state failed")
	}

	if generated {
		return metrics.OutcomeAssigned, nil
	}
	return metrics.OutcomeAlreadyAssigned, nil
}

// walletError classifies a gateway failure. Cancellation of the caller's
// context is passed through untouched.
func walletError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("wallet call interrupted: %w", ctx.Err())
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrWalletTimeout(err)
	}
	return apperror.ErrWalletFailure(err)
}

func failureOutcome(err error) string {
	if apperror.IsTransient(err) {
		return metrics.OutcomeTransient
	}
	return metrics.OutcomeFailed
}
