package service

import (
	"context"
	"fmt"
	"strings"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/internal/core/ports"
	"deposit-address-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// DepositAddressServiceImpl implements ports.DepositAddressService.
type DepositAddressServiceImpl struct {
	accounts   ports.AccountRepository
	currencies ports.CurrencyRepository
	addresses  ports.PaymentAddressRepository
	queue      ports.AssignmentQueue
	guard      ports.EnqueueGuard
	log        zerolog.Logger
}

// NewDepositAddressService creates a new DepositAddressServiceImpl.
func NewDepositAddressService(
	accounts ports.AccountRepository,
	currencies ports.CurrencyRepository,
	addresses ports.PaymentAddressRepository,
	queue ports.AssignmentQueue,
	guard ports.EnqueueGuard,
	log zerolog.Logger,
) *DepositAddressServiceImpl {
	return &DepositAddressServiceImpl{
		accounts:   accounts,
		currencies: currencies,
		addresses:  addresses,
		queue:      queue,
		guard:      guard,
		log:        log,
	}
}

// Lookup returns the member's address for a currency. While it is missing
// an assignment is requested, at most once per guard cooldown.
func (s *DepositAddressServiceImpl) Lookup(ctx context.Context, memberUID string, currencyID string) (*ports.DepositAddressView, error) {
	currencyID = strings.ToLower(currencyID)

	currency, err := s.currencies.GetByID(ctx, currencyID)
	if err != nil {
		return nil, asAppError(fmt.Errorf("load currency: %w", err))
	}
	if currency == nil {
		return nil, apperror.ErrNotFound("currency")
	}
	if !currency.IsCoin() {
		return nil, apperror.ErrFiatCurrency(currency.ID)
	}

	account, err := s.accounts.GetByMemberUID(ctx, memberUID, currency.ID)
	if err != nil {
		return nil, asAppError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}

	pa, err := s.addresses.GetByAccountID(ctx, account.ID)
	if err != nil {
		return nil, asAppError(fmt.Errorf("load payment address: %w", err))
	}
	if pa.IsAssigned() {
		return &ports.DepositAddressView{
			Currency: currency.Code(),
			Address:  pa.AddressValue(),
			State:    ports.DepositAddressActive,
		}, nil
	}

	if err := s.requestAssignment(ctx, account.ID); err != nil {
		return nil, err
	}
	return &ports.DepositAddressView{
		Currency: currency.Code(),
		State:    ports.DepositAddressPending,
	}, nil
}

func (s *DepositAddressServiceImpl) requestAssignment(ctx context.Context, accountID int64) error {
	claimed, err := s.guard.Claim(ctx, accountID)
	if err != nil {
		// Enqueue anyway; duplicate requests are no-ops for the worker.
		s.log.Warn().Err(err).Int64("account_id", accountID).Msg("enqueue guard unavailable")
		claimed = true
	}
	if !claimed {
		return nil
	}

	if err := s.queue.Enqueue(ctx, domain.AssignmentRequest{AccountID: domain.AccountRef(accountID)}); err != nil {
		if relErr := s.guard.Release(ctx, accountID); relErr != nil {
			s.log.Warn().Err(relErr).Int64("account_id", accountID).Msg("releasing enqueue claim")
		}
		return asAppError(err)
	}

	s.log.Info().Int64("account_id", accountID).Msg("deposit address assignment requested")
	return nil
}

// asAppError keeps classified errors and hides the rest behind SYS_000.
func asAppError(err error) error {
	if apperror.KindOf(err) != apperror.KindInternal {
		return err
	}
	return apperror.InternalError(err)
}
