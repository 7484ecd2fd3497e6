package wallet

import (
	"context"
	"errors"
	"time"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/internal/core/ports"
	"deposit-address-service/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the per-wallet circuit breaker.
type BreakerSettings struct {
	MaxFailures uint32        // consecutive failures before opening
	OpenTimeout time.Duration // time spent open before probing again
}

// BreakerService stops calling a failing gateway until it recovers.
type BreakerService struct {
	next ports.WalletService
	cb   *gobreaker.CircuitBreaker[*ports.AddressResult]
}

// NewBreakerService wraps next with a breaker named name.
func NewBreakerService(name string, next ports.WalletService, s BreakerSettings, log zerolog.Logger) *BreakerService {
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = time.Minute
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= s.MaxFailures
		},
		// Shutdown cancellation says nothing about the gateway's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("wallet breaker state changed")
		},
	}
	return &BreakerService{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[*ports.AddressResult](st),
	}
}

// Gateway returns the wrapped gateway's name.
func (b *BreakerService) Gateway() string { return b.next.Gateway() }

// State exposes the breaker state.
func (b *BreakerService) State() gobreaker.State { return b.cb.State() }

// CreateAddress calls the wrapped gateway unless the breaker is open.
func (b *BreakerService) CreateAddress(ctx context.Context, account *domain.Account) (*ports.AddressResult, error) {
	res, err := b.cb.Execute(func() (*ports.AddressResult, error) {
		return b.next.CreateAddress(ctx, account)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, apperror.ErrWalletUnavailable(err)
	}
	return res, err
}
