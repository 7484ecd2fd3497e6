package wallet

import (
	"fmt"
	"sync"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/internal/core/ports"
	"deposit-address-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// Factory builds the WalletService serving a wallet record.
type Factory func(w *domain.Wallet) (ports.WalletService, error)

type cachedService struct {
	gateway string
	svc     ports.WalletService
}

// Registry implements ports.WalletServiceResolver. Services are built once
// per wallet and wrapped in a circuit breaker.
type Registry struct {
	breaker BreakerSettings
	log     zerolog.Logger

	mu        sync.RWMutex
	factories map[string]Factory
	services  map[int64]cachedService
}

// NewRegistry creates an empty registry.
func NewRegistry(breaker BreakerSettings, log zerolog.Logger) *Registry {
	return &Registry{
		breaker:   breaker,
		log:       log,
		factories: make(map[string]Factory),
		services:  make(map[int64]cachedService),
	}
}

// Register makes a gateway available.
func (r *Registry) Register(gateway string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[gateway] = f
}

// ForWallet returns the service for w, building it on first use.
func (r *Registry) ForWallet(w *domain.Wallet) (ports.WalletService, error) {
	r.mu.RLock()
	cached, ok := r.services[w.ID]
	r.mu.RUnlock()
	if ok && cached.gateway == w.Gateway {
		return cached.svc, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok = r.services[w.ID]; ok && cached.gateway == w.Gateway {
		return cached.svc, nil
	}

	factory, ok := r.factories[w.Gateway]
	if !ok {
		return nil, apperror.ErrUnsupportedGateway(w.Gateway)
	}
	svc, err := factory(w)
	if err != nil {
		return nil, apperror.ErrGatewayMisconfigured(err)
	}

	name := fmt.Sprintf("wallet-%d-%s", w.ID, w.Gateway)
	wrapped := NewBreakerService(name, svc, r.breaker, r.log)
	r.services[w.ID] = cachedService{gateway: w.Gateway, svc: wrapped}

	r.log.Info().Int64("wallet_id", w.ID).Str("gateway", w.Gateway).Msg("wallet service ready")
	return wrapped, nil
}
