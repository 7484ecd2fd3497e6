package wallet

import (
	"context"
	"fmt"

	"deposit-address-service/config"
	"deposit-address-service/internal/core/domain"
	"deposit-address-service/internal/core/ports"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/rpcclient"
)

// GatewayBitcoind asks a bitcoind node to generate the address.
const GatewayBitcoind = "bitcoind"

type addressRPC interface {
	GetNewAddress(account string) (btcutil.Address, error)
}

// BitcoindService implements ports.WalletService with the node's keypool.
// Keys never leave the node, so no secret is returned.
type BitcoindService struct {
	rpc   addressRPC
	label string
}

// NewBitcoindService creates a service using rpc. label tags new addresses
// in the node wallet.
func NewBitcoindService(rpc addressRPC, label string) *BitcoindService {
	return &BitcoindService{rpc: rpc, label: label}
}

// DialBitcoind creates a JSON-RPC client over HTTP POST.
func DialBitcoind(host, user, password string) (*rpcclient.Client, error) {
	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}

// Gateway returns GatewayBitcoind.
func (s *BitcoindService) Gateway() string { return GatewayBitcoind }

// CreateAddress calls getnewaddress. The rpc client takes no context, so the
// call is abandoned when ctx ends.
func (s *BitcoindService) CreateAddress(ctx context.Context, _ *domain.Account) (*ports.AddressResult, error) {
	type reply struct {
		addr btcutil.Address
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		addr, err := s.rpc.GetNewAddress(s.label)
		done <- reply{addr: addr, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("getnewaddress: %w", r.err)
		}
		return &ports.AddressResult{
			Address: r.addr.EncodeAddress(),
			Details: domain.Details{"label": s.label},
		}, nil
	}
}

// BitcoindFactory builds one client per wallet. Wallet settings "uri",
// "user", "password" and "label" override the defaults in cfg.
func BitcoindFactory(cfg config.BitcoindConfig) Factory {
	return func(w *domain.Wallet) (ports.WalletService, error) {
		host := w.Setting("uri", cfg.Host)
		if host == "" {
			return nil, fmt.Errorf("wallet %d: bitcoind uri not configured", w.ID)
		}
		client, err := DialBitcoind(host, w.Setting("user", cfg.User), w.Setting("password", cfg.Password))
		if err != nil {
			return nil, fmt.Errorf("wallet %d: %w", w.ID, err)
		}
		return NewBitcoindService(client, w.Setting("label", "deposit")), nil
	}
}
