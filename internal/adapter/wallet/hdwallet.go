// Package wallet holds the gateways that derive deposit addresses.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/internal/core/ports"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// GatewayHD derives addresses locally from the exchange mnemonic.
const GatewayHD = "hd"

// SLIP-44 coin types with a supported address format.
const (
	CoinTypeBitcoin  uint32 = 0
	CoinTypeTestnet  uint32 = 1
	CoinTypeEthereum uint32 = 60
)

var defaultCoinTypes = map[string]uint32{
	"btc": CoinTypeBitcoin,
	"eth": CoinTypeEthereum,
}

// ParseNetwork maps a configured network name to chain parameters.
func ParseNetwork(name string) (*chaincfg.Params, error) {
	switch name {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet", "":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	}
	return nil, fmt.Errorf("unknown network %q", name)
}

// HDWallet holds the BIP32 master key.
type HDWallet struct {
	masterKey *hdkeychain.ExtendedKey
	params    *chaincfg.Params
}

// NewHDWallet builds the master key from a BIP39 mnemonic.
func NewHDWallet(mnemonic string, params *chaincfg.Params) (*HDWallet, error) {
	if mnemonic == "" {
		return nil, errors.New("mnemonic cannot be empty")
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")
	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, err
	}
	return &HDWallet{masterKey: master, params: params}, nil
}

// DerivationPath renders m/44'/coin'/0'/0/index.
func DerivationPath(coinType, index uint32) string {
	return fmt.Sprintf("m/44'/%d'/0'/0/%d", coinType, index)
}

// Derive walks m/44'/coinType'/0'/0/index and returns the address with its
// hex encoded private key.
func (w *HDWallet) Derive(coinType, index uint32) (string, string, error) {
	if index >= hdkeychain.HardenedKeyStart {
		return "", "", fmt.Errorf("index %d out of range", index)
	}
	path := []uint32{
		44 + hdkeychain.HardenedKeyStart,
		coinType + hdkeychain.HardenedKeyStart,
		0 + hdkeychain.HardenedKeyStart,
		0,
		index,
	}

	key := w.masterKey
	var err error
	for _, idx := range path {
		key, err = key.Derive(idx)
		if err != nil {
			return "", "", err
		}
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		return "", "", err
	}
	address, err := w.address(coinType, privKey)
	if err != nil {
		return "", "", err
	}
	return address, fmt.Sprintf("%x", privKey.Serialize()), nil
}

func (w *HDWallet) address(coinType uint32, privKey *btcec.PrivateKey) (string, error) {
	switch coinType {
	case CoinTypeBitcoin, CoinTypeTestnet: // P2WPKH
		addr, err := btcutil.NewAddressWitnessPubKeyHash(
			btcutil.Hash160(privKey.PubKey().SerializeCompressed()),
			w.params,
		)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil
	case CoinTypeEthereum:
		return crypto.PubkeyToAddress(privKey.ToECDSA().PublicKey).Hex(), nil
	}
	return "", fmt.Errorf("unsupported coin type %d", coinType)
}

// HDService implements ports.WalletService for one wallet record. The
// account id is the address index, so the same account always maps to the
// same address.
type HDService struct {
	wallet   *HDWallet
	coinType uint32
}

// NewHDService binds the HD wallet to a coin type.
func NewHDService(w *HDWallet, coinType uint32) *HDService {
	return &HDService{wallet: w, coinType: coinType}
}

// Gateway returns GatewayHD.
func (s *HDService) Gateway() string { return GatewayHD }

// CreateAddress derives the account's address.
func (s *HDService) CreateAddress(ctx context.Context, account *domain.Account) (*ports.AddressResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if account.ID <= 0 || account.ID >= int64(hdkeychain.HardenedKeyStart) {
		return nil, fmt.Errorf("account id %d cannot be used as a derivation index", account.ID)
	}

	index := uint32(account.ID)
	address, secret, err := s.wallet.Derive(s.coinType, index)
	if err != nil {
		return nil, fmt.Errorf("derive address: %w", err)
	}
	return &ports.AddressResult{
		Address: address,
		Secret:  secret,
		Details: domain.Details{
			"derivation_path": DerivationPath(s.coinType, index),
			"coin_type":       s.coinType,
		},
	}, nil
}

// HDFactory builds HD services. The coin type comes from the wallet's
// "coin_type" setting or the currency's default.
func HDFactory(hd *HDWallet) Factory {
	return func(w *domain.Wallet) (ports.WalletService, error) {
		if raw := w.Setting("coin_type", ""); raw != "" {
			ct, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("wallet %d: invalid coin_type %q", w.ID, raw)
			}
			return NewHDService(hd, uint32(ct)), nil
		}
		ct, ok := defaultCoinTypes[w.CurrencyID]
		if !ok {
			return nil, fmt.Errorf("wallet %d: no coin type for currency %s", w.ID, w.CurrencyID)
		}
		return NewHDService(hd, ct), nil
	}
}
