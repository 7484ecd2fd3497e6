package domain

// WalletKind is the purpose a wallet serves.
type WalletKind string

const (
	WalletKindDeposit WalletKind = "deposit"
	WalletKindHot     WalletKind = "hot"
	WalletKindWarm    WalletKind = "warm"
	WalletKindCold    WalletKind = "cold"
)

// WalletStatus toggles whether a wallet may be used.
type WalletStatus string

const (
	WalletStatusActive   WalletStatus = "active"
	WalletStatusDisabled WalletStatus = "disabled"
)

// Wallet is a currency-scoped endpoint configuration used to derive addresses.
type Wallet struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	CurrencyID string            `json:"currency_id"`
	Kind       WalletKind        `json:"kind"`
	Gateway    string            `json:"gateway"` // "hd", "bitcoind"
	Status     WalletStatus      `json:"status"`
	Settings   map[string]string `json:"-"` // gateway specific (uri, coin_type, ...)
}

// IsActiveDeposit returns true if the wallet can hand out deposit addresses.
func (w *Wallet) IsActiveDeposit() bool {
	return w.Kind == WalletKindDeposit && w.Status == WalletStatusActive
}

// Setting returns a gateway setting or def when unset.
func (w *Wallet) Setting(key, def string) string {
	if v, ok := w.Settings[key]; ok && v != "" {
		return v
	}
	return def
}
