package domain

import "time"

// Details is the open metadata map stored next to an address.
type Details map[string]any

// PaymentAddress holds the deposit address of exactly one account.
// A nil or empty Address means generation is still pending; once set it is
// never cleared or replaced.
type PaymentAddress struct {
	ID              int64     `json:"id"`
	AccountID       int64     `json:"account_id"`
	CurrencyID      string    `json:"currency_id"`
	Address         *string   `json:"address"`
	SecretEncrypted *string   `json:"-"` // AES-256 encrypted, never expose
	Details         Details   `json:"details"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsAssigned returns true once a non-empty address has been persisted.
func (p *PaymentAddress) IsAssigned() bool {
	return p != nil && p.Address != nil && *p.Address != ""
}

// AddressValue returns the address or "" when unassigned.
func (p *PaymentAddress) AddressValue() string {
	if p == nil || p.Address == nil {
		return ""
	}
	return *p.Address
}

// MergeDetails layers existing over generated: keys already recorded survive a
// later generation, new keys are added. Neither input is modified.
func MergeDetails(generated, existing Details) Details {
	merged := make(Details, len(generated)+len(existing))
	for k, v := range generated {
		merged[k] = v
	}
	for k, v := range existing {
		merged[k] = v
	}
	return merged
}
