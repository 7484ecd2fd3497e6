package domain

import "strings"

// CurrencyType distinguishes on-chain coins from fiat money.
type CurrencyType string

const (
	CurrencyTypeCoin CurrencyType = "coin"
	CurrencyTypeFiat CurrencyType = "fiat"
)

// Currency is reference data; only coin currencies need deposit addresses.
type Currency struct {
	ID   string       `json:"id"` // lowercase code, e.g. "btc"
	Name string       `json:"name"`
	Type CurrencyType `json:"type"`
}

// IsCoin returns true if accounts in this currency need a blockchain address.
func (c *Currency) IsCoin() bool {
	return c.Type == CurrencyTypeCoin
}

// Code returns the lowercase currency code used in member-facing events.
func (c *Currency) Code() string {
	return strings.ToLower(c.ID)
}
