package domain

const (
	EventTypeDepositAddress = "deposit_address"
	EventActionCreate       = "create"
)

// DepositAddressEvent is broadcast to the owner's private channel once an
// address exists.
type DepositAddressEvent struct {
	Type     string `json:"type"`
	Action   string `json:"action"`
	Currency string `json:"currency"`
	Address  string `json:"address"`
}

// NewDepositAddressCreated builds the "address created" event.
func NewDepositAddressCreated(currency *Currency, address string) DepositAddressEvent {
	return DepositAddressEvent{
		Type:     EventTypeDepositAddress,
		Action:   EventActionCreate,
		Currency: currency.Code(),
		Address:  address,
	}
}
