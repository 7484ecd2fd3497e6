package dto

// DepositAddressURI binds the path of GET /api/v1/account/deposit_address/:currency.
type DepositAddressURI struct {
	Currency string `uri:"currency" binding:"required,currency_code"`
}

// DepositAddressResponse is the member-facing view of a deposit address.
// Address is omitted while generation is pending.
type DepositAddressResponse struct {
	Currency string `json:"currency"`
	Address  string `json:"address,omitempty"`
	State    string `json:"state"`
}
