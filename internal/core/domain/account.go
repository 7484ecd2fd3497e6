package domain

// Account pairs an owning member with a currency. Immutable once created.
type Account struct {
	ID         int64  `json:"id"`
	MemberID   int64  `json:"member_id"`
	MemberUID  string `json:"member_uid"` // owner's public uid, names the private notification channel
	CurrencyID string `json:"currency_id"`
}
