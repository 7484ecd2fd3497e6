package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AccountRef is an account id that accepts both JSON numbers and numeric strings.
type AccountRef int64

// UnmarshalJSON implements json.Unmarshaler.
func (r *AccountRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid account id %q: %w", b, err)
	}
	*r = AccountRef(id)
	return nil
}

// AssignmentRequest is the queued event asking for a deposit address.
type AssignmentRequest struct {
	AccountID AccountRef `json:"account_id"`
	Attempt   int        `json:"attempt,omitempty"` // retry number, 0 for the first trigger
}

// Valid returns true if the request names an account.
func (r AssignmentRequest) Valid() bool {
	return r.AccountID > 0
}

// ParseAssignmentRequest decodes a queue payload.
func ParseAssignmentRequest(body []byte) (AssignmentRequest, error) {
	var req AssignmentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return AssignmentRequest{}, fmt.Errorf("decode assignment request: %w", err)
	}
	return req, nil
}
