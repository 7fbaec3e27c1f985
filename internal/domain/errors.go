package domain

import (
	"errors"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOverdraftExceeded = errors.New("overdraft limit exceeded")
	ErrDailyCapReached   = errors.New("daily transaction cap reached")
	ErrAccountNotFound   = errors.New("account not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrClientExists      = errors.New("client already exists")
)

var reasons = []struct {
	err  error
	code string
}{
	{ErrInvalidAmount, "invalid_amount"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrOverdraftExceeded, "overdraft_exceeded"},
	{ErrDailyCapReached, "daily_cap_reached"},
	{ErrAccountNotFound, "account_not_found"},
	{ErrClientNotFound, "client_not_found"},
	{ErrClientExists, "client_exists"},
}

// IsRejection reports whether err is one of the ledger's business rejections
// rather than an unexpected failure.
func IsRejection(err error) bool {
	return err != nil && Reason(err) != "error"
}

// Reason maps err to a stable code. A nil error is "ok"; anything outside the
// ledger's taxonomy is "error".
func Reason(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return "error"
}
