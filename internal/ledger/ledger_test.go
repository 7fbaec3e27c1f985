package ledger

import (
	"account_ledger/internal/domain"
	"account_ledger/pkg/clock"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestClock() *clock.Manual {
	return clock.NewManual(time.Date(2024, 5, 20, 9, 0, 0, 0, saoPaulo))
}

func newChecking(t *testing.T, c clock.Clock) *Account {
	t.Helper()
	return NewCheckingAccount("12345678901", 1, domain.DefaultOverdraftLimit, WithClock(c))
}
