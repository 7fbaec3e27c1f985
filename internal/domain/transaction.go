package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDeposit  Kind = "Deposit"
	KindWithdraw Kind = "Withdraw"
)

// Matches reports whether filter names this kind, ignoring case.
// An empty filter matches every kind.
func (k Kind) Matches(filter string) bool {
	return filter == "" || strings.EqualFold(string(k), filter)
}

// HistoryEntry is one recorded transaction. Entries are never modified once appended.
type HistoryEntry struct {
	ID        uuid.UUID       `json:"id"`
	Kind      Kind            `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewHistoryEntry(kind Kind, amount decimal.Decimal, at time.Time) HistoryEntry {
	return HistoryEntry{
		ID:        uuid.New(),
		Kind:      kind,
		Amount:    amount,
		Timestamp: at,
	}
}

// SameDay reports whether the entry was recorded on the calendar day of ref,
// evaluated in ref's location.
func (e HistoryEntry) SameDay(ref time.Time) bool {
	y1, m1, d1 := e.Timestamp.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
