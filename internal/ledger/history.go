package ledger

import (
	"account_ledger/internal/domain"
	"fmt"
	"iter"
	"time"
)

// History is the append-only log of one account. It is not safe for
// concurrent use on its own; the owning Account serialises access.
type History struct {
	entries  []domain.HistoryEntry
	dailyCap int
}

func NewHistory(dailyCap int) *History {
	if dailyCap <= 0 {
		dailyCap = domain.DefaultDailyCap
	}
	return &History{dailyCap: dailyCap}
}

// Record appends tx stamped with now, unless dailyCap entries already fall on
// now's calendar day.
func (h *History) Record(tx Transaction, now time.Time) error {
	if n := h.CountOn(now); n >= h.dailyCap {
		return fmt.Errorf("%w: %d of %d on %s",
			domain.ErrDailyCapReached, n, h.dailyCap, now.Format(time.DateOnly))
	}
	h.entries = append(h.entries, domain.NewHistoryEntry(tx.Kind(), tx.Amount(), now))
	return nil
}

// CountOn returns how many entries were recorded on day's calendar date in
// day's location.
func (h *History) CountOn(day time.Time) int {
	n := 0
	for _, e := range h.entries {
		if e.SameDay(day) {
			n++
		}
	}
	return n
}

// Remaining is the number of entries that can still be recorded on day.
func (h *History) Remaining(day time.Time) int {
	return max(h.dailyCap-h.CountOn(day), 0)
}

func (h *History) DailyCap() int {
	return h.dailyCap
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Entries() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Report yields entries in insertion order, keeping only those whose kind
// matches kind case-insensitively (empty kind keeps all). The entries are
// captured when Report is called; every range over the result starts again
// from the first entry.
func (h *History) Report(kind string) iter.Seq[domain.HistoryEntry] {
	snapshot := h.Entries()
	return func(yield func(domain.HistoryEntry) bool) {
		for _, e := range snapshot {
			if !e.Kind.Matches(kind) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
