package ledger

import (
	"fmt"
	"iter"
)

// OwnerNameFunc resolves a client's display name from its tax ID.
type OwnerNameFunc func(taxID string) string

// Directory renders account summaries for a presentation layer.
type Directory struct {
	ownerName OwnerNameFunc
}

func NewDirectory(ownerName OwnerNameFunc) *Directory {
	if ownerName == nil {
		ownerName = func(taxID string) string { return taxID }
	}
	return &Directory{ownerName: ownerName}
}

// Summaries yields one summary per account, in order. Each summary reads the
// account's balance when it is produced, not when Summaries is called.
func (d *Directory) Summaries(accounts []*Account) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, acc := range accounts {
			if !yield(d.Summary(acc)) {
				return
			}
		}
	}
}

func (d *Directory) Summary(acc *Account) string {
	return fmt.Sprintf("Branch: %s\nAccount: %d\nHolder: %s\nBalance: %s",
		acc.BranchCode(), acc.Number(), d.ownerName(acc.Owner()), acc.Balance().StringFixed(2))
}
