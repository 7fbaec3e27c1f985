package ledger

import (
	"account_ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// Transaction is one monetary movement. The set of implementations is closed:
// Deposit and Withdraw.
type Transaction interface {
	Kind() domain.Kind
	Amount() decimal.Decimal
	// Apply validates the movement against acc and, if accepted, changes its
	// balance and records it. A rejected transaction leaves acc untouched.
	Apply(acc *Account) error

	sealed()
}

type Deposit struct {
	amount decimal.Decimal
}

func NewDeposit(amount decimal.Decimal) Deposit {
	return Deposit{amount: amount}
}

func (d Deposit) Kind() domain.Kind        { return domain.KindDeposit }
func (d Deposit) Amount() decimal.Decimal  { return d.amount }
func (d Deposit) Apply(acc *Account) error { return acc.depositInternal(d) }
func (Deposit) sealed()                    {}

type Withdraw struct {
	amount decimal.Decimal
}

func NewWithdraw(amount decimal.Decimal) Withdraw {
	return Withdraw{amount: amount}
}

func (w Withdraw) Kind() domain.Kind        { return domain.KindWithdraw }
func (w Withdraw) Amount() decimal.Decimal  { return w.amount }
func (w Withdraw) Apply(acc *Account) error { return acc.withdrawInternal(w) }
func (Withdraw) sealed()                    {}

// NewTransaction builds the variant for kind.
func NewTransaction(kind domain.Kind, amount decimal.Decimal) (Transaction, bool) {
	switch kind {
	case domain.KindDeposit:
		return NewDeposit(amount), true
	case domain.KindWithdraw:
		return NewWithdraw(amount), true
	default:
		return nil, false
	}
}
