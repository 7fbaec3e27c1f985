package ledger

import (
	"account_ledger/internal/domain"
	"account_ledger/pkg/clock"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Account owns a balance and its History. Balance and history change together
// under one lock, only through Transaction.Apply.
type Account struct {
	mu sync.Mutex

	number         int
	branchCode     string
	kind           domain.AccountKind
	ownerTaxID     string
	balance        decimal.Decimal
	overdraftLimit decimal.Decimal
	history        *History
	clock          clock.Clock

	depositRules  []Rule
	withdrawRules []Rule
}

type AccountOption func(*Account)

func WithBranchCode(code string) AccountOption {
	return func(a *Account) {
		if code != "" {
			a.branchCode = code
		}
	}
}

func WithClock(c clock.Clock) AccountOption {
	return func(a *Account) {
		if c != nil {
			a.clock = c
		}
	}
}

func WithDailyCap(n int) AccountOption {
	return func(a *Account) {
		a.history = NewHistory(n)
	}
}

// NewAccount opens a basic account for the client identified by ownerTaxID.
// Basic accounts only enforce the balance when withdrawing.
func NewAccount(ownerTaxID string, number int, opts ...AccountOption) *Account {
	return newAccount(domain.AccountBasic, ownerTaxID, number, decimal.Zero, opts)
}

// NewCheckingAccount opens an account that also rejects any single withdrawal
// above limit.
func NewCheckingAccount(ownerTaxID string, number int, limit decimal.Decimal, opts ...AccountOption) *Account {
	return newAccount(domain.AccountChecking, ownerTaxID, number, limit, opts)
}

func newAccount(kind domain.AccountKind, ownerTaxID string, number int, limit decimal.Decimal, opts []AccountOption) *Account {
	a := &Account{
		number:         number,
		branchCode:     domain.DefaultBranchCode,
		kind:           kind,
		ownerTaxID:     ownerTaxID,
		balance:        decimal.Zero,
		overdraftLimit: limit,
		history:        NewHistory(domain.DefaultDailyCap),
		clock:          clock.NewSystem(time.UTC),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.depositRules = depositRules()
	a.withdrawRules = withdrawRules(kind, limit)
	return a
}

func (a *Account) Number() int {
	return a.number
}

func (a *Account) BranchCode() string {
	return a.branchCode
}

func (a *Account) Kind() domain.AccountKind {
	return a.kind
}

// Owner returns the tax ID of the owning client.
func (a *Account) Owner() string {
	return a.ownerTaxID
}

// OverdraftLimit returns the per-withdrawal ceiling. ok is false for accounts
// without one.
func (a *Account) OverdraftLimit() (limit decimal.Decimal, ok bool) {
	return a.overdraftLimit, a.kind == domain.AccountChecking
}

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// History returns a copy of the account's history taken now.
func (a *Account) History() *History {
	a.mu.Lock()
	defer a.mu.Unlock()
	return &History{entries: a.history.Entries(), dailyCap: a.history.dailyCap}
}

// RemainingToday is how many more transactions the account can record today.
func (a *Account) RemainingToday() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Remaining(a.clock.Now())
}

func (a *Account) depositInternal(tx Transaction) error {
	return a.commit(tx, a.depositRules, func(b, amount decimal.Decimal) decimal.Decimal {
		return b.Add(amount)
	})
}

func (a *Account) withdrawInternal(tx Transaction) error {
	return a.commit(tx, a.withdrawRules, func(b, amount decimal.Decimal) decimal.Decimal {
		return b.Sub(amount)
	})
}

// commit validates tx, checks the daily cap, then records it and moves the
// balance. Nothing changes unless every step passes.
func (a *Account) commit(tx Transaction, rules []Rule, move func(balance, amount decimal.Decimal) decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := runRules(rules, a, tx.Amount()); err != nil {
		return err
	}
	if err := a.history.Record(tx, a.clock.Now()); err != nil {
		return err
	}
	a.balance = move(a.balance, tx.Amount())
	return nil
}
