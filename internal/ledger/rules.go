package ledger

import (
	"account_ledger/internal/domain"
	"account_ledger/pkg/validator"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rule is one named check in an account's validation pipeline. Check runs
// with the account lock held and must only read the account's fields.
type Rule struct {
	Name  string
	Check func(acc *Account, amount decimal.Decimal) error
}

var positiveAmount = Rule{
	Name: "positive_amount",
	Check: func(_ *Account, amount decimal.Decimal) error {
		return validator.ValidateAmount(amount)
	},
}

var sufficientFunds = Rule{
	Name: "sufficient_funds",
	Check: func(acc *Account, amount decimal.Decimal) error {
		if amount.GreaterThan(acc.balance) {
			return fmt.Errorf("%w: balance %s, requested %s",
				domain.ErrInsufficientFunds, acc.balance.StringFixed(2), amount.StringFixed(2))
		}
		return nil
	},
}

func overdraftLimit(limit decimal.Decimal) Rule {
	return Rule{
		Name: "overdraft_limit",
		Check: func(_ *Account, amount decimal.Decimal) error {
			if amount.GreaterThan(limit) {
				return fmt.Errorf("%w: limit %s, requested %s",
					domain.ErrOverdraftExceeded, limit.StringFixed(2), amount.StringFixed(2))
			}
			return nil
		},
	}
}

func depositRules() []Rule {
	return []Rule{positiveAmount}
}

func withdrawRules(kind domain.AccountKind, limit decimal.Decimal) []Rule {
	rules := []Rule{positiveAmount}
	if kind == domain.AccountChecking {
		rules = append(rules, overdraftLimit(limit))
	}
	return append(rules, sufficientFunds)
}

func runRules(rules []Rule, acc *Account, amount decimal.Decimal) error {
	for _, r := range rules {
		if err := r.Check(acc, amount); err != nil {
			return err
		}
	}
	return nil
}
