package validator

import (
	"account_ledger/internal/domain"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnknownKind = errors.New("unknown transaction kind")

var kinds = []domain.Kind{domain.KindDeposit, domain.KindWithdraw}

// ValidateAmount rejects zero and negative amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount.String())
	}
	return nil
}

// ParseKind resolves a kind name case-insensitively. The empty string is
// accepted and means "any kind".
func ParseKind(s string) (domain.Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, k := range kinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKind, s)
}
