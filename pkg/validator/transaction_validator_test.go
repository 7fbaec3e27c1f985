package validator

import (
	"testing"

	"account_ledger/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("0.01")))
	assert.ErrorIs(t, ValidateAmount(decimal.Zero), domain.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(decimal.NewFromInt(-5)), domain.ErrInvalidAmount)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("deposit")
	require.NoError(t, err)
	assert.Equal(t, domain.KindDeposit, k)

	k, err = ParseKind("WITHDRAW")
	require.NoError(t, err)
	assert.Equal(t, domain.KindWithdraw, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, domain.Kind(""), k)

	_, err = ParseKind("transfer")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
