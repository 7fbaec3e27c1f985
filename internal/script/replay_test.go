package script

import (
	"account_ledger/internal/domain"
	"account_ledger/internal/repository/memory"
	"account_ledger/internal/service"
	"account_ledger/pkg/clock"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
steps:
  - action: register
    client:
      full_name: Maria Souza
      birth_date: "1990-04-12"
      tax_id: "12345678901"
      address: Rua A, 10
  - action: open_account
    tax_id: "12345678901"
  - action: deposit
    tax_id: "12345678901"
    amount: "100"
  - action: withdraw
    tax_id: "12345678901"
    account: 1
    amount: "40"
  - action: withdraw
    tax_id: "12345678901"
    amount: "600"
  - action: deposit
    tax_id: "12345678901"
    amount: "-5"
  - action: statement
    tax_id: "12345678901"
    account: 1
  - action: list_accounts
`

func newLedger() *service.LedgerService {
	clk := clock.NewManual(time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC))
	return service.NewLedgerService(
		memory.NewClientRepository(),
		memory.NewAccountRepository(),
		clk,
		service.DefaultSettings(),
		nil,
		nil,
	)
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Len(t, s.Steps, 8)
	assert.Equal(t, ActionRegister, s.Steps[0].Action)
	assert.Equal(t, "Maria Souza", s.Steps[0].Client.FullName)
	assert.Equal(t, "12345678901", s.Steps[0].Client.TaxID)
	assert.Equal(t, 1, s.Steps[3].Account)
	assert.Equal(t, "40", s.Steps[3].Amount)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("steps: [unterminated"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 8)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReplayer_Run(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)
	var out bytes.Buffer

	res, err := NewReplayer(newLedger(), &out, nil).Run(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, 6, res.Applied)
	assert.Equal(t, 2, res.Rejected)
	assert.Equal(t, map[string]int{"overdraft_exceeded": 1, "invalid_amount": 1}, res.Reasons)

	want := "STATEMENT 0001/1 Maria Souza - 20/05/2024 09:30:00\n" +
		rule + "\n" +
		"20-05-2024 09:30:00 | Deposit | 100.00\n" +
		"20-05-2024 09:30:00 | Withdraw | 40.00\n" +
		rule + "\n" +
		"Balance: 60.00\n" +
		"Branch: 0001\nAccount: 1\nHolder: Maria Souza\nBalance: 60.00\n\n"
	assert.Equal(t, want, out.String())
}

func TestReplayer_StopsOnMalformedStep(t *testing.T) {
	s := &Script{Steps: []Step{
		{Action: ActionRegister, Client: maria()},
		{Action: "transfer"},
		{Action: ActionOpenAccount, TaxID: "12345678901"},
	}}

	res, err := NewReplayer(newLedger(), nil, nil).Run(context.Background(), s)

	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, 1, res.Applied)
}

func TestReplayer_StopsOnBadAmount(t *testing.T) {
	s := &Script{Steps: []Step{
		{Action: ActionRegister, Client: maria()},
		{Action: ActionOpenAccount, TaxID: "12345678901"},
		{Action: ActionDeposit, TaxID: "12345678901", Amount: "ten"},
	}}

	res, err := NewReplayer(newLedger(), nil, nil).Run(context.Background(), s)

	assert.Error(t, err)
	assert.Equal(t, 2, res.Applied)
}

func TestReplayer_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewReplayer(newLedger(), nil, nil).Run(ctx, &Script{Steps: []Step{{Action: ActionRegister, Client: maria()}}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Applied)
}

func maria() domain.ClientInfo {
	return domain.ClientInfo{FullName: "Maria Souza", TaxID: "12345678901"}
}
