// Package script replays a YAML list of ledger operations. It is the
// non-interactive driver used by cmd/ledger and by end-to-end tests.
package script

import (
	"account_ledger/internal/domain"
	"account_ledger/internal/service"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	ActionRegister     = "register"
	ActionOpenAccount  = "open_account"
	ActionDeposit      = "deposit"
	ActionWithdraw     = "withdraw"
	ActionStatement    = "statement"
	ActionListAccounts = "list_accounts"
)

var ErrUnknownAction = errors.New("unknown action")

type Step struct {
	Action  string            `yaml:"action"`
	Client  domain.ClientInfo `yaml:"client,omitempty"`
	TaxID   string            `yaml:"tax_id,omitempty"`
	Account int               `yaml:"account,omitempty"`
	Amount  string            `yaml:"amount,omitempty"`
	Kind    string            `yaml:"kind,omitempty"`
}

type Script struct {
	Steps []Step `yaml:"steps"`
}

// Result counts how the steps of a run ended.
type Result struct {
	Applied  int
	Rejected int
	Reasons  map[string]int
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

type Replayer struct {
	ledger *service.LedgerService
	out    io.Writer
	logger *slog.Logger
}

func NewReplayer(ledger *service.LedgerService, out io.Writer, logger *slog.Logger) *Replayer {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Replayer{ledger: ledger, out: out, logger: logger}
}

// Run executes every step in order. Business rejections are counted and the
// run continues; malformed steps and unexpected failures stop it.
func (r *Replayer) Run(ctx context.Context, s *Script) (*Result, error) {
	res := &Result{Reasons: make(map[string]int)}

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		err := r.runStep(ctx, step)
		switch {
		case err == nil:
			res.Applied++
		case domain.IsRejection(err):
			res.Rejected++
			res.Reasons[domain.Reason(err)]++
			r.logger.WarnContext(ctx, "Step rejected",
				slog.Int("step", i+1),
				slog.String("action", step.Action),
				slog.String("error", err.Error()))
		default:
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
	}

	return res, nil
}

func (r *Replayer) runStep(ctx context.Context, step Step) error {
	switch step.Action {
	case ActionRegister:
		_, err := r.ledger.RegisterClient(ctx, step.Client)
		return err
	case ActionOpenAccount:
		_, err := r.ledger.OpenAccount(ctx, step.TaxID)
		return err
	case ActionDeposit, ActionWithdraw:
		amount, err := decimal.NewFromString(strings.TrimSpace(step.Amount))
		if err != nil {
			return fmt.Errorf("amount %q: %w", step.Amount, err)
		}
		if step.Action == ActionDeposit {
			return r.ledger.Deposit(ctx, step.TaxID, step.Account, amount)
		}
		return r.ledger.Withdraw(ctx, step.TaxID, step.Account, amount)
	case ActionStatement:
		st, err := r.ledger.Statement(ctx, step.TaxID, step.Account, step.Kind)
		if err != nil {
			return err
		}
		return WriteStatement(r.out, st)
	case ActionListAccounts:
		summaries, err := r.ledger.AccountSummaries(ctx)
		if err != nil {
			return err
		}
		for summary := range summaries {
			if _, err := fmt.Fprintf(r.out, "%s\n\n", summary); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, step.Action)
	}
}

const rule = "------------------------------------------------------------"

// WriteStatement renders st as plain text.
func WriteStatement(w io.Writer, st *service.Statement) error {
	var b strings.Builder
	fmt.Fprintf(&b, "STATEMENT %s/%d %s - %s\n", st.BranchCode, st.Number, st.Holder,
		st.GeneratedAt.Format("02/01/2006 15:04:05"))
	b.WriteString(rule + "\n")

	n := 0
	for e := range st.Entries {
		fmt.Fprintf(&b, "%s | %s | %s\n", e.Timestamp.Format("02-01-2006 15:04:05"), e.Kind, e.Amount.StringFixed(2))
		n++
	}
	if n == 0 {
		b.WriteString("No movements.\n")
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Balance: %s\n", st.Balance.StringFixed(2))

	_, err := io.WriteString(w, b.String())
	return err
}
