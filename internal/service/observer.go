package service

import (
	"account_ledger/internal/domain"
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OpRegisterClient = "register_client"
	OpOpenAccount    = "open_account"
	OpDeposit        = "deposit"
	OpWithdraw       = "withdraw"
	OpStatement      = "statement"
	OpListAccounts   = "list_accounts"
)

// Outcome describes a finished ledger operation.
type Outcome struct {
	Operation string
	Err       error
	Duration  time.Duration
}

// Observer is notified around every public LedgerService operation.
// Implementations must not block.
type Observer interface {
	BeforeOperation(ctx context.Context, op string)
	AfterOperation(ctx context.Context, outcome Outcome)
}

// BalanceObserver is optionally implemented by observers that track account
// balances. It is called after every recorded transaction.
type BalanceObserver interface {
	BalanceChanged(ctx context.Context, branch string, number int, balance decimal.Decimal)
}

// Observers fans notifications out in order.
type Observers []Observer

func (o Observers) BeforeOperation(ctx context.Context, op string) {
	for _, obs := range o {
		obs.BeforeOperation(ctx, op)
	}
}

func (o Observers) AfterOperation(ctx context.Context, outcome Outcome) {
	for _, obs := range o {
		obs.AfterOperation(ctx, outcome)
	}
}

func (o Observers) BalanceChanged(ctx context.Context, branch string, number int, balance decimal.Decimal) {
	for _, obs := range o {
		if bo, ok := obs.(BalanceObserver); ok {
			bo.BalanceChanged(ctx, branch, number, balance)
		}
	}
}

type NopObserver struct{}

func (NopObserver) BeforeOperation(context.Context, string) {}
func (NopObserver) AfterOperation(context.Context, Outcome) {}

// LogObserver writes one record per finished operation.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) BeforeOperation(ctx context.Context, op string) {
	o.logger.DebugContext(ctx, "Operation started", slog.String("operation", op))
}

func (o *LogObserver) AfterOperation(ctx context.Context, outcome Outcome) {
	attrs := []any{
		slog.String("operation", outcome.Operation),
		slog.String("outcome", domain.Reason(outcome.Err)),
		slog.Duration("duration", outcome.Duration),
	}

	switch {
	case outcome.Err == nil:
		o.logger.InfoContext(ctx, "Operation executed", attrs...)
	case domain.IsRejection(outcome.Err):
		o.logger.WarnContext(ctx, "Operation rejected", append(attrs, slog.String("error", outcome.Err.Error()))...)
	default:
		o.logger.ErrorContext(ctx, "Operation failed", append(attrs, slog.String("error", outcome.Err.Error()))...)
	}
}
