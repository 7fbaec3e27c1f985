package service

import (
	"account_ledger/internal/domain"
	"account_ledger/internal/ledger"
	"account_ledger/internal/repository"
	"account_ledger/pkg/clock"
	"account_ledger/pkg/validator"
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Settings are the ledger-wide business parameters, fixed at startup.
type Settings struct {
	BranchCode     string
	DailyCap       int
	OverdraftLimit decimal.Decimal
}

func DefaultSettings() Settings {
	return Settings{
		BranchCode:     domain.DefaultBranchCode,
		DailyCap:       domain.DefaultDailyCap,
		OverdraftLimit: domain.DefaultOverdraftLimit,
	}
}

// Statement is a point-in-time view of one account.
type Statement struct {
	BranchCode  string
	Number      int
	Holder      string
	GeneratedAt time.Time
	Balance     decimal.Decimal
	Entries     iter.Seq[domain.HistoryEntry]
	EntryCount  int
}

type LedgerService struct {
	clients   repository.ClientRepository
	accounts  repository.AccountRepository
	clock     clock.Clock
	settings  Settings
	observer  Observer
	directory *ledger.Directory
	openMu    sync.Mutex
	logger    *slog.Logger
}

func NewLedgerService(
	clients repository.ClientRepository,
	accounts repository.AccountRepository,
	clk clock.Clock,
	settings Settings,
	observer Observer,
	logger *slog.Logger,
) *LedgerService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	if clk == nil {
		clk = clock.NewSystem(time.UTC)
	}

	s := &LedgerService{
		clients:  clients,
		accounts: accounts,
		clock:    clk,
		settings: settings,
		observer: observer,
		logger:   logger,
	}
	s.directory = ledger.NewDirectory(s.ownerName)
	return s
}

func (s *LedgerService) RegisterClient(ctx context.Context, info domain.ClientInfo) (*ledger.Client, error) {
	var client *ledger.Client
	err := s.observe(ctx, OpRegisterClient, func() error {
		c := ledger.NewClient(info)
		if err := s.clients.Save(ctx, c); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: %s", domain.ErrClientExists, info.TaxID)
			}
			return fmt.Errorf("failed to save client: %w", err)
		}
		client = c
		s.logger.InfoContext(ctx, "Client registered", slog.String("tax_id", info.TaxID))
		return nil
	})
	return client, err
}

// OpenAccount opens a checking account for the client with the next
// ledger-wide account number.
func (s *LedgerService) OpenAccount(ctx context.Context, taxID string) (*ledger.Account, error) {
	var account *ledger.Account
	err := s.observe(ctx, OpOpenAccount, func() error {
		client, err := s.lookupClient(ctx, taxID)
		if err != nil {
			return err
		}

		s.openMu.Lock()
		defer s.openMu.Unlock()

		number, err := s.accounts.NextNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to allocate account number: %w", err)
		}

		acc := ledger.NewCheckingAccount(taxID, number, s.settings.OverdraftLimit,
			ledger.WithBranchCode(s.settings.BranchCode),
			ledger.WithDailyCap(s.settings.DailyCap),
			ledger.WithClock(s.clock))
		if err := s.accounts.Save(ctx, acc); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		client.AddAccount(acc)
		account = acc

		s.logger.InfoContext(ctx, "Account opened",
			slog.String("tax_id", taxID),
			slog.Int("number", number))
		return nil
	})
	return account, err
}

// Deposit credits amount to the client's account. A zero number selects the
// client's first account.
func (s *LedgerService) Deposit(ctx context.Context, taxID string, number int, amount decimal.Decimal) error {
	return s.observe(ctx, OpDeposit, func() error {
		return s.submit(ctx, taxID, number, ledger.NewDeposit(amount))
	})
}

// Withdraw debits amount from the client's account. A zero number selects the
// client's first account.
func (s *LedgerService) Withdraw(ctx context.Context, taxID string, number int, amount decimal.Decimal) error {
	return s.observe(ctx, OpWithdraw, func() error {
		return s.submit(ctx, taxID, number, ledger.NewWithdraw(amount))
	})
}

// Statement lists the account's entries, optionally only those of one kind,
// together with its current balance.
func (s *LedgerService) Statement(ctx context.Context, taxID string, number int, kind string) (*Statement, error) {
	var st *Statement
	err := s.observe(ctx, OpStatement, func() error {
		k, err := validator.ParseKind(kind)
		if err != nil {
			return err
		}
		client, acc, err := s.lookupAccount(ctx, taxID, number)
		if err != nil {
			return err
		}

		history := acc.History()
		st = &Statement{
			BranchCode:  acc.BranchCode(),
			Number:      acc.Number(),
			Holder:      client.FullName,
			GeneratedAt: s.clock.Now(),
			Balance:     acc.Balance(),
			Entries:     history.Report(string(k)),
			EntryCount:  history.Len(),
		}
		return nil
	})
	return st, err
}

// AccountSummaries describes every account in the ledger in number order.
func (s *LedgerService) AccountSummaries(ctx context.Context) (iter.Seq[string], error) {
	var seq iter.Seq[string]
	err := s.observe(ctx, OpListAccounts, func() error {
		accounts, err := s.accounts.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		seq = s.directory.Summaries(accounts)
		return nil
	})
	return seq, err
}

func (s *LedgerService) Client(ctx context.Context, taxID string) (*ledger.Client, error) {
	return s.lookupClient(ctx, taxID)
}

func (s *LedgerService) Account(ctx context.Context, number int) (*ledger.Account, error) {
	acc, err := s.accounts.GetByNumber(ctx, number)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: number %d", domain.ErrAccountNotFound, number)
	}
	return acc, err
}

func (s *LedgerService) Settings() Settings {
	return s.settings
}

func (s *LedgerService) submit(ctx context.Context, taxID string, number int, tx ledger.Transaction) error {
	client, acc, err := s.lookupAccount(ctx, taxID, number)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Processing transaction",
		slog.String("kind", string(tx.Kind())),
		slog.String("tax_id", taxID),
		slog.Int("account", acc.Number()),
		slog.String("amount", tx.Amount().String()))

	if err := client.SubmitTransaction(acc, tx); err != nil {
		return fmt.Errorf("%s on account %d: %w", tx.Kind(), acc.Number(), err)
	}

	balance := acc.Balance()
	if bo, ok := s.observer.(BalanceObserver); ok {
		bo.BalanceChanged(ctx, acc.BranchCode(), acc.Number(), balance)
	}

	s.logger.InfoContext(ctx, "Transaction recorded",
		slog.String("kind", string(tx.Kind())),
		slog.Int("account", acc.Number()),
		slog.String("balance", balance.String()))
	return nil
}

func (s *LedgerService) lookupClient(ctx context.Context, taxID string) (*ledger.Client, error) {
	client, err := s.clients.GetByTaxID(ctx, taxID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrClientNotFound, taxID)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *LedgerService) lookupAccount(ctx context.Context, taxID string, number int) (*ledger.Client, *ledger.Account, error) {
	client, err := s.lookupClient(ctx, taxID)
	if err != nil {
		return nil, nil, err
	}

	var acc *ledger.Account
	if number == 0 {
		acc, err = client.PrimaryAccount()
	} else {
		acc, err = client.Account(number)
	}
	if err != nil {
		return nil, nil, err
	}
	return client, acc, nil
}

func (s *LedgerService) ownerName(taxID string) string {
	client, err := s.clients.GetByTaxID(context.Background(), taxID)
	if err != nil {
		return taxID
	}
	return client.FullName
}

func (s *LedgerService) observe(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	s.observer.BeforeOperation(ctx, op)
	err := fn()
	s.observer.AfterOperation(ctx, Outcome{
		Operation: op,
		Err:       err,
		Duration:  time.Since(start),
	})
	return err
}
