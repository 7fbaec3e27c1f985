package repository

import (
	"account_ledger/internal/ledger"
	"context"
	"errors"
)

type ClientRepository interface {
	Save(ctx context.Context, client *ledger.Client) error
	GetByTaxID(ctx context.Context, taxID string) (*ledger.Client, error)
	GetAll(ctx context.Context) ([]*ledger.Client, error)
}

type AccountRepository interface {
	Save(ctx context.Context, account *ledger.Account) error
	GetByNumber(ctx context.Context, number int) (*ledger.Account, error)
	GetByOwner(ctx context.Context, taxID string) ([]*ledger.Account, error)
	GetAll(ctx context.Context) ([]*ledger.Account, error)
	NextNumber(ctx context.Context) (int, error)
}

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate entry")
)
