package memory

import (
	"account_ledger/internal/ledger"
	"account_ledger/internal/repository"
	"context"
	"fmt"
	"sort"
	"sync"
)

type AccountRepository struct {
	mu         sync.RWMutex
	accounts   map[int]*ledger.Account
	ownerIndex map[string][]int
	lastNumber int
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:   make(map[int]*ledger.Account),
		ownerIndex: make(map[string][]int),
	}
}

func (r *AccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Number()]; exists {
		return fmt.Errorf("%w: account %d", repository.ErrDuplicate, account.Number())
	}

	r.accounts[account.Number()] = account
	r.ownerIndex[account.Owner()] = append(r.ownerIndex[account.Owner()], account.Number())
	r.lastNumber = max(r.lastNumber, account.Number())

	return nil
}

func (r *AccountRepository) GetByNumber(ctx context.Context, number int) (*ledger.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[number]
	if !exists {
		return nil, fmt.Errorf("%w: account %d", repository.ErrNotFound, number)
	}
	return account, nil
}

func (r *AccountRepository) GetByOwner(ctx context.Context, taxID string) ([]*ledger.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	numbers, exists := r.ownerIndex[taxID]
	if !exists {
		return nil, fmt.Errorf("%w: owner %s", repository.ErrNotFound, taxID)
	}

	result := make([]*ledger.Account, 0, len(numbers))
	for _, n := range numbers {
		result = append(result, r.accounts[n])
	}

	return result, nil
}

// GetAll returns every account ordered by number.
func (r *AccountRepository) GetAll(ctx context.Context) ([]*ledger.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*ledger.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		result = append(result, account)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number() < result[j].Number()
	})

	return result, nil
}

// NextNumber returns the number the next opened account should take. Numbers
// start at 1 and follow the highest number saved so far.
func (r *AccountRepository) NextNumber(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastNumber + 1, nil
}
