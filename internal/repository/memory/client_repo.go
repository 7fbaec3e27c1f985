package memory

import (
	"account_ledger/internal/ledger"
	"account_ledger/internal/repository"
	"context"
	"fmt"
	"sync"
)

type ClientRepository struct {
	mu      sync.RWMutex
	clients map[string]*ledger.Client
	order   []string
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{
		clients: make(map[string]*ledger.Client),
	}
}

func (r *ClientRepository) Save(ctx context.Context, client *ledger.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[client.TaxID]; exists {
		return fmt.Errorf("%w: client %s", repository.ErrDuplicate, client.TaxID)
	}

	r.clients[client.TaxID] = client
	r.order = append(r.order, client.TaxID)

	return nil
}

func (r *ClientRepository) GetByTaxID(ctx context.Context, taxID string) (*ledger.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, exists := r.clients[taxID]
	if !exists {
		return nil, fmt.Errorf("%w: client %s", repository.ErrNotFound, taxID)
	}
	return client, nil
}

// GetAll returns clients in registration order.
func (r *ClientRepository) GetAll(ctx context.Context) ([]*ledger.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*ledger.Client, 0, len(r.order))
	for _, taxID := range r.order {
		result = append(result, r.clients[taxID])
	}

	return result, nil
}
