package ledger

import (
	"account_ledger/internal/domain"
	"fmt"
	"slices"
	"sync"
)

// Client owns zero or more accounts and submits transactions against them.
type Client struct {
	FullName  string
	BirthDate string
	TaxID     string
	Address   string

	mu       sync.RWMutex
	accounts []*Account
}

func NewClient(info domain.ClientInfo) *Client {
	return &Client{
		FullName:  info.FullName,
		BirthDate: info.BirthDate,
		TaxID:     info.TaxID,
		Address:   info.Address,
	}
}

func (c *Client) Info() domain.ClientInfo {
	return domain.ClientInfo{
		FullName:  c.FullName,
		BirthDate: c.BirthDate,
		TaxID:     c.TaxID,
		Address:   c.Address,
	}
}

func (c *Client) AddAccount(acc *Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, acc)
}

// Accounts returns the client's accounts in the order they were added.
func (c *Client) Accounts() []*Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.accounts)
}

// Account finds an owned account by number.
func (c *Client) Account(number int) (*Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, acc := range c.accounts {
		if acc.Number() == number {
			return acc, nil
		}
	}
	return nil, fmt.Errorf("%w: number %d for client %s", domain.ErrAccountNotFound, number, c.TaxID)
}

// PrimaryAccount returns the first account the client opened.
func (c *Client) PrimaryAccount() (*Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.accounts) == 0 {
		return nil, fmt.Errorf("%w: client %s has no accounts", domain.ErrAccountNotFound, c.TaxID)
	}
	return c.accounts[0], nil
}

func (c *Client) Owns(acc *Account) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Contains(c.accounts, acc)
}

// SubmitTransaction applies tx to acc. The caller is expected to pick acc from
// c.Accounts(); ownership is not checked here.
func (c *Client) SubmitTransaction(acc *Account, tx Transaction) error {
	return tx.Apply(acc)
}
