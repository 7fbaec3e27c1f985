package memory

import (
	"account_ledger/internal/repository"
)

var (
	_ repository.ClientRepository  = (*ClientRepository)(nil)
	_ repository.AccountRepository = (*AccountRepository)(nil)
)
