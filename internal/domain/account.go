package domain

import (
	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountBasic    AccountKind = "basic"
	AccountChecking AccountKind = "checking"
)

const (
	DefaultBranchCode = "0001"
	DefaultDailyCap   = 10
)

var DefaultOverdraftLimit = decimal.NewFromInt(500)

// ClientInfo carries the identifiers a presentation layer collects when
// registering a client. The ledger stores them verbatim.
type ClientInfo struct {
	FullName  string `json:"full_name" yaml:"full_name"`
	BirthDate string `json:"birth_date" yaml:"birth_date"`
	TaxID     string `json:"tax_id" yaml:"tax_id"`
	Address   string `json:"address" yaml:"address"`
}
