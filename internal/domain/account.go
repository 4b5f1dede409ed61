package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCategory is the kind of money holder an account represents.
type AccountCategory string

const (
	AccountCategoryCash   AccountCategory = "cash"
	AccountCategoryBank   AccountCategory = "bank"
	AccountCategoryMobile AccountCategory = "mobile"
	AccountCategoryCard   AccountCategory = "card"
)

// Account represents a cash, bank, mobile or card account of the agency.
// Positive balance means funds are available.
type Account struct {
	ID              string
	CompanyID       TenantID
	Name            string
	Category        AccountCategory
	Balance         decimal.Decimal
	HasTransactions bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
