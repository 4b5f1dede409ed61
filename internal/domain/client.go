package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is an agency customer.
//
// PresentBalance is the advance held on the client's behalf; it is the pool an
// advance return draws from. DueAmount tracks what the client owes for sold
// services and is reconciled against the ledger.
type Client struct {
	ID             string
	CompanyID      TenantID
	Name           string
	PresentBalance decimal.Decimal
	DueAmount      decimal.Decimal
	ContractAmount decimal.Decimal
	InitialPayment decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExpectedDue recomputes the due amount from the contract, the initial payment
// and the signed sum of the client's payment entries.
func (c *Client) ExpectedDue(paymentSum decimal.Decimal) decimal.Decimal {
	return c.ContractAmount.Sub(c.InitialPayment).Sub(paymentSum)
}
