package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether money left or entered the referenced account.
type Direction string

const (
	DirectionPayout Direction = "payout"
	DirectionReceiv Direction = "receiv"
)

// DirectionOf returns the direction of a signed account delta.
func DirectionOf(delta decimal.Decimal) Direction {
	if delta.IsNegative() {
		return DirectionPayout
	}
	return DirectionReceiv
}

// LedgerEntry is one immutable account movement tied to a voucher.
// LastTotalAmount is the account balance right after this entry.
type LedgerEntry struct {
	ID              string
	CompanyID       TenantID
	Date            time.Time
	VoucherNo       string
	ClientID        string
	VendorID        string
	Kind            OperationKind
	AccountID       string
	AccountName     string
	Direction       Direction
	Amount          decimal.Decimal
	LastTotalAmount decimal.Decimal
	Note            string
	CreatedAt       time.Time
}

// Signed returns the amount with receiv positive and payout negative.
func (e *LedgerEntry) Signed() decimal.Decimal {
	if e.Direction == DirectionPayout {
		return e.Amount.Neg()
	}
	return e.Amount
}
