package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceType tags a vendor balance at the storage boundary.
type BalanceType string

const (
	BalanceTypeDue     BalanceType = "due"
	BalanceTypeAdvance BalanceType = "advance"
)

// Vendor is a supplier. Balance is signed: positive is advance paid to the
// vendor, negative is due owed to the vendor.
type Vendor struct {
	ID        string
	CompanyID TenantID
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaggedAmount is the stored {type, amount} form of a vendor balance.
type TaggedAmount struct {
	Type   BalanceType     `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// ToTagged converts a signed balance into its tagged form. Zero is tagged as advance.
func ToTagged(signed decimal.Decimal) TaggedAmount {
	if signed.IsNegative() {
		return TaggedAmount{Type: BalanceTypeDue, Amount: signed.Abs()}
	}
	return TaggedAmount{Type: BalanceTypeAdvance, Amount: signed}
}

// Signed converts the tagged form back to a signed balance.
func (t TaggedAmount) Signed() (decimal.Decimal, error) {
	if t.Amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("tagged amount must be non-negative, got %s", t.Amount)
	}
	switch t.Type {
	case BalanceTypeAdvance:
		return t.Amount, nil
	case BalanceTypeDue:
		return t.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown balance type %q", t.Type)
	}
}
