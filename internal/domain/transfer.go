package domain

import "github.com/shopspring/decimal"

// BalanceTransfer moves money between two accounts of the agency. The source
// pays amount plus charge, the destination receives amount.
type BalanceTransfer struct {
	PostingHeader
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Charge        decimal.Decimal

	FromAccountName  string
	ToAccountName    string
	FromBalanceAfter decimal.Decimal
	ToBalanceAfter   decimal.Decimal
}

func (t *BalanceTransfer) Kind() OperationKind { return KindBalanceTransfer }

func (t *BalanceTransfer) Parties() (string, string) { return "", "" }

func (t *BalanceTransfer) Legs() []Leg {
	return []Leg{
		AccountLeg(t.FromAccountID, t.Amount.Add(t.Charge).Neg()),
		AccountLeg(t.ToAccountID, t.Amount),
	}
}

// Validate checks transfer-specific rules.
func (t *BalanceTransfer) Validate() error {
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	if t.Charge.IsNegative() {
		return ErrNegativeCharge
	}
	if err := ValidateScale(t.Charge); err != nil {
		return err
	}
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}
	return nil
}
