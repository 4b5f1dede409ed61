package domain

import "github.com/shopspring/decimal"

// VendorAdvanceReturn records a vendor refunding part of an advance paid to it.
type VendorAdvanceReturn struct {
	PostingHeader
	VendorID      string
	AccountID     string
	Amount        decimal.Decimal
	PaymentMethod string

	VendorName          string
	AccountName         string
	VendorBalanceAfter  TaggedAmount
	AccountBalanceAfter decimal.Decimal
}

func (v *VendorAdvanceReturn) Kind() OperationKind { return KindVendorAdvanceReturn }

func (v *VendorAdvanceReturn) Parties() (string, string) { return "", v.VendorID }

func (v *VendorAdvanceReturn) Legs() []Leg {
	return []Leg{
		{Ref: BalanceRef{Kind: BalanceVendor, ID: v.VendorID}, Delta: v.Amount.Neg()},
		AccountLeg(v.AccountID, v.Amount),
	}
}
