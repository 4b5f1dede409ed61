package domain

import "github.com/shopspring/decimal"

// AdvanceReturn records a client giving back part of the advance held for it.
// The client's present balance decreases and the receiving account increases.
type AdvanceReturn struct {
	PostingHeader
	ClientID      string
	AccountID     string
	Amount        decimal.Decimal
	PaymentMethod string

	// Display fields, filled on return.
	ClientName          string
	AccountName         string
	ClientBalanceAfter  decimal.Decimal
	AccountBalanceAfter decimal.Decimal
}

func (a *AdvanceReturn) Kind() OperationKind { return KindAdvanceReturn }

func (a *AdvanceReturn) Parties() (string, string) { return a.ClientID, "" }

func (a *AdvanceReturn) Legs() []Leg {
	return []Leg{
		{Ref: BalanceRef{Kind: BalanceClientPresent, ID: a.ClientID}, Delta: a.Amount.Neg()},
		AccountLeg(a.AccountID, a.Amount),
	}
}
