package domain

import "github.com/shopspring/decimal"

// ClientPayment records a client paying against its due amount.
type ClientPayment struct {
	PostingHeader
	ClientID      string
	AccountID     string
	Amount        decimal.Decimal
	PaymentMethod string

	ClientName          string
	AccountName         string
	DueAfter            decimal.Decimal
	AccountBalanceAfter decimal.Decimal
}

func (p *ClientPayment) Kind() OperationKind { return KindClientPayment }

func (p *ClientPayment) Parties() (string, string) { return p.ClientID, "" }

func (p *ClientPayment) Legs() []Leg {
	return []Leg{
		{Ref: BalanceRef{Kind: BalanceClientDue, ID: p.ClientID}, Delta: p.Amount.Neg()},
		AccountLeg(p.AccountID, p.Amount),
	}
}
