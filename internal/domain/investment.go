package domain

import "github.com/shopspring/decimal"

// Investment is incoming capital. It is posted as a credit to the account;
// this is a product decision, not derived from double-entry convention.
type Investment struct {
	PostingHeader
	AccountID     string
	Amount        decimal.Decimal
	PaymentMethod string

	AccountName         string
	AccountBalanceAfter decimal.Decimal
}

func (i *Investment) Kind() OperationKind { return KindInvestment }

func (i *Investment) Parties() (string, string) { return "", "" }

func (i *Investment) Legs() []Leg {
	return []Leg{AccountLeg(i.AccountID, i.Amount)}
}
