package domain

import "github.com/shopspring/decimal"

// ExpenseItem is one expense head line.
type ExpenseItem struct {
	HeadID string
	Amount decimal.Decimal
}

// Expense is money paid out of an account, split across expense heads.
type Expense struct {
	PostingHeader
	AccountID     string
	Items         []ExpenseItem
	PaymentMethod string

	AccountName         string
	AccountBalanceAfter decimal.Decimal
}

func (e *Expense) Kind() OperationKind { return KindExpense }

func (e *Expense) Parties() (string, string) { return "", "" }

func (e *Expense) Legs() []Leg {
	return []Leg{AccountLeg(e.AccountID, e.Total().Neg())}
}

// Total sums the item amounts.
func (e *Expense) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// Validate requires at least one item, each with a head and a valid amount.
func (e *Expense) Validate() error {
	if len(e.Items) == 0 {
		return ErrNoExpenseItems
	}
	for _, item := range e.Items {
		if err := ValidateAmount(item.Amount); err != nil {
			return err
		}
	}
	for i, item := range e.Items {
		if item.HeadID == "" {
			return NewValidation("expense item %d has no head", i+1)
		}
	}
	return nil
}
