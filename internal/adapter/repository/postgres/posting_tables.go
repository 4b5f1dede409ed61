package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/postgres/generated"
)

// NewAdvanceReturnRepository creates the advance_returns repository.
func NewAdvanceReturnRepository(db generated.DBTX) *PostingRepository[*domain.AdvanceReturn] {
	return &PostingRepository[*domain.AdvanceReturn]{
		db: db,
		table: postingTable[*domain.AdvanceReturn]{
			name:     "advance_returns",
			columns:  []string{"client_id", "account_id", "amount", "payment_method"},
			notFound: domain.ErrAdvanceReturnNotFound,
			create:   func() *domain.AdvanceReturn { return &domain.AdvanceReturn{} },
			values: func(rec *domain.AdvanceReturn) []any {
				return []any{rec.ClientID, rec.AccountID, decimalToNumeric(rec.Amount), rec.PaymentMethod}
			},
			dest: func(rec *domain.AdvanceReturn) ([]any, func()) {
				var amount pgtype.Numeric
				return []any{&rec.ClientID, &rec.AccountID, &amount, &rec.PaymentMethod},
					func() { rec.Amount = numericToDecimal(amount) }
			},
		},
	}
}

// NewBalanceTransferRepository creates the balance_transfers repository.
func NewBalanceTransferRepository(db generated.DBTX) *PostingRepository[*domain.BalanceTransfer] {
	return &PostingRepository[*domain.BalanceTransfer]{
		db: db,
		table: postingTable[*domain.BalanceTransfer]{
			name:     "balance_transfers",
			columns:  []string{"from_account_id", "to_account_id", "amount", "charge"},
			notFound: domain.ErrBalanceTransferNotFound,
			create:   func() *domain.BalanceTransfer { return &domain.BalanceTransfer{} },
			values: func(rec *domain.BalanceTransfer) []any {
				return []any{rec.FromAccountID, rec.ToAccountID, decimalToNumeric(rec.Amount), decimalToNumeric(rec.Charge)}
			},
			dest: func(rec *domain.BalanceTransfer) ([]any, func()) {
				var amount, charge pgtype.Numeric
				return []any{&rec.FromAccountID, &rec.ToAccountID, &amount, &charge},
					func() {
						rec.Amount = numericToDecimal(amount)
						rec.Charge = numericToDecimal(charge)
					}
			},
		},
	}
}

// NewExpenseRepository creates the expenses repository. Items live in
// expense_items and are rewritten on every create and update.
func NewExpenseRepository(db generated.DBTX) *PostingRepository[*domain.Expense] {
	return &PostingRepository[*domain.Expense]{
		db: db,
		table: postingTable[*domain.Expense]{
			name:     "expenses",
			columns:  []string{"account_id", "payment_method"},
			notFound: domain.ErrExpenseNotFound,
			create:   func() *domain.Expense { return &domain.Expense{} },
			values: func(rec *domain.Expense) []any {
				return []any{rec.AccountID, rec.PaymentMethod}
			},
			dest: func(rec *domain.Expense) ([]any, func()) {
				return []any{&rec.AccountID, &rec.PaymentMethod}, func() {}
			},
		},
		afterWrite: writeExpenseItems,
		afterLoad:  loadExpenseItems,
	}
}

func writeExpenseItems(ctx context.Context, db generated.DBTX, rec *domain.Expense) error {
	if _, err := db.Exec(ctx, `DELETE FROM expense_items WHERE expense_id = $1`, rec.ID); err != nil {
		return fmt.Errorf("clear expense items: %w", err)
	}

	for i, item := range rec.Items {
		_, err := db.Exec(ctx,
			`INSERT INTO expense_items (expense_id, line_no, head_id, amount) VALUES ($1, $2, $3, $4)`,
			rec.ID, i+1, item.HeadID, decimalToNumeric(item.Amount),
		)
		if err != nil {
			return fmt.Errorf("insert expense item %d: %w", i+1, err)
		}
	}

	return nil
}

func loadExpenseItems(ctx context.Context, db generated.DBTX, rec *domain.Expense) error {
	rows, err := db.Query(ctx, `SELECT head_id, amount FROM expense_items WHERE expense_id = $1 ORDER BY line_no`, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	rec.Items = rec.Items[:0]
	for rows.Next() {
		var (
			headID string
			amount pgtype.Numeric
		)
		if err := rows.Scan(&headID, &amount); err != nil {
			return err
		}
		rec.Items = append(rec.Items, domain.ExpenseItem{HeadID: headID, Amount: numericToDecimal(amount)})
	}

	return rows.Err()
}

// NewInvestmentRepository creates the investments repository.
func NewInvestmentRepository(db generated.DBTX) *PostingRepository[*domain.Investment] {
	return &PostingRepository[*domain.Investment]{
		db: db,
		table: postingTable[*domain.Investment]{
			name:     "investments",
			columns:  []string{"account_id", "amount", "payment_method"},
			notFound: domain.ErrInvestmentNotFound,
			create:   func() *domain.Investment { return &domain.Investment{} },
			values: func(rec *domain.Investment) []any {
				return []any{rec.AccountID, decimalToNumeric(rec.Amount), rec.PaymentMethod}
			},
			dest: func(rec *domain.Investment) ([]any, func()) {
				var amount pgtype.Numeric
				return []any{&rec.AccountID, &amount, &rec.PaymentMethod},
					func() { rec.Amount = numericToDecimal(amount) }
			},
		},
	}
}

// NewVendorAdvanceReturnRepository creates the vendor_advance_returns repository.
func NewVendorAdvanceReturnRepository(db generated.DBTX) *PostingRepository[*domain.VendorAdvanceReturn] {
	return &PostingRepository[*domain.VendorAdvanceReturn]{
		db: db,
		table: postingTable[*domain.VendorAdvanceReturn]{
			name:     "vendor_advance_returns",
			columns:  []string{"vendor_id", "account_id", "amount", "payment_method"},
			notFound: domain.ErrVendorAdvanceReturnNotFound,
			create:   func() *domain.VendorAdvanceReturn { return &domain.VendorAdvanceReturn{} },
			values: func(rec *domain.VendorAdvanceReturn) []any {
				return []any{rec.VendorID, rec.AccountID, decimalToNumeric(rec.Amount), rec.PaymentMethod}
			},
			dest: func(rec *domain.VendorAdvanceReturn) ([]any, func()) {
				var amount pgtype.Numeric
				return []any{&rec.VendorID, &rec.AccountID, &amount, &rec.PaymentMethod},
					func() { rec.Amount = numericToDecimal(amount) }
			},
		},
	}
}

// NewClientPaymentRepository creates the client_payments repository.
func NewClientPaymentRepository(db generated.DBTX) *PostingRepository[*domain.ClientPayment] {
	return &PostingRepository[*domain.ClientPayment]{
		db: db,
		table: postingTable[*domain.ClientPayment]{
			name:     "client_payments",
			columns:  []string{"client_id", "account_id", "amount", "payment_method"},
			notFound: domain.ErrClientPaymentNotFound,
			create:   func() *domain.ClientPayment { return &domain.ClientPayment{} },
			values: func(rec *domain.ClientPayment) []any {
				return []any{rec.ClientID, rec.AccountID, decimalToNumeric(rec.Amount), rec.PaymentMethod}
			},
			dest: func(rec *domain.ClientPayment) ([]any, func()) {
				var amount pgtype.Numeric
				return []any{&rec.ClientID, &rec.AccountID, &amount, &rec.PaymentMethod},
					func() { rec.Amount = numericToDecimal(amount) }
			},
		},
	}
}
