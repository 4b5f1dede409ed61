package dto

import (
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// CreateAdvanceReturnRequest represents a request to record an advance return.
type CreateAdvanceReturnRequest struct {
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ClientID      string `json:"client_id" validate:"required"`
	AccountID     string `json:"account_id" validate:"required"`
	Amount        string `json:"amount" validate:"required,numeric"`
	PaymentMethod string `json:"payment_method" validate:"max=64"`
	Note          string `json:"note" validate:"max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAdvanceReturnRequest) ToUseCaseInput() (usecase.CreateAdvanceReturnInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return usecase.CreateAdvanceReturnInput{}, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.CreateAdvanceReturnInput{}, err
	}

	return usecase.CreateAdvanceReturnInput{
		Date:          date,
		ClientID:      r.ClientID,
		AccountID:     r.AccountID,
		Amount:        amount,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// UpdateAdvanceReturnRequest holds the fields to change; absent fields keep
// their stored value.
type UpdateAdvanceReturnRequest struct {
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ClientID      *string `json:"client_id"`
	AccountID     *string `json:"account_id"`
	Amount        *string `json:"amount" validate:"omitempty,numeric"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty,max=64"`
	Note          *string `json:"note" validate:"omitempty,max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAdvanceReturnRequest) ToUseCaseInput() (usecase.UpdateAdvanceReturnInput, error) {
	amount, err := parseAmountPtr(r.Amount)
	if err != nil {
		return usecase.UpdateAdvanceReturnInput{}, err
	}
	date, err := parseDatePtr(r.Date)
	if err != nil {
		return usecase.UpdateAdvanceReturnInput{}, err
	}

	return usecase.UpdateAdvanceReturnInput{
		Date:          date,
		ClientID:      r.ClientID,
		AccountID:     r.AccountID,
		Amount:        amount,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// CreateBalanceTransferRequest represents a request to move money between accounts.
type CreateBalanceTransferRequest struct {
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	FromAccountID string `json:"from_account_id" validate:"required"`
	ToAccountID   string `json:"to_account_id" validate:"required"`
	Amount        string `json:"amount" validate:"required,numeric"`
	Charge        string `json:"charge" validate:"omitempty,numeric"`
	Note          string `json:"note" validate:"max=1000"`
}

// ToUseCaseInput converts to use case input. A missing charge is zero.
func (r *CreateBalanceTransferRequest) ToUseCaseInput() (usecase.CreateBalanceTransferInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return usecase.CreateBalanceTransferInput{}, err
	}
	input := usecase.CreateBalanceTransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        amount,
		Note:          r.Note,
	}
	if r.Charge != "" {
		if input.Charge, err = parseAmount(r.Charge); err != nil {
			return usecase.CreateBalanceTransferInput{}, err
		}
	}
	if input.Date, err = parseDate(r.Date); err != nil {
		return usecase.CreateBalanceTransferInput{}, err
	}

	return input, nil
}

// UpdateBalanceTransferRequest holds the fields to change.
type UpdateBalanceTransferRequest struct {
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	FromAccountID *string `json:"from_account_id"`
	ToAccountID   *string `json:"to_account_id"`
	Amount        *string `json:"amount" validate:"omitempty,numeric"`
	Charge        *string `json:"charge" validate:"omitempty,numeric"`
	Note          *string `json:"note" validate:"omitempty,max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateBalanceTransferRequest) ToUseCaseInput() (usecase.UpdateBalanceTransferInput, error) {
	var (
		input usecase.UpdateBalanceTransferInput
		err   error
	)
	if input.Amount, err = parseAmountPtr(r.Amount); err != nil {
		return input, err
	}
	if input.Charge, err = parseAmountPtr(r.Charge); err != nil {
		return input, err
	}
	if input.Date, err = parseDatePtr(r.Date); err != nil {
		return input, err
	}
	input.FromAccountID = r.FromAccountID
	input.ToAccountID = r.ToAccountID
	input.Note = r.Note

	return input, nil
}

// ExpenseItemRequest is one expense head line.
type ExpenseItemRequest struct {
	HeadID string `json:"head_id" validate:"required"`
	Amount string `json:"amount" validate:"required,numeric"`
}

func expenseItems(items []ExpenseItemRequest) ([]domain.ExpenseItem, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]domain.ExpenseItem, len(items))
	for i, item := range items {
		amount, err := parseAmount(item.Amount)
		if err != nil {
			return nil, err
		}
		out[i] = domain.ExpenseItem{HeadID: item.HeadID, Amount: amount}
	}
	return out, nil
}

// CreateExpenseRequest represents a request to record an expense.
type CreateExpenseRequest struct {
	Date          string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	AccountID     string               `json:"account_id" validate:"required"`
	Items         []ExpenseItemRequest `json:"items" validate:"dive"`
	PaymentMethod string               `json:"payment_method" validate:"max=64"`
	Note          string               `json:"note" validate:"max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput() (usecase.CreateExpenseInput, error) {
	items, err := expenseItems(r.Items)
	if err != nil {
		return usecase.CreateExpenseInput{}, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.CreateExpenseInput{}, err
	}

	return usecase.CreateExpenseInput{
		Date:          date,
		AccountID:     r.AccountID,
		Items:         items,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// UpdateExpenseRequest holds the fields to change. Items, when present,
// replace the stored items.
type UpdateExpenseRequest struct {
	Date          *string              `json:"date" validate:"omitempty,datetime=2006-01-02"`
	AccountID     *string              `json:"account_id"`
	Items         []ExpenseItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	PaymentMethod *string              `json:"payment_method" validate:"omitempty,max=64"`
	Note          *string              `json:"note" validate:"omitempty,max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateExpenseRequest) ToUseCaseInput() (usecase.UpdateExpenseInput, error) {
	items, err := expenseItems(r.Items)
	if err != nil {
		return usecase.UpdateExpenseInput{}, err
	}
	date, err := parseDatePtr(r.Date)
	if err != nil {
		return usecase.UpdateExpenseInput{}, err
	}

	return usecase.UpdateExpenseInput{
		Date:          date,
		AccountID:     r.AccountID,
		Items:         items,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// CreateInvestmentRequest represents a request to record incoming capital.
type CreateInvestmentRequest struct {
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	AccountID     string `json:"account_id" validate:"required"`
	Amount        string `json:"amount" validate:"required,numeric"`
	PaymentMethod string `json:"payment_method" validate:"max=64"`
	Note          string `json:"note" validate:"max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInvestmentRequest) ToUseCaseInput() (usecase.CreateInvestmentInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return usecase.CreateInvestmentInput{}, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.CreateInvestmentInput{}, err
	}

	return usecase.CreateInvestmentInput{
		Date:          date,
		AccountID:     r.AccountID,
		Amount:        amount,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// UpdateInvestmentRequest holds the fields to change.
type UpdateInvestmentRequest struct {
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	AccountID     *string `json:"account_id"`
	Amount        *string `json:"amount" validate:"omitempty,numeric"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty,max=64"`
	Note          *string `json:"note" validate:"omitempty,max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateInvestmentRequest) ToUseCaseInput() (usecase.UpdateInvestmentInput, error) {
	amount, err := parseAmountPtr(r.Amount)
	if err != nil {
		return usecase.UpdateInvestmentInput{}, err
	}
	date, err := parseDatePtr(r.Date)
	if err != nil {
		return usecase.UpdateInvestmentInput{}, err
	}

	return usecase.UpdateInvestmentInput{
		Date:          date,
		AccountID:     r.AccountID,
		Amount:        amount,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// CreateVendorAdvanceReturnRequest represents a vendor refunding an advance.
type CreateVendorAdvanceReturnRequest struct {
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	VendorID      string `json:"vendor_id" validate:"required"`
	AccountID     string `json:"account_id" validate:"required"`
	Amount        string `json:"amount" validate:"required,numeric"`
	PaymentMethod string `json:"payment_method" validate:"max=64"`
	Note          string `json:"note" validate:"max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateVendorAdvanceReturnRequest) ToUseCaseInput() (usecase.CreateVendorAdvanceReturnInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return usecase.CreateVendorAdvanceReturnInput{}, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.CreateVendorAdvanceReturnInput{}, err
	}

	return usecase.CreateVendorAdvanceReturnInput{
		Date:          date,
		VendorID:      r.VendorID,
		AccountID:     r.AccountID,
		Amount:        amount,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// UpdateVendorAdvanceReturnRequest holds the fields to change.
type UpdateVendorAdvanceReturnRequest struct {
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	VendorID      *string `json:"vendor_id"`
	AccountID     *string `json:"account_id"`
	Amount        *string `json:"amount" validate:"omitempty,numeric"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty,max=64"`
	Note          *string `json:"note" validate:"omitempty,max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateVendorAdvanceReturnRequest) ToUseCaseInput() (usecase.UpdateVendorAdvanceReturnInput, error) {
	amount, err := parseAmountPtr(r.Amount)
	if err != nil {
		return usecase.UpdateVendorAdvanceReturnInput{}, err
	}
	date, err := parseDatePtr(r.Date)
	if err != nil {
		return usecase.UpdateVendorAdvanceReturnInput{}, err
	}

	return usecase.UpdateVendorAdvanceReturnInput{
		Date:          date,
		VendorID:      r.VendorID,
		AccountID:     r.AccountID,
		Amount:        amount,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// CreateClientPaymentRequest represents a client paying against its due.
type CreateClientPaymentRequest struct {
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ClientID      string `json:"client_id" validate:"required"`
	AccountID     string `json:"account_id" validate:"required"`
	Amount        string `json:"amount" validate:"required,numeric"`
	PaymentMethod string `json:"payment_method" validate:"max=64"`
	Note          string `json:"note" validate:"max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateClientPaymentRequest) ToUseCaseInput() (usecase.CreateClientPaymentInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return usecase.CreateClientPaymentInput{}, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.CreateClientPaymentInput{}, err
	}

	return usecase.CreateClientPaymentInput{
		Date:          date,
		ClientID:      r.ClientID,
		AccountID:     r.AccountID,
		Amount:        amount,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// UpdateClientPaymentRequest holds the fields to change.
type UpdateClientPaymentRequest struct {
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ClientID      *string `json:"client_id"`
	AccountID     *string `json:"account_id"`
	Amount        *string `json:"amount" validate:"omitempty,numeric"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty,max=64"`
	Note          *string `json:"note" validate:"omitempty,max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateClientPaymentRequest) ToUseCaseInput() (usecase.UpdateClientPaymentInput, error) {
	amount, err := parseAmountPtr(r.Amount)
	if err != nil {
		return usecase.UpdateClientPaymentInput{}, err
	}
	date, err := parseDatePtr(r.Date)
	if err != nil {
		return usecase.UpdateClientPaymentInput{}, err
	}

	return usecase.UpdateClientPaymentInput{
		Date:          date,
		ClientID:      r.ClientID,
		AccountID:     r.AccountID,
		Amount:        amount,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// ReconcileRequest is the body of POST /reconciliation.
type ReconcileRequest struct {
	Action string `json:"action" validate:"required,oneof=reconcile"`
}
