package usecase

import (
	"context"
	"time"

	"github.com/iho/agencyledger/internal/domain"
)

// ExpenseUseCase posts money spent from an account across expense heads.
type ExpenseUseCase struct {
	flow postingFlow[*domain.Expense]
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(engine *PostingEngine, repo ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{
		flow: postingFlow[*domain.Expense]{
			engine:   engine,
			repo:     repo,
			kind:     domain.KindExpense,
			decorate: decorateExpense,
		},
	}
}

// CreateExpenseInput represents input for creating an expense.
type CreateExpenseInput struct {
	Date          time.Time
	AccountID     string
	Items         []domain.ExpenseItem
	PaymentMethod string
	Note          string
}

// UpdateExpenseInput carries the fields to change; nil keeps the stored value.
// A non-nil Items replaces every stored item.
type UpdateExpenseInput struct {
	Date          *time.Time
	AccountID     *string
	Items         []domain.ExpenseItem
	PaymentMethod *string
	Note          *string
}

// Create posts one payout of the item total.
func (uc *ExpenseUseCase) Create(ctx context.Context, tenant domain.TenantID, input CreateExpenseInput) (*domain.Expense, error) {
	rec := &domain.Expense{
		PostingHeader: domain.PostingHeader{Date: input.Date, Note: input.Note},
		AccountID:     input.AccountID,
		Items:         append([]domain.ExpenseItem(nil), input.Items...),
		PaymentMethod: input.PaymentMethod,
	}

	if err := validateExpense(tenant, rec); err != nil {
		return nil, err
	}

	return uc.flow.create(ctx, tenant, rec)
}

// Update reverses the stored expense and posts the merged one under the same voucher.
func (uc *ExpenseUseCase) Update(ctx context.Context, tenant domain.TenantID, id string, input UpdateExpenseInput) (*domain.Expense, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	for _, item := range input.Items {
		if err := domain.ValidateAmount(item.Amount); err != nil {
			return nil, err
		}
	}

	return uc.flow.update(ctx, tenant, id, func(old *domain.Expense) (*domain.Expense, error) {
		next := *old
		mergeHeader(&next.PostingHeader, input.Date, input.Note)
		setIfPresent(&next.AccountID, input.AccountID)
		setIfPresent(&next.PaymentMethod, input.PaymentMethod)
		if input.Items != nil {
			next.Items = append([]domain.ExpenseItem(nil), input.Items...)
		}

		if err := validateExpense(tenant, &next); err != nil {
			return nil, err
		}
		return &next, nil
	})
}

// Delete reverses and removes an expense.
func (uc *ExpenseUseCase) Delete(ctx context.Context, tenant domain.TenantID, id string) (*DeleteResult, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.delete(ctx, tenant, id)
}

// Get returns an expense with current display fields.
func (uc *ExpenseUseCase) Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.Expense, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.get(ctx, tenant, id)
}

func validateExpense(tenant domain.TenantID, rec *domain.Expense) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := domain.RequireID("account_id", rec.AccountID); err != nil {
		return err
	}
	return domain.ValidateNote(rec.Note)
}

func decorateExpense(rec *domain.Expense, snap *Snapshot) {
	account := domain.BalanceRef{Kind: domain.BalanceAccount, ID: rec.AccountID}

	rec.AccountName = snap.Name(account)
	rec.AccountBalanceAfter = snap.Balance(account)
}
