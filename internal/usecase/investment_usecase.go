package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
)

// InvestmentUseCase posts capital brought into an account.
// Investments credit the account.
type InvestmentUseCase struct {
	flow postingFlow[*domain.Investment]
}

// NewInvestmentUseCase creates a new InvestmentUseCase.
func NewInvestmentUseCase(engine *PostingEngine, repo InvestmentRepository) *InvestmentUseCase {
	return &InvestmentUseCase{
		flow: postingFlow[*domain.Investment]{
			engine:   engine,
			repo:     repo,
			kind:     domain.KindInvestment,
			decorate: decorateInvestment,
		},
	}
}

// CreateInvestmentInput represents input for creating an investment.
type CreateInvestmentInput struct {
	Date          time.Time
	AccountID     string
	Amount        decimal.Decimal
	PaymentMethod string
	Note          string
}

// UpdateInvestmentInput carries the fields to change; nil keeps the stored value.
type UpdateInvestmentInput struct {
	Date          *time.Time
	AccountID     *string
	Amount        *decimal.Decimal
	PaymentMethod *string
	Note          *string
}

func (uc *InvestmentUseCase) Create(ctx context.Context, tenant domain.TenantID, input CreateInvestmentInput) (*domain.Investment, error) {
	rec := &domain.Investment{
		PostingHeader: domain.PostingHeader{Date: input.Date, Note: input.Note},
		AccountID:     input.AccountID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
	}

	if err := validateInvestment(tenant, rec); err != nil {
		return nil, err
	}

	return uc.flow.create(ctx, tenant, rec)
}

func (uc *InvestmentUseCase) Update(ctx context.Context, tenant domain.TenantID, id string, input UpdateInvestmentInput) (*domain.Investment, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	return uc.flow.update(ctx, tenant, id, func(old *domain.Investment) (*domain.Investment, error) {
		next := *old
		mergeHeader(&next.PostingHeader, input.Date, input.Note)
		setIfPresent(&next.AccountID, input.AccountID)
		setIfPresent(&next.Amount, input.Amount)
		setIfPresent(&next.PaymentMethod, input.PaymentMethod)

		if err := validateInvestment(tenant, &next); err != nil {
			return nil, err
		}
		return &next, nil
	})
}

func (uc *InvestmentUseCase) Delete(ctx context.Context, tenant domain.TenantID, id string) (*DeleteResult, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.delete(ctx, tenant, id)
}

func (uc *InvestmentUseCase) Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.Investment, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.get(ctx, tenant, id)
}

func validateInvestment(tenant domain.TenantID, rec *domain.Investment) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	if err := domain.ValidateAmount(rec.Amount); err != nil {
		return err
	}
	if err := domain.RequireID("account_id", rec.AccountID); err != nil {
		return err
	}
	return domain.ValidateNote(rec.Note)
}

func decorateInvestment(rec *domain.Investment, snap *Snapshot) {
	account := domain.BalanceRef{Kind: domain.BalanceAccount, ID: rec.AccountID}

	rec.AccountName = snap.Name(account)
	rec.AccountBalanceAfter = snap.Balance(account)
}
