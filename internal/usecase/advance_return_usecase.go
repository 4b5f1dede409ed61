package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
)

// AdvanceReturnUseCase posts clients taking back part of their advance.
type AdvanceReturnUseCase struct {
	flow postingFlow[*domain.AdvanceReturn]
}

// NewAdvanceReturnUseCase creates a new AdvanceReturnUseCase.
func NewAdvanceReturnUseCase(engine *PostingEngine, repo AdvanceReturnRepository) *AdvanceReturnUseCase {
	return &AdvanceReturnUseCase{
		flow: postingFlow[*domain.AdvanceReturn]{
			engine:   engine,
			repo:     repo,
			kind:     domain.KindAdvanceReturn,
			decorate: decorateAdvanceReturn,
		},
	}
}

// CreateAdvanceReturnInput represents input for creating an advance return.
type CreateAdvanceReturnInput struct {
	Date          time.Time
	ClientID      string
	AccountID     string
	Amount        decimal.Decimal
	PaymentMethod string
	Note          string
}

// UpdateAdvanceReturnInput carries the fields to change; nil keeps the stored value.
type UpdateAdvanceReturnInput struct {
	Date          *time.Time
	ClientID      *string
	AccountID     *string
	Amount        *decimal.Decimal
	PaymentMethod *string
	Note          *string
}

// Create posts a new advance return.
func (uc *AdvanceReturnUseCase) Create(ctx context.Context, tenant domain.TenantID, input CreateAdvanceReturnInput) (*domain.AdvanceReturn, error) {
	rec := &domain.AdvanceReturn{
		PostingHeader: domain.PostingHeader{Date: input.Date, Note: input.Note},
		ClientID:      input.ClientID,
		AccountID:     input.AccountID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
	}

	if err := validateAdvanceReturn(tenant, rec); err != nil {
		return nil, err
	}

	return uc.flow.create(ctx, tenant, rec)
}

// Update reverses the stored advance return and posts the merged one under the same voucher.
func (uc *AdvanceReturnUseCase) Update(ctx context.Context, tenant domain.TenantID, id string, input UpdateAdvanceReturnInput) (*domain.AdvanceReturn, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	return uc.flow.update(ctx, tenant, id, func(old *domain.AdvanceReturn) (*domain.AdvanceReturn, error) {
		next := *old
		mergeHeader(&next.PostingHeader, input.Date, input.Note)
		setIfPresent(&next.ClientID, input.ClientID)
		setIfPresent(&next.AccountID, input.AccountID)
		setIfPresent(&next.Amount, input.Amount)
		setIfPresent(&next.PaymentMethod, input.PaymentMethod)

		if err := validateAdvanceReturn(tenant, &next); err != nil {
			return nil, err
		}
		return &next, nil
	})
}

// Delete reverses and removes an advance return.
func (uc *AdvanceReturnUseCase) Delete(ctx context.Context, tenant domain.TenantID, id string) (*DeleteResult, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.delete(ctx, tenant, id)
}

// Get returns an advance return with current display fields.
func (uc *AdvanceReturnUseCase) Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.AdvanceReturn, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.get(ctx, tenant, id)
}

func validateAdvanceReturn(tenant domain.TenantID, rec *domain.AdvanceReturn) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	if err := domain.ValidateAmount(rec.Amount); err != nil {
		return err
	}
	if err := domain.RequireID("client_id", rec.ClientID); err != nil {
		return err
	}
	if err := domain.RequireID("account_id", rec.AccountID); err != nil {
		return err
	}
	return domain.ValidateNote(rec.Note)
}

func decorateAdvanceReturn(rec *domain.AdvanceReturn, snap *Snapshot) {
	client := domain.BalanceRef{Kind: domain.BalanceClientPresent, ID: rec.ClientID}
	account := domain.BalanceRef{Kind: domain.BalanceAccount, ID: rec.AccountID}

	rec.ClientName = snap.Name(client)
	rec.AccountName = snap.Name(account)
	rec.ClientBalanceAfter = snap.Balance(client)
	rec.AccountBalanceAfter = snap.Balance(account)
}
