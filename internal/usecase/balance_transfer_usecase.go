package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
)

// BalanceTransferUseCase handles transfers between the agency's own accounts.
type BalanceTransferUseCase struct {
	flow postingFlow[*domain.BalanceTransfer]
}

// NewBalanceTransferUseCase creates a new BalanceTransferUseCase.
func NewBalanceTransferUseCase(engine *PostingEngine, repo BalanceTransferRepository) *BalanceTransferUseCase {
	return &BalanceTransferUseCase{
		flow: postingFlow[*domain.BalanceTransfer]{
			engine:   engine,
			repo:     repo,
			kind:     domain.KindBalanceTransfer,
			decorate: decorateBalanceTransfer,
		},
	}
}

// CreateBalanceTransferInput represents input for creating a transfer.
type CreateBalanceTransferInput struct {
	Date          time.Time
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Charge        decimal.Decimal
	Note          string
}

// UpdateBalanceTransferInput carries the fields to change; nil keeps the stored value.
type UpdateBalanceTransferInput struct {
	Date          *time.Time
	FromAccountID *string
	ToAccountID   *string
	Amount        *decimal.Decimal
	Charge        *decimal.Decimal
	Note          *string
}

// Create posts a transfer. Both entries share one voucher: a payout of
// amount plus charge on the source and a receipt of amount on the destination.
func (uc *BalanceTransferUseCase) Create(ctx context.Context, tenant domain.TenantID, input CreateBalanceTransferInput) (*domain.BalanceTransfer, error) {
	rec := &domain.BalanceTransfer{
		PostingHeader: domain.PostingHeader{Date: input.Date, Note: input.Note},
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		Charge:        input.Charge,
	}

	if err := validateBalanceTransfer(tenant, rec); err != nil {
		return nil, err
	}

	return uc.flow.create(ctx, tenant, rec)
}

// Update reverses the stored transfer and posts the merged one under the same voucher.
func (uc *BalanceTransferUseCase) Update(ctx context.Context, tenant domain.TenantID, id string, input UpdateBalanceTransferInput) (*domain.BalanceTransfer, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	return uc.flow.update(ctx, tenant, id, func(old *domain.BalanceTransfer) (*domain.BalanceTransfer, error) {
		next := *old
		mergeHeader(&next.PostingHeader, input.Date, input.Note)
		setIfPresent(&next.FromAccountID, input.FromAccountID)
		setIfPresent(&next.ToAccountID, input.ToAccountID)
		setIfPresent(&next.Amount, input.Amount)
		setIfPresent(&next.Charge, input.Charge)

		if err := validateBalanceTransfer(tenant, &next); err != nil {
			return nil, err
		}
		return &next, nil
	})
}

// Delete reverses and removes a transfer.
func (uc *BalanceTransferUseCase) Delete(ctx context.Context, tenant domain.TenantID, id string) (*DeleteResult, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.delete(ctx, tenant, id)
}

// Get retrieves a transfer by ID.
func (uc *BalanceTransferUseCase) Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.BalanceTransfer, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.get(ctx, tenant, id)
}

func validateBalanceTransfer(tenant domain.TenantID, rec *domain.BalanceTransfer) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := domain.RequireID("from_account_id", rec.FromAccountID); err != nil {
		return err
	}
	if err := domain.RequireID("to_account_id", rec.ToAccountID); err != nil {
		return err
	}
	return domain.ValidateNote(rec.Note)
}

func decorateBalanceTransfer(rec *domain.BalanceTransfer, snap *Snapshot) {
	from := domain.BalanceRef{Kind: domain.BalanceAccount, ID: rec.FromAccountID}
	to := domain.BalanceRef{Kind: domain.BalanceAccount, ID: rec.ToAccountID}

	rec.FromAccountName = snap.Name(from)
	rec.ToAccountName = snap.Name(to)
	rec.FromBalanceAfter = snap.Balance(from)
	rec.ToBalanceAfter = snap.Balance(to)
}
