package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
)

// VendorAdvanceReturnUseCase posts vendors refunding advances paid to them.
type VendorAdvanceReturnUseCase struct {
	flow postingFlow[*domain.VendorAdvanceReturn]
}

// NewVendorAdvanceReturnUseCase creates a new VendorAdvanceReturnUseCase.
func NewVendorAdvanceReturnUseCase(engine *PostingEngine, repo VendorAdvanceReturnRepository) *VendorAdvanceReturnUseCase {
	return &VendorAdvanceReturnUseCase{
		flow: postingFlow[*domain.VendorAdvanceReturn]{
			engine:   engine,
			repo:     repo,
			kind:     domain.KindVendorAdvanceReturn,
			decorate: decorateVendorAdvanceReturn,
		},
	}
}

// CreateVendorAdvanceReturnInput represents input for creating a vendor advance return.
type CreateVendorAdvanceReturnInput struct {
	Date          time.Time
	VendorID      string
	AccountID     string
	Amount        decimal.Decimal
	PaymentMethod string
	Note          string
}

// UpdateVendorAdvanceReturnInput carries the fields to change; nil keeps the stored value.
type UpdateVendorAdvanceReturnInput struct {
	Date          *time.Time
	VendorID      *string
	AccountID     *string
	Amount        *decimal.Decimal
	PaymentMethod *string
	Note          *string
}

// Create posts a refund. The vendor must hold at least amount in advance.
func (uc *VendorAdvanceReturnUseCase) Create(ctx context.Context, tenant domain.TenantID, input CreateVendorAdvanceReturnInput) (*domain.VendorAdvanceReturn, error) {
	rec := &domain.VendorAdvanceReturn{
		PostingHeader: domain.PostingHeader{Date: input.Date, Note: input.Note},
		VendorID:      input.VendorID,
		AccountID:     input.AccountID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
	}

	if err := validateVendorAdvanceReturn(tenant, rec); err != nil {
		return nil, err
	}

	return uc.flow.create(ctx, tenant, rec)
}

// Update reverses the stored refund and posts the merged one under the same voucher.
func (uc *VendorAdvanceReturnUseCase) Update(ctx context.Context, tenant domain.TenantID, id string, input UpdateVendorAdvanceReturnInput) (*domain.VendorAdvanceReturn, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	return uc.flow.update(ctx, tenant, id, func(old *domain.VendorAdvanceReturn) (*domain.VendorAdvanceReturn, error) {
		next := *old
		mergeHeader(&next.PostingHeader, input.Date, input.Note)
		setIfPresent(&next.VendorID, input.VendorID)
		setIfPresent(&next.AccountID, input.AccountID)
		setIfPresent(&next.Amount, input.Amount)
		setIfPresent(&next.PaymentMethod, input.PaymentMethod)

		if err := validateVendorAdvanceReturn(tenant, &next); err != nil {
			return nil, err
		}
		return &next, nil
	})
}

// Delete reverses and removes a vendor advance return.
func (uc *VendorAdvanceReturnUseCase) Delete(ctx context.Context, tenant domain.TenantID, id string) (*DeleteResult, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.delete(ctx, tenant, id)
}

// Get returns a vendor advance return with current display fields.
func (uc *VendorAdvanceReturnUseCase) Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.VendorAdvanceReturn, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.get(ctx, tenant, id)
}

func validateVendorAdvanceReturn(tenant domain.TenantID, rec *domain.VendorAdvanceReturn) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	if err := domain.ValidateAmount(rec.Amount); err != nil {
		return err
	}
	if err := domain.RequireID("vendor_id", rec.VendorID); err != nil {
		return err
	}
	if err := domain.RequireID("account_id", rec.AccountID); err != nil {
		return err
	}
	return domain.ValidateNote(rec.Note)
}

func decorateVendorAdvanceReturn(rec *domain.VendorAdvanceReturn, snap *Snapshot) {
	vendor := domain.BalanceRef{Kind: domain.BalanceVendor, ID: rec.VendorID}
	account := domain.BalanceRef{Kind: domain.BalanceAccount, ID: rec.AccountID}

	rec.VendorName = snap.Name(vendor)
	rec.AccountName = snap.Name(account)
	rec.VendorBalanceAfter = domain.ToTagged(snap.Balance(vendor))
	rec.AccountBalanceAfter = snap.Balance(account)
}
