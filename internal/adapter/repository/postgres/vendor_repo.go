package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/agencyledger/internal/usecase"
)

// VendorRepository implements usecase.VendorRepository. Balances are signed in
// the domain and stored as (balance_type, balance_amount).
type VendorRepository struct {
	db generated.DBTX
}

// NewVendorRepository creates a new VendorRepository.
func NewVendorRepository(db generated.DBTX) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) GetByID(ctx context.Context, tenant domain.TenantID, id string) (*domain.Vendor, error) {
	row, err := generated.New(r.db).GetVendorByID(ctx, generated.GetVendorByIDParams{
		ID:        id,
		CompanyID: tenant.String(),
	})
	if err != nil {
		return nil, vendorError(err)
	}

	return rowToVendor(row)
}

func (r *VendorRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, id string) (*domain.Vendor, error) {
	row, err := generated.New(conn(r.db, tx)).GetVendorByIDForUpdate(ctx, generated.GetVendorByIDForUpdateParams{
		ID:        id,
		CompanyID: tenant.String(),
	})
	if err != nil {
		return nil, vendorError(err)
	}

	return rowToVendor(row)
}

// UpdateBalance stores the signed balance in its tagged form.
func (r *VendorRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	tagged := domain.ToTagged(balance)

	return generated.New(conn(r.db, tx)).UpdateVendorBalance(ctx, generated.UpdateVendorBalanceParams{
		ID:            id,
		BalanceType:   string(tagged.Type),
		BalanceAmount: decimalToNumeric(tagged.Amount),
		UpdatedAt:     timeToPgTimestamptz(updatedAt),
	})
}

func vendorError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrVendorNotFound
	}
	return err
}

func rowToVendor(row generated.Vendor) (*domain.Vendor, error) {
	tagged := domain.TaggedAmount{
		Type:   domain.BalanceType(row.BalanceType),
		Amount: numericToDecimal(row.BalanceAmount),
	}

	balance, err := tagged.Signed()
	if err != nil {
		return nil, fmt.Errorf("vendor %s: %w", row.ID, err)
	}

	return &domain.Vendor{
		ID:        row.ID,
		CompanyID: domain.TenantID(row.CompanyID),
		Name:      row.Name,
		Balance:   balance,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}, nil
}
