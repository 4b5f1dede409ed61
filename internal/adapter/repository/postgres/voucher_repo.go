package postgres

import (
	"context"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/agencyledger/internal/usecase"
)

// VoucherRepository implements usecase.VoucherRepository on an upserted
// counter row per (company, prefix).
type VoucherRepository struct {
	db generated.DBTX
}

// NewVoucherRepository creates a new VoucherRepository.
func NewVoucherRepository(db generated.DBTX) *VoucherRepository {
	return &VoucherRepository{db: db}
}

// Next advances the counter. The row stays locked until tx ends, so
// concurrent postings of the same prefix queue behind each other.
func (r *VoucherRepository) Next(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, prefix string) (int64, error) {
	return generated.New(conn(r.db, tx)).NextVoucherSeq(ctx, generated.NextVoucherSeqParams{
		CompanyID: tenant.String(),
		Prefix:    prefix,
	})
}
