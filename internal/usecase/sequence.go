package usecase

import (
	"context"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/metrics"
)

// SequenceGenerator issues human-readable voucher numbers.
type SequenceGenerator struct {
	voucherRepo VoucherRepository
	metrics     *metrics.Metrics
}

// NewSequenceGenerator creates a new SequenceGenerator.
func NewSequenceGenerator(voucherRepo VoucherRepository, m *metrics.Metrics) *SequenceGenerator {
	return &SequenceGenerator{voucherRepo: voucherRepo, metrics: m}
}

// Next returns the next voucher for prefix within tenant. The counter is
// advanced inside tx, so a rolled-back unit of work gives its number back.
func (g *SequenceGenerator) Next(ctx context.Context, tx Transaction, tenant domain.TenantID, prefix string) (string, error) {
	seq, err := g.voucherRepo.Next(ctx, tx, tenant, prefix)
	if err != nil {
		return "", domain.StoreFailure(err)
	}

	if g.metrics != nil {
		g.metrics.VouchersIssued.WithLabelValues(prefix).Inc()
	}

	return domain.FormatVoucher(prefix, seq), nil
}
