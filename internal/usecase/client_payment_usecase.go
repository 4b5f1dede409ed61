package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/metrics"
)

// ClientPaymentUseCase posts clients paying down their due amount. Every
// change to a due amount leaves an audit entry.
type ClientPaymentUseCase struct {
	flow      postingFlow[*domain.ClientPayment]
	auditRepo AuditRepository
	idGen     IDGenerator
	metrics   *metrics.Metrics
	reports   Cache
}

// NewClientPaymentUseCase creates a new ClientPaymentUseCase.
func NewClientPaymentUseCase(
	engine *PostingEngine,
	repo ClientPaymentRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *ClientPaymentUseCase {
	uc := &ClientPaymentUseCase{
		auditRepo: auditRepo,
		idGen:     idGen,
		metrics:   m,
	}
	uc.flow = postingFlow[*domain.ClientPayment]{
		engine:   engine,
		repo:     repo,
		kind:     domain.KindClientPayment,
		decorate: decorateClientPayment,
		audit:    uc.auditDueChanges,
	}

	return uc
}

// SetReportCache makes committed payments drop the tenant's cached
// reconciliation report.
func (uc *ClientPaymentUseCase) SetReportCache(cache Cache) {
	uc.reports = cache
}

func (uc *ClientPaymentUseCase) invalidateReport(ctx context.Context, tenant domain.TenantID) {
	if uc.reports == nil {
		return
	}
	if err := uc.reports.Delete(ctx, reportCacheKey(tenant)); err != nil {
		uc.flow.engine.logger.Warn().Err(err).
			Str("company_id", tenant.String()).
			Msg("failed to invalidate reconciliation report")
	}
}

// CreateClientPaymentInput represents input for creating a client payment.
type CreateClientPaymentInput struct {
	Date          time.Time
	ClientID      string
	AccountID     string
	Amount        decimal.Decimal
	PaymentMethod string
	Note          string
}

// UpdateClientPaymentInput carries the fields to change; nil keeps the stored value.
type UpdateClientPaymentInput struct {
	Date          *time.Time
	ClientID      *string
	AccountID     *string
	Amount        *decimal.Decimal
	PaymentMethod *string
	Note          *string
}

func (uc *ClientPaymentUseCase) Create(ctx context.Context, tenant domain.TenantID, input CreateClientPaymentInput) (*domain.ClientPayment, error) {
	rec := &domain.ClientPayment{
		PostingHeader: domain.PostingHeader{Date: input.Date, Note: input.Note},
		ClientID:      input.ClientID,
		AccountID:     input.AccountID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
	}

	if err := validateClientPayment(tenant, rec); err != nil {
		return nil, err
	}

	created, err := uc.flow.create(ctx, tenant, rec)
	if err != nil {
		return nil, err
	}
	uc.invalidateReport(ctx, tenant)

	return created, nil
}

func (uc *ClientPaymentUseCase) Update(ctx context.Context, tenant domain.TenantID, id string, input UpdateClientPaymentInput) (*domain.ClientPayment, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	updated, err := uc.flow.update(ctx, tenant, id, func(old *domain.ClientPayment) (*domain.ClientPayment, error) {
		next := *old
		mergeHeader(&next.PostingHeader, input.Date, input.Note)
		setIfPresent(&next.ClientID, input.ClientID)
		setIfPresent(&next.AccountID, input.AccountID)
		setIfPresent(&next.Amount, input.Amount)
		setIfPresent(&next.PaymentMethod, input.PaymentMethod)

		if err := validateClientPayment(tenant, &next); err != nil {
			return nil, err
		}
		return &next, nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateReport(ctx, tenant)

	return updated, nil
}

func (uc *ClientPaymentUseCase) Delete(ctx context.Context, tenant domain.TenantID, id string) (*DeleteResult, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	res, err := uc.flow.delete(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	uc.invalidateReport(ctx, tenant)

	return res, nil
}

func (uc *ClientPaymentUseCase) Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.ClientPayment, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return uc.flow.get(ctx, tenant, id)
}

// AuditTrail lists the due-amount history of a client.
func (uc *ClientPaymentUseCase) AuditTrail(ctx context.Context, tenant domain.TenantID, clientID string) ([]*domain.AuditEntry, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	entries, err := uc.auditRepo.ListByClient(ctx, tenant, clientID)
	if err != nil {
		return nil, normalizeError(err)
	}

	return entries, nil
}

var paymentAuditActions = map[string]domain.AuditAction{
	PhaseCreate: domain.AuditActionClientPaymentCreate,
	PhaseUpdate: domain.AuditActionClientPaymentUpdate,
	PhaseDelete: domain.AuditActionClientPaymentDelete,
}

func (uc *ClientPaymentUseCase) auditDueChanges(ctx context.Context, tx Transaction, tenant domain.TenantID, phase, voucherNo string, before domain.Balances, snap *Snapshot) error {
	action := paymentAuditActions[phase]

	refs := make([]domain.BalanceRef, 0, len(before))
	for ref := range before {
		if ref.Kind == domain.BalanceClientDue {
			refs = append(refs, ref)
		}
	}
	SortRefs(refs)

	for _, ref := range refs {
		after := snap.Balance(ref)
		if after.Equal(before[ref]) {
			continue
		}

		entry := &domain.AuditEntry{
			ID:            uc.idGen.Generate(),
			CompanyID:     tenant,
			Action:        action,
			ClientID:      ref.ID,
			VoucherNo:     voucherNo,
			BalanceBefore: before[ref],
			BalanceAfter:  after,
			Metadata:      domain.JSON{"phase": phase},
			CreatedAt:     time.Now().UTC(),
		}

		if err := uc.auditRepo.CreateTx(ctx, tx, entry); err != nil {
			return err
		}

		if uc.metrics != nil {
			uc.metrics.AuditEntriesCreated.WithLabelValues(string(action)).Inc()
		}
	}

	return nil
}

func validateClientPayment(tenant domain.TenantID, rec *domain.ClientPayment) error {
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

func decorateClientPayment(rec *domain.ClientPayment, snap *Snapshot) {
	due := domain.BalanceRef{Kind: domain.BalanceClientDue, ID: rec.ClientID}
	account := domain.BalanceRef{Kind: domain.BalanceAccount, ID: rec.AccountID}

	rec.ClientName = snap.Name(due)
	rec.AccountName = snap.Name(account)
	rec.DueAfter = snap.Balance(due)
	rec.AccountBalanceAfter = snap.Balance(account)
}
