package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/metrics"
)

// DueAffectingKinds are the posting kinds whose ledger entries move a
// client's due amount.
var DueAffectingKinds = []domain.OperationKind{domain.KindClientPayment}

// ReconciliationDetail describes one client's due amount against the ledger.
type ReconciliationDetail struct {
	ClientID    string          `json:"client_id"`
	Name        string          `json:"name"`
	StoredDue   decimal.Decimal `json:"stored_due"`
	ExpectedDue decimal.Decimal `json:"expected_due"`
	Difference  decimal.Decimal `json:"difference"`
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalClients    int                    `json:"total_clients"`
	DriftingClients int                    `json:"drifting_clients"`
	Details         []ReconciliationDetail `json:"details"`
	CheckedAt       time.Time              `json:"checked_at"`
}

// ReconcileFailure is a client whose correction could not be applied.
type ReconcileFailure struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message"`
}

// ReconciliationSummary is the outcome of a reconcile pass.
type ReconciliationSummary struct {
	TotalClients int                    `json:"total_clients"`
	Corrected    int                    `json:"corrected"`
	Corrections  []ReconciliationDetail `json:"corrections"`
	Errors       []ReconcileFailure     `json:"errors"`
}

// ReconciliationUseCase handles due-amount reconciliation operations
type ReconciliationUseCase struct {
	txManager  TransactionManager
	clientRepo ClientRepository
	entryRepo  EntryRepository
	auditRepo  AuditRepository
	balances   *BalanceStore
	idGen      IDGenerator
	cache      Cache
	cacheTTL   time.Duration
	timeout    time.Duration
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// NewReconciliationUseCase creates a new reconciliation use case.
// cache may be nil.
func NewReconciliationUseCase(
	txManager TransactionManager,
	clientRepo ClientRepository,
	entryRepo EntryRepository,
	auditRepo AuditRepository,
	balances *BalanceStore,
	idGen IDGenerator,
	cache Cache,
	cacheTTL time.Duration,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *ReconciliationUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultReportCacheTTL
	}

	return &ReconciliationUseCase{
		txManager:  txManager,
		clientRepo: clientRepo,
		entryRepo:  entryRepo,
		auditRepo:  auditRepo,
		balances:   balances,
		idGen:      idGen,
		cache:      cache,
		cacheTTL:   cacheTTL,
		timeout:    DefaultTransactionTimeout,
		logger:     logger,
		metrics:    m,
	}
}

// SetTransactionTimeout bounds each per-client correction.
func (uc *ReconciliationUseCase) SetTransactionTimeout(d time.Duration) {
	if d > 0 {
		uc.timeout = d
	}
}

func reportCacheKey(tenant domain.TenantID) string {
	return "reconciliation:report:" + tenant.String()
}

// Report compares every client's stored due amount with the amount the
// ledger implies. It never writes.
func (uc *ReconciliationUseCase) Report(ctx context.Context, tenant domain.TenantID) (*ReconciliationReport, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	if cached := uc.cachedReport(ctx, tenant); cached != nil {
		return cached, nil
	}

	clients, err := uc.clientRepo.ListByCompany(ctx, tenant)
	if err != nil {
		return nil, normalizeError(err)
	}

	report := &ReconciliationReport{
		TotalClients: len(clients),
		Details:      make([]ReconciliationDetail, 0),
		CheckedAt:    time.Now().UTC(),
	}

	for _, client := range clients {
		sum, err := uc.entryRepo.SumByClient(ctx, nil, tenant, client.ID, DueAffectingKinds)
		if err != nil {
			return nil, normalizeError(err)
		}

		detail := newDetail(client, client.DueAmount, sum)
		if detail.Difference.IsZero() {
			continue
		}

		report.DriftingClients++
		report.Details = append(report.Details, detail)
	}

	if uc.metrics != nil {
		uc.metrics.ReconcileDrift.Set(float64(report.DriftingClients))
	}

	uc.storeReport(ctx, tenant, report)

	return report, nil
}

// Reconcile writes the expected due amount back for every drifting client.
// Each client is corrected in its own unit of work; failures are collected
// and do not stop the pass.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, tenant domain.TenantID) (*ReconciliationSummary, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	clients, err := uc.clientRepo.ListByCompany(ctx, tenant)
	if err != nil {
		return nil, normalizeError(err)
	}

	summary := &ReconciliationSummary{
		TotalClients: len(clients),
		Corrections:  make([]ReconciliationDetail, 0),
		Errors:       make([]ReconcileFailure, 0),
	}

	for _, client := range clients {
		detail, err := uc.reconcileClient(ctx, tenant, client)
		if err != nil {
			uc.logger.Error().Err(err).
				Str("company_id", tenant.String()).
				Str("client_id", client.ID).
				Msg("failed to reconcile client")

			summary.Errors = append(summary.Errors, ReconcileFailure{
				ClientID: client.ID,
				Message:  domain.AsError(err).Error(),
			})

			if uc.metrics != nil {
				uc.metrics.ReconcileFailures.Inc()
			}
			continue
		}

		if detail == nil {
			continue
		}

		summary.Corrected++
		summary.Corrections = append(summary.Corrections, *detail)

		if uc.metrics != nil {
			uc.metrics.ReconcileCorrections.Inc()
		}
	}

	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, reportCacheKey(tenant)); err != nil {
			uc.logger.Warn().Err(err).Msg("failed to invalidate reconciliation report")
		}
	}

	return summary, nil
}

// reconcileClient corrects one client. It returns nil when nothing drifted.
func (uc *ReconciliationUseCase) reconcileClient(ctx context.Context, tenant domain.TenantID, client *domain.Client) (*ReconciliationDetail, error) {
	txCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	defer func() {
		_ = tx.Rollback(txCtx)
	}()

	ref := domain.BalanceRef{Kind: domain.BalanceClientDue, ID: client.ID}

	snap, err := uc.balances.Lock(txCtx, tx, tenant, []domain.BalanceRef{ref})
	if err != nil {
		return nil, normalizeError(err)
	}

	sum, err := uc.entryRepo.SumByClient(txCtx, tx, tenant, client.ID, DueAffectingKinds)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}

	stored := snap.Balance(ref)
	detail := newDetail(client, stored, sum)
	if detail.Difference.IsZero() {
		return nil, nil
	}

	now := time.Now().UTC()

	after, err := uc.balances.ApplyDelta(txCtx, tx, snap, ref, detail.Difference, now)
	if err != nil {
		return nil, normalizeError(err)
	}

	entry := &domain.AuditEntry{
		ID:            uc.idGen.Generate(),
		CompanyID:     tenant,
		Action:        domain.AuditActionDueReconcile,
		ClientID:      client.ID,
		BalanceBefore: stored,
		BalanceAfter:  after,
		Metadata: domain.JSON{
			"expected_due": detail.ExpectedDue.String(),
			"difference":   detail.Difference.String(),
		},
		CreatedAt: now,
	}

	if err := uc.auditRepo.CreateTx(txCtx, tx, entry); err != nil {
		return nil, domain.StoreFailure(err)
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, domain.StoreFailure(err)
	}

	if uc.metrics != nil {
		uc.metrics.AuditEntriesCreated.WithLabelValues(string(domain.AuditActionDueReconcile)).Inc()
	}

	return &detail, nil
}

func newDetail(client *domain.Client, stored, paymentSum decimal.Decimal) ReconciliationDetail {
	expected := client.ExpectedDue(paymentSum)

	return ReconciliationDetail{
		ClientID:    client.ID,
		Name:        client.Name,
		StoredDue:   stored,
		ExpectedDue: expected,
		Difference:  expected.Sub(stored),
	}
}

func (uc *ReconciliationUseCase) cachedReport(ctx context.Context, tenant domain.TenantID) *ReconciliationReport {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, reportCacheKey(tenant))
	if err != nil || data == nil {
		return nil
	}

	var report ReconciliationReport
	if err := json.Unmarshal(data, &report); err != nil {
		uc.logger.Warn().Err(err).Msg("discarding unreadable cached report")
		return nil
	}

	return &report
}

func (uc *ReconciliationUseCase) storeReport(ctx context.Context, tenant domain.TenantID, report *ReconciliationReport) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		uc.logger.Warn().Err(fmt.Errorf("marshal report: %w", err)).Msg("failed to cache reconciliation report")
		return
	}

	if err := uc.cache.Set(ctx, reportCacheKey(tenant), data, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to cache reconciliation report")
	}
}
