package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/metrics"
)

// Posting phases, used as metric labels.
const (
	PhaseCreate = "create"
	PhaseUpdate = "update"
	PhaseDelete = "delete"
)

// DeleteResult reports a deleted posting. Warnings carry non-fatal
// inconsistencies found while reversing it.
type DeleteResult struct {
	ID        string   `json:"id"`
	VoucherNo string   `json:"voucher_no"`
	Warnings  []string `json:"warnings,omitempty"`
}

// PostingEngine runs the shared create, update and delete algorithm for
// every posting kind: lock the touched balances, apply the signed legs,
// write one ledger entry per account leg, all in one unit of work.
type PostingEngine struct {
	txManager TransactionManager
	balances  *BalanceStore
	ledger    *LedgerWriter
	sequence  *SequenceGenerator
	idGen     IDGenerator
	tolerance decimal.Decimal
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	timeout   time.Duration
	now       func() time.Time
}

// NewPostingEngine creates a new PostingEngine.
func NewPostingEngine(
	txManager TransactionManager,
	balances *BalanceStore,
	ledger *LedgerWriter,
	sequence *SequenceGenerator,
	idGen IDGenerator,
	tolerance decimal.Decimal,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *PostingEngine {
	return &PostingEngine{
		txManager: txManager,
		balances:  balances,
		ledger:    ledger,
		sequence:  sequence,
		idGen:     idGen,
		tolerance: tolerance,
		logger:    logger,
		metrics:   m,
		timeout:   DefaultTransactionTimeout,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetTransactionTimeout bounds each unit of work. Non-positive values are ignored.
func (e *PostingEngine) SetTransactionTimeout(d time.Duration) {
	if d > 0 {
		e.timeout = d
	}
}

// Balances exposes the engine's balance store.
func (e *PostingEngine) Balances() *BalanceStore {
	return e.balances
}

// Run executes fn inside one unit of work. Any error that is not a
// *domain.Error is reported as a store failure.
func (e *PostingEngine) Run(ctx context.Context, kind domain.OperationKind, phase string, fn func(ctx context.Context, tx Transaction) error) error {
	start := time.Now()

	txCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	tx, err := e.txManager.Begin(txCtx)
	if err != nil {
		return e.fail(kind, phase, err)
	}
	defer func() {
		_ = tx.Rollback(txCtx)
	}()

	if err := fn(txCtx, tx); err != nil {
		return e.fail(kind, phase, err)
	}

	if err := tx.Commit(txCtx); err != nil {
		return e.fail(kind, phase, err)
	}

	if e.metrics != nil {
		e.metrics.Postings.WithLabelValues(string(kind), phase).Inc()
		e.metrics.PostingDuration.WithLabelValues(string(kind), phase).Observe(time.Since(start).Seconds())
	}

	return nil
}

func (e *PostingEngine) fail(kind domain.OperationKind, phase string, err error) error {
	var appErr *domain.Error
	if !errors.As(err, &appErr) {
		e.logger.Error().Err(err).
			Str("kind", string(kind)).
			Str("phase", phase).
			Msg("posting aborted by store failure")
		err = domain.StoreFailure(err)
		appErr = err.(*domain.Error)
	}

	if e.metrics != nil {
		e.metrics.PostingErrors.WithLabelValues(string(kind), string(appErr.Code)).Inc()
	}

	return err
}

// NextVoucher allocates a voucher number for kind inside tx.
func (e *PostingEngine) NextVoucher(ctx context.Context, tx Transaction, tenant domain.TenantID, kind domain.OperationKind) (string, error) {
	return e.sequence.Next(ctx, tx, tenant, kind.VoucherPrefix())
}

// Lock locks the balances touched by every posting given, in lock order.
func (e *PostingEngine) Lock(ctx context.Context, tx Transaction, tenant domain.TenantID, postings ...domain.Posting) (*Snapshot, error) {
	var legs []domain.Leg
	for _, p := range postings {
		legs = append(legs, p.Legs()...)
	}

	return e.balances.Lock(ctx, tx, tenant, domain.Refs(legs))
}

// CheckCoverage rejects legs that would drain an advance pool below the
// configured tolerance. Account balances are not guarded.
func (e *PostingEngine) CheckCoverage(balances domain.Balances, p domain.Posting) error {
	for _, leg := range p.Legs() {
		if !leg.Delta.IsNegative() || !guarded(leg.Ref.Kind) {
			continue
		}

		if err := EnsureCovers(balances[leg.Ref], leg.Delta.Neg(), e.tolerance); err != nil {
			return err
		}
	}

	return nil
}

func guarded(kind domain.BalanceKind) bool {
	return kind == domain.BalanceClientPresent || kind == domain.BalanceVendor
}

// Post applies p's legs to the locked balances and appends its ledger entries.
func (e *PostingEngine) Post(ctx context.Context, tx Transaction, snap *Snapshot, p domain.Posting) error {
	head := p.Head()
	clientID, vendorID := p.Parties()
	now := e.now()

	for _, leg := range p.Legs() {
		balance, err := e.balances.ApplyDelta(ctx, tx, snap, leg.Ref, leg.Delta, now)
		if err != nil {
			return err
		}

		if leg.Ref.Kind != domain.BalanceAccount {
			continue
		}

		entry := &domain.LedgerEntry{
			ID:              e.idGen.Generate(),
			CompanyID:       head.CompanyID,
			Date:            head.Date,
			VoucherNo:       head.VoucherNo,
			ClientID:        clientID,
			VendorID:        vendorID,
			Kind:            p.Kind(),
			AccountID:       leg.Ref.ID,
			AccountName:     snap.Name(leg.Ref),
			Direction:       domain.DirectionOf(leg.Delta),
			Amount:          leg.Delta.Abs(),
			LastTotalAmount: balance,
			Note:            head.Note,
			CreatedAt:       now,
		}

		if _, err := e.ledger.Append(ctx, tx, entry); err != nil {
			return err
		}
	}

	if e.metrics != nil {
		if amount, ok := postedAmount(p); ok {
			e.metrics.PostingAmount.WithLabelValues(string(p.Kind())).Observe(amount.InexactFloat64())
		}
	}

	return nil
}

// Reverse undoes p's balance effect and removes its ledger entries.
// Missing entries do not fail the reversal; they are returned as warnings.
func (e *PostingEngine) Reverse(ctx context.Context, tx Transaction, snap *Snapshot, p domain.Posting) ([]string, error) {
	head := p.Head()
	now := e.now()

	for _, leg := range domain.NegateLegs(p.Legs()) {
		if _, err := e.balances.ApplyDelta(ctx, tx, snap, leg.Ref, leg.Delta, now); err != nil {
			return nil, err
		}
	}

	removed, err := e.ledger.Remove(ctx, tx, head.CompanyID, head.VoucherNo, p.Kind(), "")
	if err != nil {
		return nil, err
	}

	if removed > 0 {
		return nil, nil
	}

	warning := fmt.Sprintf("no ledger entries found for voucher %s", head.VoucherNo)
	e.logger.Warn().
		Str("company_id", head.CompanyID.String()).
		Str("voucher_no", head.VoucherNo).
		Str("kind", string(p.Kind())).
		Msg("reversal removed no ledger entries")

	if e.metrics != nil {
		e.metrics.ReversalMissing.WithLabelValues(string(p.Kind())).Inc()
	}

	return []string{warning}, nil
}

// postedAmount returns the magnitude moved through accounts.
func postedAmount(p domain.Posting) (decimal.Decimal, bool) {
	total := decimal.Zero
	for _, leg := range p.Legs() {
		if leg.Ref.Kind == domain.BalanceAccount && leg.Delta.IsPositive() {
			total = total.Add(leg.Delta)
		}
	}
	if total.IsZero() {
		for _, leg := range p.Legs() {
			if leg.Ref.Kind == domain.BalanceAccount {
				total = total.Add(leg.Delta.Abs())
			}
		}
	}

	return total, !total.IsZero()
}
