package usecase

import (
	"context"
	"errors"

	"github.com/iho/agencyledger/internal/domain"
)

// auditFunc runs inside the unit of work after a posting changed balances.
// before holds the locked balances as they were prior to any change.
type auditFunc func(ctx context.Context, tx Transaction, tenant domain.TenantID, phase, voucherNo string, before domain.Balances, snap *Snapshot) error

// postingFlow wires one record repository to the engine.
type postingFlow[T domain.Posting] struct {
	engine   *PostingEngine
	repo     PostingRepository[T]
	kind     domain.OperationKind
	decorate func(T, *Snapshot)
	audit    auditFunc
}

func (f *postingFlow[T]) create(ctx context.Context, tenant domain.TenantID, rec T) (T, error) {
	var zero T

	err := f.engine.Run(ctx, f.kind, PhaseCreate, func(ctx context.Context, tx Transaction) error {
		voucherNo, err := f.engine.NextVoucher(ctx, tx, tenant, f.kind)
		if err != nil {
			return err
		}

		now := f.engine.now()
		head := rec.Head()
		head.ID = f.engine.idGen.Generate()
		head.CompanyID = tenant
		head.VoucherNo = voucherNo
		head.CreatedAt = now
		head.UpdatedAt = now
		if head.Date.IsZero() {
			head.Date = now
		}

		snap, err := f.engine.Lock(ctx, tx, tenant, rec)
		if err != nil {
			return err
		}
		before := snap.Balances.Clone()

		if err := f.engine.CheckCoverage(before, rec); err != nil {
			return err
		}

		if err := f.engine.Post(ctx, tx, snap, rec); err != nil {
			return err
		}

		if err := f.repo.Create(ctx, tx, rec); err != nil {
			return err
		}

		if f.audit != nil {
			if err := f.audit(ctx, tx, tenant, PhaseCreate, voucherNo, before, snap); err != nil {
				return err
			}
		}

		f.decorate(rec, snap)

		return nil
	})
	if err != nil {
		return zero, err
	}

	return rec, nil
}

// update replaces the record with merge(old). The old effect is reversed and
// the new one posted under the same voucher.
func (f *postingFlow[T]) update(ctx context.Context, tenant domain.TenantID, id string, merge func(old T) (T, error)) (T, error) {
	var (
		zero   T
		result T
	)

	err := f.engine.Run(ctx, f.kind, PhaseUpdate, func(ctx context.Context, tx Transaction) error {
		old, err := f.repo.GetByIDForUpdate(ctx, tx, tenant, id)
		if err != nil {
			return err
		}

		next, err := merge(old)
		if err != nil {
			return err
		}

		oldHead, head := old.Head(), next.Head()
		head.ID = oldHead.ID
		head.CompanyID = oldHead.CompanyID
		head.VoucherNo = oldHead.VoucherNo
		head.CreatedAt = oldHead.CreatedAt
		head.UpdatedAt = f.engine.now()

		snap, err := f.engine.Lock(ctx, tx, tenant, old, next)
		if err != nil {
			return err
		}
		before := snap.Balances.Clone()

		projected := before.Clone()
		projected.Apply(domain.NegateLegs(old.Legs()))
		if err := f.engine.CheckCoverage(projected, next); err != nil {
			return err
		}

		if _, err := f.engine.Reverse(ctx, tx, snap, old); err != nil {
			return err
		}

		if err := f.engine.Post(ctx, tx, snap, next); err != nil {
			return err
		}

		if err := f.repo.Update(ctx, tx, next); err != nil {
			return err
		}

		if f.audit != nil {
			if err := f.audit(ctx, tx, tenant, PhaseUpdate, head.VoucherNo, before, snap); err != nil {
				return err
			}
		}

		f.decorate(next, snap)
		result = next

		return nil
	})
	if err != nil {
		return zero, err
	}

	return result, nil
}

func (f *postingFlow[T]) delete(ctx context.Context, tenant domain.TenantID, id string) (*DeleteResult, error) {
	var result *DeleteResult

	err := f.engine.Run(ctx, f.kind, PhaseDelete, func(ctx context.Context, tx Transaction) error {
		old, err := f.repo.GetByIDForUpdate(ctx, tx, tenant, id)
		if err != nil {
			return err
		}

		snap, err := f.engine.Lock(ctx, tx, tenant, old)
		if err != nil {
			return err
		}
		before := snap.Balances.Clone()

		warnings, err := f.engine.Reverse(ctx, tx, snap, old)
		if err != nil {
			return err
		}

		if err := f.repo.Delete(ctx, tx, tenant, id); err != nil {
			return err
		}

		head := old.Head()
		if f.audit != nil {
			if err := f.audit(ctx, tx, tenant, PhaseDelete, head.VoucherNo, before, snap); err != nil {
				return err
			}
		}

		result = &DeleteResult{
			ID:        head.ID,
			VoucherNo: head.VoucherNo,
			Warnings:  warnings,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (f *postingFlow[T]) get(ctx context.Context, tenant domain.TenantID, id string) (T, error) {
	var zero T

	rec, err := f.repo.GetByID(ctx, tenant, id)
	if err != nil {
		return zero, normalizeError(err)
	}

	snap, err := f.engine.balances.Read(ctx, tenant, domain.Refs(rec.Legs()))
	if err != nil {
		return zero, normalizeError(err)
	}

	f.decorate(rec, snap)

	return rec, nil
}

// normalizeError reports any non-domain error as a store failure.
func normalizeError(err error) error {
	var appErr *domain.Error
	if errors.As(err, &appErr) {
		return err
	}
	return domain.StoreFailure(err)
}

