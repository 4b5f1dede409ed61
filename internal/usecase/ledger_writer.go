package usecase

import (
	"context"

	"github.com/iho/agencyledger/internal/domain"
)

// LedgerWriter appends and removes ledger entries.
type LedgerWriter struct {
	entryRepo EntryRepository
	idGen     IDGenerator
}

// NewLedgerWriter creates a new LedgerWriter.
func NewLedgerWriter(entryRepo EntryRepository, idGen IDGenerator) *LedgerWriter {
	return &LedgerWriter{entryRepo: entryRepo, idGen: idGen}
}

// Append inserts entry and returns its id. It never touches balances.
func (w *LedgerWriter) Append(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = w.idGen.Generate()
	}

	if err := w.entryRepo.Create(ctx, tx, entry); err != nil {
		return "", err
	}

	return entry.ID, nil
}

// Remove deletes the entries of a voucher and kind, optionally narrowed to
// one direction, and reports how many were removed.
func (w *LedgerWriter) Remove(ctx context.Context, tx Transaction, tenant domain.TenantID, voucherNo string, kind domain.OperationKind, direction domain.Direction) (int64, error) {
	return w.entryRepo.DeleteByVoucher(ctx, tx, tenant, voucherNo, kind, direction)
}
