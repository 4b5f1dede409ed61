package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/agencyledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	db generated.DBTX
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts a ledger entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	return generated.New(conn(r.db, tx)).CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:              entry.ID,
		CompanyID:       entry.CompanyID.String(),
		Date:            timeToPgTimestamptz(entry.Date),
		VoucherNo:       entry.VoucherNo,
		ClientID:        textOrNull(entry.ClientID),
		VendorID:        textOrNull(entry.VendorID),
		Kind:            string(entry.Kind),
		AccountID:       entry.AccountID,
		AccountName:     entry.AccountName,
		Direction:       string(entry.Direction),
		Amount:          decimalToNumeric(entry.Amount),
		LastTotalAmount: decimalToNumeric(entry.LastTotalAmount),
		Note:            entry.Note,
		CreatedAt:       timeToPgTimestamptz(entry.CreatedAt),
	})
}

// DeleteByVoucher removes the entries of a voucher. An empty direction
// matches both directions.
func (r *EntryRepository) DeleteByVoucher(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, voucherNo string, kind domain.OperationKind, direction domain.Direction) (int64, error) {
	return generated.New(conn(r.db, tx)).DeleteLedgerEntriesByVoucher(ctx, generated.DeleteLedgerEntriesByVoucherParams{
		CompanyID: tenant.String(),
		VoucherNo: voucherNo,
		Kind:      string(kind),
		Direction: string(direction),
	})
}

// GetByVoucher lists the entries of a voucher.
func (r *EntryRepository) GetByVoucher(ctx context.Context, tenant domain.TenantID, voucherNo string) ([]*domain.LedgerEntry, error) {
	rows, err := generated.New(r.db).GetLedgerEntriesByVoucher(ctx, generated.GetLedgerEntriesByVoucherParams{
		CompanyID: tenant.String(),
		VoucherNo: voucherNo,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

// SumByClient sums the client's entries of the given kinds, receiv positive.
// A nil tx reads outside any transaction.
func (r *EntryRepository) SumByClient(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, clientID string, kinds []domain.OperationKind) (decimal.Decimal, error) {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}

	total, err := generated.New(conn(r.db, tx)).SumClientLedgerEntries(ctx, generated.SumClientLedgerEntriesParams{
		CompanyID: tenant.String(),
		ClientID:  textOrNull(clientID),
		Kinds:     names,
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func rowToEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:              row.ID,
		CompanyID:       domain.TenantID(row.CompanyID),
		Date:            row.Date.Time,
		VoucherNo:       row.VoucherNo,
		ClientID:        row.ClientID.String,
		VendorID:        row.VendorID.String,
		Kind:            domain.OperationKind(row.Kind),
		AccountID:       row.AccountID,
		AccountName:     row.AccountName,
		Direction:       domain.Direction(row.Direction),
		Amount:          numericToDecimal(row.Amount),
		LastTotalAmount: numericToDecimal(row.LastTotalAmount),
		Note:            row.Note,
		CreatedAt:       row.CreatedAt.Time,
	}
}
