package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createLedgerEntry = `-- name: CreateLedgerEntry :exec
INSERT INTO ledger_entries (id, company_id, date, voucher_no, client_id, vendor_id, kind, account_id, account_name, direction, amount, last_total_amount, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

type CreateLedgerEntryParams struct {
	ID              string             `json:"id"`
	CompanyID       string             `json:"company_id"`
	Date            pgtype.Timestamptz `json:"date"`
	VoucherNo       string             `json:"voucher_no"`
	ClientID        pgtype.Text        `json:"client_id"`
	VendorID        pgtype.Text        `json:"vendor_id"`
	Kind            string             `json:"kind"`
	AccountID       string             `json:"account_id"`
	AccountName     string             `json:"account_name"`
	Direction       string             `json:"direction"`
	Amount          pgtype.Numeric     `json:"amount"`
	LastTotalAmount pgtype.Numeric     `json:"last_total_amount"`
	Note            string             `json:"note"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateLedgerEntry(ctx context.Context, arg CreateLedgerEntryParams) error {
	_, err := q.db.Exec(ctx, createLedgerEntry,
		arg.ID,
		arg.CompanyID,
		arg.Date,
		arg.VoucherNo,
		arg.ClientID,
		arg.VendorID,
		arg.Kind,
		arg.AccountID,
		arg.AccountName,
		arg.Direction,
		arg.Amount,
		arg.LastTotalAmount,
		arg.Note,
		arg.CreatedAt,
	)
	return err
}

const deleteLedgerEntriesByVoucher = `-- name: DeleteLedgerEntriesByVoucher :execrows
DELETE FROM ledger_entries
WHERE company_id = $1 AND voucher_no = $2 AND kind = $3 AND ($4::text = '' OR direction = $4::text)
`

type DeleteLedgerEntriesByVoucherParams struct {
	CompanyID string `json:"company_id"`
	VoucherNo string `json:"voucher_no"`
	Kind      string `json:"kind"`
	Direction string `json:"direction"`
}

func (q *Queries) DeleteLedgerEntriesByVoucher(ctx context.Context, arg DeleteLedgerEntriesByVoucherParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteLedgerEntriesByVoucher,
		arg.CompanyID,
		arg.VoucherNo,
		arg.Kind,
		arg.Direction,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getLedgerEntriesByVoucher = `-- name: GetLedgerEntriesByVoucher :many
SELECT id, company_id, date, voucher_no, client_id, vendor_id, kind, account_id, account_name, direction, amount, last_total_amount, note, created_at FROM ledger_entries
WHERE company_id = $1 AND voucher_no = $2
ORDER BY created_at, id
`

type GetLedgerEntriesByVoucherParams struct {
	CompanyID string `json:"company_id"`
	VoucherNo string `json:"voucher_no"`
}

func (q *Queries) GetLedgerEntriesByVoucher(ctx context.Context, arg GetLedgerEntriesByVoucherParams) ([]LedgerEntry, error) {
	rows, err := q.db.Query(ctx, getLedgerEntriesByVoucher, arg.CompanyID, arg.VoucherNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LedgerEntry{}
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.CompanyID,
			&i.Date,
			&i.VoucherNo,
			&i.ClientID,
			&i.VendorID,
			&i.Kind,
			&i.AccountID,
			&i.AccountName,
			&i.Direction,
			&i.Amount,
			&i.LastTotalAmount,
			&i.Note,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumClientLedgerEntries = `-- name: SumClientLedgerEntries :one
SELECT COALESCE(SUM(CASE WHEN direction = 'payout' THEN -amount ELSE amount END), 0)::numeric AS total
FROM ledger_entries
WHERE company_id = $1 AND client_id = $2 AND kind = ANY($3::text[])
`

type SumClientLedgerEntriesParams struct {
	CompanyID string      `json:"company_id"`
	ClientID  pgtype.Text `json:"client_id"`
	Kinds     []string    `json:"kinds"`
}

func (q *Queries) SumClientLedgerEntries(ctx context.Context, arg SumClientLedgerEntriesParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumClientLedgerEntries, arg.CompanyID, arg.ClientID, arg.Kinds)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}
