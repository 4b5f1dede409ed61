package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getVendorByID = `-- name: GetVendorByID :one
SELECT id, company_id, name, balance_type, balance_amount, created_at, updated_at FROM vendors WHERE id = $1 AND company_id = $2
`

type GetVendorByIDParams struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
}

func (q *Queries) GetVendorByID(ctx context.Context, arg GetVendorByIDParams) (Vendor, error) {
	row := q.db.QueryRow(ctx, getVendorByID, arg.ID, arg.CompanyID)
	var i Vendor
	err := row.Scan(
		&i.ID,
		&i.CompanyID,
		&i.Name,
		&i.BalanceType,
		&i.BalanceAmount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getVendorByIDForUpdate = `-- name: GetVendorByIDForUpdate :one
SELECT id, company_id, name, balance_type, balance_amount, created_at, updated_at FROM vendors WHERE id = $1 AND company_id = $2 FOR UPDATE
`

type GetVendorByIDForUpdateParams struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
}

func (q *Queries) GetVendorByIDForUpdate(ctx context.Context, arg GetVendorByIDForUpdateParams) (Vendor, error) {
	row := q.db.QueryRow(ctx, getVendorByIDForUpdate, arg.ID, arg.CompanyID)
	var i Vendor
	err := row.Scan(
		&i.ID,
		&i.CompanyID,
		&i.Name,
		&i.BalanceType,
		&i.BalanceAmount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateVendorBalance = `-- name: UpdateVendorBalance :exec
UPDATE vendors
SET balance_type = $2, balance_amount = $3, updated_at = $4
WHERE id = $1
`

type UpdateVendorBalanceParams struct {
	ID            string             `json:"id"`
	BalanceType   string             `json:"balance_type"`
	BalanceAmount pgtype.Numeric     `json:"balance_amount"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateVendorBalance(ctx context.Context, arg UpdateVendorBalanceParams) error {
	_, err := q.db.Exec(ctx, updateVendorBalance,
		arg.ID,
		arg.BalanceType,
		arg.BalanceAmount,
		arg.UpdatedAt,
	)
	return err
}
