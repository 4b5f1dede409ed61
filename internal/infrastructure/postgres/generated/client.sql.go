package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getClientByID = `-- name: GetClientByID :one
SELECT id, company_id, name, present_balance, due_amount, contract_amount, initial_payment, created_at, updated_at FROM clients WHERE id = $1 AND company_id = $2
`

type GetClientByIDParams struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
}

func (q *Queries) GetClientByID(ctx context.Context, arg GetClientByIDParams) (Client, error) {
	row := q.db.QueryRow(ctx, getClientByID, arg.ID, arg.CompanyID)
	var i Client
	err := row.Scan(
		&i.ID,
		&i.CompanyID,
		&i.Name,
		&i.PresentBalance,
		&i.DueAmount,
		&i.ContractAmount,
		&i.InitialPayment,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getClientByIDForUpdate = `-- name: GetClientByIDForUpdate :one
SELECT id, company_id, name, present_balance, due_amount, contract_amount, initial_payment, created_at, updated_at FROM clients WHERE id = $1 AND company_id = $2 FOR UPDATE
`

type GetClientByIDForUpdateParams struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
}

func (q *Queries) GetClientByIDForUpdate(ctx context.Context, arg GetClientByIDForUpdateParams) (Client, error) {
	row := q.db.QueryRow(ctx, getClientByIDForUpdate, arg.ID, arg.CompanyID)
	var i Client
	err := row.Scan(
		&i.ID,
		&i.CompanyID,
		&i.Name,
		&i.PresentBalance,
		&i.DueAmount,
		&i.ContractAmount,
		&i.InitialPayment,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listClientsByCompany = `-- name: ListClientsByCompany :many
SELECT id, company_id, name, present_balance, due_amount, contract_amount, initial_payment, created_at, updated_at FROM clients WHERE company_id = $1 ORDER BY id
`

func (q *Queries) ListClientsByCompany(ctx context.Context, companyID string) ([]Client, error) {
	rows, err := q.db.Query(ctx, listClientsByCompany, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Client{}
	for rows.Next() {
		var i Client
		if err := rows.Scan(
			&i.ID,
			&i.CompanyID,
			&i.Name,
			&i.PresentBalance,
			&i.DueAmount,
			&i.ContractAmount,
			&i.InitialPayment,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updateClientDueAmount = `-- name: UpdateClientDueAmount :exec
UPDATE clients
SET due_amount = $2, updated_at = $3
WHERE id = $1
`

type UpdateClientDueAmountParams struct {
	ID        string             `json:"id"`
	DueAmount pgtype.Numeric     `json:"due_amount"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateClientDueAmount(ctx context.Context, arg UpdateClientDueAmountParams) error {
	_, err := q.db.Exec(ctx, updateClientDueAmount, arg.ID, arg.DueAmount, arg.UpdatedAt)
	return err
}

const updateClientPresentBalance = `-- name: UpdateClientPresentBalance :exec
UPDATE clients
SET present_balance = $2, updated_at = $3
WHERE id = $1
`

type UpdateClientPresentBalanceParams struct {
	ID             string             `json:"id"`
	PresentBalance pgtype.Numeric     `json:"present_balance"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateClientPresentBalance(ctx context.Context, arg UpdateClientPresentBalanceParams) error {
	_, err := q.db.Exec(ctx, updateClientPresentBalance, arg.ID, arg.PresentBalance, arg.UpdatedAt)
	return err
}
