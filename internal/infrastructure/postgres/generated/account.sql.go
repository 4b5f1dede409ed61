package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getAccountByID = `-- name: GetAccountByID :one
SELECT id, company_id, name, category, balance, has_transactions, created_at, updated_at FROM accounts WHERE id = $1 AND company_id = $2
`

type GetAccountByIDParams struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
}

func (q *Queries) GetAccountByID(ctx context.Context, arg GetAccountByIDParams) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByID, arg.ID, arg.CompanyID)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.CompanyID,
		&i.Name,
		&i.Category,
		&i.Balance,
		&i.HasTransactions,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountsByIDsForUpdate = `-- name: GetAccountsByIDsForUpdate :many
SELECT id, company_id, name, category, balance, has_transactions, created_at, updated_at FROM accounts WHERE company_id = $1 AND id = ANY($2::text[]) ORDER BY id FOR UPDATE
`

type GetAccountsByIDsForUpdateParams struct {
	CompanyID string   `json:"company_id"`
	Ids       []string `json:"ids"`
}

func (q *Queries) GetAccountsByIDsForUpdate(ctx context.Context, arg GetAccountsByIDsForUpdateParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, getAccountsByIDsForUpdate, arg.CompanyID, arg.Ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.CompanyID,
			&i.Name,
			&i.Category,
			&i.Balance,
			&i.HasTransactions,
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

const updateAccountBalance = `-- name: UpdateAccountBalance :exec
UPDATE accounts
SET balance = $2, has_transactions = TRUE, updated_at = $3
WHERE id = $1
`

type UpdateAccountBalanceParams struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAccountBalance(ctx context.Context, arg UpdateAccountBalanceParams) error {
	_, err := q.db.Exec(ctx, updateAccountBalance, arg.ID, arg.Balance, arg.UpdatedAt)
	return err
}
