package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID              string             `json:"id"`
	CompanyID       string             `json:"company_id"`
	Name            string             `json:"name"`
	Category        string             `json:"category"`
	Balance         pgtype.Numeric     `json:"balance"`
	HasTransactions bool               `json:"has_transactions"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

type Client struct {
	ID             string             `json:"id"`
	CompanyID      string             `json:"company_id"`
	Name           string             `json:"name"`
	PresentBalance pgtype.Numeric     `json:"present_balance"`
	DueAmount      pgtype.Numeric     `json:"due_amount"`
	ContractAmount pgtype.Numeric     `json:"contract_amount"`
	InitialPayment pgtype.Numeric     `json:"initial_payment"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type LedgerEntry struct {
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

type Vendor struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	Name          string             `json:"name"`
	BalanceType   string             `json:"balance_type"`
	BalanceAmount pgtype.Numeric     `json:"balance_amount"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}
