package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PostingResponse carries the fields every posting shares.
type PostingResponse struct {
	ID        string    `json:"id"`
	VoucherNo string    `json:"voucher_no"`
	Date      string    `json:"date"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func postingFromHeader(h domain.PostingHeader) PostingResponse {
	return PostingResponse{
		ID:        h.ID,
		VoucherNo: h.VoucherNo,
		Date:      formatDate(h.Date),
		Note:      h.Note,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// AdvanceReturnResponse represents an advance return in API responses.
type AdvanceReturnResponse struct {
	PostingResponse
	ClientID            string          `json:"client_id"`
	ClientName          string          `json:"client_name"`
	AccountID           string          `json:"account_id"`
	AccountName         string          `json:"account_name"`
	Amount              decimal.Decimal `json:"amount"`
	PaymentMethod       string          `json:"payment_method,omitempty"`
	ClientBalanceAfter  decimal.Decimal `json:"client_balance_after"`
	AccountBalanceAfter decimal.Decimal `json:"account_balance_after"`
}

// AdvanceReturnFromDomain converts a domain advance return to response.
func AdvanceReturnFromDomain(a *domain.AdvanceReturn) *AdvanceReturnResponse {
	return &AdvanceReturnResponse{
		PostingResponse:     postingFromHeader(a.PostingHeader),
		ClientID:            a.ClientID,
		ClientName:          a.ClientName,
		AccountID:           a.AccountID,
		AccountName:         a.AccountName,
		Amount:              a.Amount,
		PaymentMethod:       a.PaymentMethod,
		ClientBalanceAfter:  a.ClientBalanceAfter,
		AccountBalanceAfter: a.AccountBalanceAfter,
	}
}

// BalanceTransferResponse represents a balance transfer in API responses.
type BalanceTransferResponse struct {
	PostingResponse
	FromAccountID    string          `json:"from_account_id"`
	FromAccountName  string          `json:"from_account_name"`
	ToAccountID      string          `json:"to_account_id"`
	ToAccountName    string          `json:"to_account_name"`
	Amount           decimal.Decimal `json:"amount"`
	Charge           decimal.Decimal `json:"charge"`
	FromBalanceAfter decimal.Decimal `json:"from_balance_after"`
	ToBalanceAfter   decimal.Decimal `json:"to_balance_after"`
}

// BalanceTransferFromDomain converts a domain balance transfer to response.
func BalanceTransferFromDomain(t *domain.BalanceTransfer) *BalanceTransferResponse {
	return &BalanceTransferResponse{
		PostingResponse:  postingFromHeader(t.PostingHeader),
		FromAccountID:    t.FromAccountID,
		FromAccountName:  t.FromAccountName,
		ToAccountID:      t.ToAccountID,
		ToAccountName:    t.ToAccountName,
		Amount:           t.Amount,
		Charge:           t.Charge,
		FromBalanceAfter: t.FromBalanceAfter,
		ToBalanceAfter:   t.ToBalanceAfter,
	}
}

// ExpenseItemResponse is one expense head line.
type ExpenseItemResponse struct {
	HeadID string          `json:"head_id"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	PostingResponse
	AccountID           string                `json:"account_id"`
	AccountName         string                `json:"account_name"`
	Items               []ExpenseItemResponse `json:"items"`
	Total               decimal.Decimal       `json:"total"`
	PaymentMethod       string                `json:"payment_method,omitempty"`
	AccountBalanceAfter decimal.Decimal       `json:"account_balance_after"`
}

// ExpenseFromDomain converts a domain expense to response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	items := make([]ExpenseItemResponse, len(e.Items))
	for i, item := range e.Items {
		items[i] = ExpenseItemResponse{HeadID: item.HeadID, Amount: item.Amount}
	}

	return &ExpenseResponse{
		PostingResponse:     postingFromHeader(e.PostingHeader),
		AccountID:           e.AccountID,
		AccountName:         e.AccountName,
		Items:               items,
		Total:               e.Total(),
		PaymentMethod:       e.PaymentMethod,
		AccountBalanceAfter: e.AccountBalanceAfter,
	}
}

// InvestmentResponse represents an investment in API responses.
type InvestmentResponse struct {
	PostingResponse
	AccountID           string          `json:"account_id"`
	AccountName         string          `json:"account_name"`
	Amount              decimal.Decimal `json:"amount"`
	PaymentMethod       string          `json:"payment_method,omitempty"`
	AccountBalanceAfter decimal.Decimal `json:"account_balance_after"`
}

// InvestmentFromDomain converts a domain investment to response.
func InvestmentFromDomain(i *domain.Investment) *InvestmentResponse {
	return &InvestmentResponse{
		PostingResponse:     postingFromHeader(i.PostingHeader),
		AccountID:           i.AccountID,
		AccountName:         i.AccountName,
		Amount:              i.Amount,
		PaymentMethod:       i.PaymentMethod,
		AccountBalanceAfter: i.AccountBalanceAfter,
	}
}

// VendorAdvanceReturnResponse represents a vendor advance return in API responses.
type VendorAdvanceReturnResponse struct {
	PostingResponse
	VendorID            string              `json:"vendor_id"`
	VendorName          string              `json:"vendor_name"`
	AccountID           string              `json:"account_id"`
	AccountName         string              `json:"account_name"`
	Amount              decimal.Decimal     `json:"amount"`
	PaymentMethod       string              `json:"payment_method,omitempty"`
	VendorBalanceAfter  domain.TaggedAmount `json:"vendor_balance_after"`
	AccountBalanceAfter decimal.Decimal     `json:"account_balance_after"`
}

// VendorAdvanceReturnFromDomain converts a domain vendor advance return to response.
func VendorAdvanceReturnFromDomain(v *domain.VendorAdvanceReturn) *VendorAdvanceReturnResponse {
	return &VendorAdvanceReturnResponse{
		PostingResponse:     postingFromHeader(v.PostingHeader),
		VendorID:            v.VendorID,
		VendorName:          v.VendorName,
		AccountID:           v.AccountID,
		AccountName:         v.AccountName,
		Amount:              v.Amount,
		PaymentMethod:       v.PaymentMethod,
		VendorBalanceAfter:  v.VendorBalanceAfter,
		AccountBalanceAfter: v.AccountBalanceAfter,
	}
}

// ClientPaymentResponse represents a client payment in API responses.
type ClientPaymentResponse struct {
	PostingResponse
	ClientID            string          `json:"client_id"`
	ClientName          string          `json:"client_name"`
	AccountID           string          `json:"account_id"`
	AccountName         string          `json:"account_name"`
	Amount              decimal.Decimal `json:"amount"`
	PaymentMethod       string          `json:"payment_method,omitempty"`
	DueAfter            decimal.Decimal `json:"due_after"`
	AccountBalanceAfter decimal.Decimal `json:"account_balance_after"`
}

// ClientPaymentFromDomain converts a domain client payment to response.
func ClientPaymentFromDomain(p *domain.ClientPayment) *ClientPaymentResponse {
	return &ClientPaymentResponse{
		PostingResponse:     postingFromHeader(p.PostingHeader),
		ClientID:            p.ClientID,
		ClientName:          p.ClientName,
		AccountID:           p.AccountID,
		AccountName:         p.AccountName,
		Amount:              p.Amount,
		PaymentMethod:       p.PaymentMethod,
		DueAfter:            p.DueAfter,
		AccountBalanceAfter: p.AccountBalanceAfter,
	}
}

// DeleteResponse reports a deleted posting.
type DeleteResponse struct {
	ID        string   `json:"id"`
	VoucherNo string   `json:"voucher_no"`
	Deleted   bool     `json:"deleted"`
	Warnings  []string `json:"warnings,omitempty"`
}

// DeleteFromResult converts a delete result to response.
func DeleteFromResult(r *usecase.DeleteResult) *DeleteResponse {
	return &DeleteResponse{
		ID:        r.ID,
		VoucherNo: r.VoucherNo,
		Deleted:   true,
		Warnings:  r.Warnings,
	}
}

// AuditEntryResponse represents an audit entry in API responses.
type AuditEntryResponse struct {
	ID            string          `json:"id"`
	Action        string          `json:"action"`
	ClientID      string          `json:"client_id"`
	VoucherNo     string          `json:"voucher_no,omitempty"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AuditEntriesFromDomain converts audit entries to responses.
func AuditEntriesFromDomain(entries []*domain.AuditEntry) []*AuditEntryResponse {
	result := make([]*AuditEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &AuditEntryResponse{
			ID:            e.ID,
			Action:        string(e.Action),
			ClientID:      e.ClientID,
			VoucherNo:     e.VoucherNo,
			BalanceBefore: e.BalanceBefore,
			BalanceAfter:  e.BalanceAfter,
			Metadata:      e.Metadata,
			CreatedAt:     e.CreatedAt,
		}
	}
	return result
}
