package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AuditEntry is a before/after snapshot of a client's due amount.
type AuditEntry struct {
	ID            string
	CompanyID     TenantID
	Action        AuditAction
	ClientID      string
	VoucherNo     string
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Metadata      JSON
	CreatedAt     time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionClientPaymentCreate AuditAction = "client_payment.create"
	AuditActionClientPaymentUpdate AuditAction = "client_payment.update"
	AuditActionClientPaymentDelete AuditAction = "client_payment.delete"
	AuditActionDueReconcile        AuditAction = "client_due.reconcile"
)

// MarshalState converts a domain object to JSON for audit metadata
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}
