package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, tenant domain.TenantID, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, tenant domain.TenantID, ids []string) ([]*domain.Account, error)
	// UpdateBalance writes the new balance and marks the account as having transactions.
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// ClientRepository defines data access for clients.
type ClientRepository interface {
	GetByID(ctx context.Context, tenant domain.TenantID, id string) (*domain.Client, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenant domain.TenantID, id string) (*domain.Client, error)
	UpdatePresentBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateDueAmount(ctx context.Context, tx Transaction, id string, due decimal.Decimal, updatedAt time.Time) error
	ListByCompany(ctx context.Context, tenant domain.TenantID) ([]*domain.Client, error)
}

// VendorRepository defines data access for vendors. Balances cross this
// boundary signed; implementations store the tagged form.
type VendorRepository interface {
	GetByID(ctx context.Context, tenant domain.TenantID, id string) (*domain.Vendor, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenant domain.TenantID, id string) (*domain.Vendor, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	// DeleteByVoucher removes entries of a voucher and kind. An empty direction matches both.
	DeleteByVoucher(ctx context.Context, tx Transaction, tenant domain.TenantID, voucherNo string, kind domain.OperationKind, direction domain.Direction) (int64, error)
	GetByVoucher(ctx context.Context, tenant domain.TenantID, voucherNo string) ([]*domain.LedgerEntry, error)
	// SumByClient returns the signed sum (receiv positive) of a client's entries of the given kinds.
	// A nil tx reads outside any unit of work.
	SumByClient(ctx context.Context, tx Transaction, tenant domain.TenantID, clientID string, kinds []domain.OperationKind) (decimal.Decimal, error)
}

// VoucherRepository defines access to the per-prefix voucher counters.
type VoucherRepository interface {
	// Next increments and returns the counter for (tenant, prefix).
	Next(ctx context.Context, tx Transaction, tenant domain.TenantID, prefix string) (int64, error)
}

// PostingRepository defines data access for one kind of posting record.
type PostingRepository[T domain.Posting] interface {
	Create(ctx context.Context, tx Transaction, record T) error
	Update(ctx context.Context, tx Transaction, record T) error
	Delete(ctx context.Context, tx Transaction, tenant domain.TenantID, id string) error
	GetByID(ctx context.Context, tenant domain.TenantID, id string) (T, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenant domain.TenantID, id string) (T, error)
}

type (
	AdvanceReturnRepository       = PostingRepository[*domain.AdvanceReturn]
	BalanceTransferRepository     = PostingRepository[*domain.BalanceTransfer]
	ExpenseRepository             = PostingRepository[*domain.Expense]
	InvestmentRepository          = PostingRepository[*domain.Investment]
	VendorAdvanceReturnRepository = PostingRepository[*domain.VendorAdvanceReturn]
	ClientPaymentRepository       = PostingRepository[*domain.ClientPayment]
)

// AuditRepository defines data access for due-amount audit entries.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, entry *domain.AuditEntry) error
	ListByClient(ctx context.Context, tenant domain.TenantID, clientID string) ([]*domain.AuditEntry, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
