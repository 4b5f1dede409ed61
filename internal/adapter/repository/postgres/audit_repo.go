package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/agencyledger/internal/usecase"
)

// AuditRepository implements due-amount audit persistence
type AuditRepository struct {
	db generated.DBTX
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db generated.DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateTx inserts an audit entry inside tx
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.AuditEntry) error {
	var metadata []byte
	if entry.Metadata != nil {
		var err error

		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_entries (
			id, company_id, action, client_id, voucher_no,
			balance_before, balance_after, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := conn(r.db, tx).Exec(ctx, query,
		entry.ID,
		entry.CompanyID.String(),
		string(entry.Action),
		entry.ClientID,
		entry.VoucherNo,
		decimalToNumeric(entry.BalanceBefore),
		decimalToNumeric(entry.BalanceAfter),
		metadata,
		entry.CreatedAt,
	)

	return err
}

// ListByClient returns the audit trail of a client, oldest first
func (r *AuditRepository) ListByClient(ctx context.Context, tenant domain.TenantID, clientID string) ([]*domain.AuditEntry, error) {
	query := `
		SELECT id, company_id, action, client_id, voucher_no,
		       balance_before, balance_after, metadata, created_at
		FROM audit_entries
		WHERE company_id = $1 AND client_id = $2
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, tenant.String(), clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var (
			entry         domain.AuditEntry
			companyID     string
			action        string
			before, after pgtype.Numeric
			metadata      []byte
			createdAt     time.Time
		)

		err := rows.Scan(
			&entry.ID,
			&companyID,
			&action,
			&entry.ClientID,
			&entry.VoucherNo,
			&before,
			&after,
			&metadata,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.CompanyID = domain.TenantID(companyID)
		entry.Action = domain.AuditAction(action)
		entry.BalanceBefore = numericToDecimal(before)
		entry.BalanceAfter = numericToDecimal(after)
		entry.CreatedAt = createdAt

		if metadata != nil {
			_ = json.Unmarshal(metadata, &entry.Metadata)
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
