package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/agencyledger/internal/usecase"
)

// headerColumns are shared by every posting table and come first.
var headerColumns = []string{"id", "company_id", "voucher_no", "date", "note", "created_at", "updated_at"}

// postingTable maps one posting record type onto its table.
type postingTable[T domain.Posting] struct {
	name     string
	columns  []string
	notFound error
	create   func() T
	// values returns the kind-specific column values in column order.
	values func(rec T) []any
	// dest returns scan targets for the kind-specific columns and a func
	// that copies them into rec once the row is scanned.
	dest func(rec T) ([]any, func())
}

func (t postingTable[T]) selectSQL(forUpdate bool) string {
	cols := append(append([]string{}, headerColumns...), t.columns...)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND company_id = $2", strings.Join(cols, ", "), t.name)
	if forUpdate {
		query += " FOR UPDATE"
	}

	return query
}

func (t postingTable[T]) insertSQL() string {
	cols := append(append([]string{}, headerColumns...), t.columns...)

	params := make([]string, len(cols))
	for i := range cols {
		params[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(cols, ", "), strings.Join(params, ", "))
}

// updateSQL keeps id, company, voucher and creation time.
func (t postingTable[T]) updateSQL() string {
	cols := append([]string{"date", "note", "updated_at"}, t.columns...)

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+3)
	}

	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $1 AND company_id = $2", t.name, strings.Join(sets, ", "))
}

func (t postingTable[T]) insertArgs(rec T) []any {
	h := rec.Head()
	args := []any{h.ID, h.CompanyID.String(), h.VoucherNo, h.Date, h.Note, h.CreatedAt, h.UpdatedAt}
	return append(args, t.values(rec)...)
}

func (t postingTable[T]) updateArgs(rec T) []any {
	h := rec.Head()
	args := []any{h.ID, h.CompanyID.String(), h.Date, h.Note, h.UpdatedAt}
	return append(args, t.values(rec)...)
}

func (t postingTable[T]) scan(row pgx.Row) (T, error) {
	rec := t.create()
	h := rec.Head()

	var (
		companyID string
		date      time.Time
		createdAt time.Time
		updatedAt time.Time
	)

	specific, finish := t.dest(rec)
	dest := append([]any{&h.ID, &companyID, &h.VoucherNo, &date, &h.Note, &createdAt, &updatedAt}, specific...)

	if err := row.Scan(dest...); err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, t.notFound
		}
		return zero, err
	}

	h.CompanyID = domain.TenantID(companyID)
	h.Date = date
	h.CreatedAt = createdAt
	h.UpdatedAt = updatedAt
	finish()

	return rec, nil
}

// PostingRepository stores one kind of posting record. It satisfies
// usecase.PostingRepository for T.
type PostingRepository[T domain.Posting] struct {
	db    generated.DBTX
	table postingTable[T]

	// afterWrite and afterLoad handle child rows, e.g. expense items.
	afterWrite func(ctx context.Context, db generated.DBTX, rec T) error
	afterLoad  func(ctx context.Context, db generated.DBTX, rec T) error
}

// Create inserts rec.
func (r *PostingRepository[T]) Create(ctx context.Context, tx usecase.Transaction, rec T) error {
	db := conn(r.db, tx)

	if _, err := db.Exec(ctx, r.table.insertSQL(), r.table.insertArgs(rec)...); err != nil {
		return err
	}

	return r.writeChildren(ctx, db, rec)
}

// Update rewrites the mutable columns of rec.
func (r *PostingRepository[T]) Update(ctx context.Context, tx usecase.Transaction, rec T) error {
	db := conn(r.db, tx)

	tag, err := db.Exec(ctx, r.table.updateSQL(), r.table.updateArgs(rec)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.table.notFound
	}

	return r.writeChildren(ctx, db, rec)
}

// Delete removes the record of tenant with id.
func (r *PostingRepository[T]) Delete(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND company_id = $2", r.table.name)

	tag, err := conn(r.db, tx).Exec(ctx, query, id, tenant.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.table.notFound
	}

	return nil
}

// GetByID reads the record without locking.
func (r *PostingRepository[T]) GetByID(ctx context.Context, tenant domain.TenantID, id string) (T, error) {
	return r.get(ctx, r.db, tenant, id, false)
}

// GetByIDForUpdate reads and locks the record inside tx.
func (r *PostingRepository[T]) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, id string) (T, error) {
	return r.get(ctx, conn(r.db, tx), tenant, id, true)
}

func (r *PostingRepository[T]) get(ctx context.Context, db generated.DBTX, tenant domain.TenantID, id string, forUpdate bool) (T, error) {
	rec, err := r.table.scan(db.QueryRow(ctx, r.table.selectSQL(forUpdate), id, tenant.String()))
	if err != nil {
		return rec, err
	}

	if r.afterLoad != nil {
		if err := r.afterLoad(ctx, db, rec); err != nil {
			var zero T
			return zero, err
		}
	}

	return rec, nil
}

func (r *PostingRepository[T]) writeChildren(ctx context.Context, db generated.DBTX, rec T) error {
	if r.afterWrite == nil {
		return nil
	}

	return r.afterWrite(ctx, db, rec)
}
