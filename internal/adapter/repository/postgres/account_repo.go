package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/postgres/generated"
	"github.com/iho/agencyledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db generated.DBTX
}

// NewAccountRepository creates a new AccountRepository. db is usually a
// *pgxpool.Pool.
func NewAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByID retrieves an account of tenant by ID.
func (r *AccountRepository) GetByID(ctx context.Context, tenant domain.TenantID, id string) (*domain.Account, error) {
	row, err := generated.New(r.db).GetAccountByID(ctx, generated.GetAccountByIDParams{
		ID:        id,
		CompanyID: tenant.String(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDsForUpdate locks the accounts of tenant in id order. Unknown ids are
// skipped; the caller compares counts.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, ids []string) ([]*domain.Account, error) {
	rows, err := generated.New(conn(r.db, tx)).GetAccountsByIDsForUpdate(ctx, generated.GetAccountsByIDsForUpdateParams{
		CompanyID: tenant.String(),
		Ids:       ids,
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// UpdateBalance sets the balance and marks the account as used.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	return generated.New(conn(r.db, tx)).UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:              row.ID,
		CompanyID:       domain.TenantID(row.CompanyID),
		Name:            row.Name,
		Category:        domain.AccountCategory(row.Category),
		Balance:         numericToDecimal(row.Balance),
		HasTransactions: row.HasTransactions,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}
