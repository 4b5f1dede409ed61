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

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	db generated.DBTX
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db generated.DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) GetByID(ctx context.Context, tenant domain.TenantID, id string) (*domain.Client, error) {
	row, err := generated.New(r.db).GetClientByID(ctx, generated.GetClientByIDParams{
		ID:        id,
		CompanyID: tenant.String(),
	})
	if err != nil {
		return nil, clientError(err)
	}

	return rowToClient(row), nil
}

func (r *ClientRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, id string) (*domain.Client, error) {
	row, err := generated.New(conn(r.db, tx)).GetClientByIDForUpdate(ctx, generated.GetClientByIDForUpdateParams{
		ID:        id,
		CompanyID: tenant.String(),
	})
	if err != nil {
		return nil, clientError(err)
	}

	return rowToClient(row), nil
}

func (r *ClientRepository) UpdatePresentBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	return generated.New(conn(r.db, tx)).UpdateClientPresentBalance(ctx, generated.UpdateClientPresentBalanceParams{
		ID:             id,
		PresentBalance: decimalToNumeric(balance),
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
}

func (r *ClientRepository) UpdateDueAmount(ctx context.Context, tx usecase.Transaction, id string, due decimal.Decimal, updatedAt time.Time) error {
	return generated.New(conn(r.db, tx)).UpdateClientDueAmount(ctx, generated.UpdateClientDueAmountParams{
		ID:        id,
		DueAmount: decimalToNumeric(due),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// ListByCompany returns every client of tenant ordered by id.
func (r *ClientRepository) ListByCompany(ctx context.Context, tenant domain.TenantID) ([]*domain.Client, error) {
	rows, err := generated.New(r.db).ListClientsByCompany(ctx, tenant.String())
	if err != nil {
		return nil, err
	}

	clients := make([]*domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, rowToClient(row))
	}

	return clients, nil
}

func clientError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrClientNotFound
	}
	return err
}

func rowToClient(row generated.Client) *domain.Client {
	return &domain.Client{
		ID:             row.ID,
		CompanyID:      domain.TenantID(row.CompanyID),
		Name:           row.Name,
		PresentBalance: numericToDecimal(row.PresentBalance),
		DueAmount:      numericToDecimal(row.DueAmount),
		ContractAmount: numericToDecimal(row.ContractAmount),
		InitialPayment: numericToDecimal(row.InitialPayment),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
