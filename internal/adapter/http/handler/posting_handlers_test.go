package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/adapter/http/dto"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

type expenseServiceStub struct {
	ExpenseService
	createFn func(ctx context.Context, tenant domain.TenantID, input usecase.CreateExpenseInput) (*domain.Expense, error)
}

func (s *expenseServiceStub) Create(ctx context.Context, tenant domain.TenantID, input usecase.CreateExpenseInput) (*domain.Expense, error) {
	return s.createFn(ctx, tenant, input)
}

func TestExpenseHandler_Create(t *testing.T) {
	var captured usecase.CreateExpenseInput

	h := NewExpenseHandler(&expenseServiceStub{
		createFn: func(ctx context.Context, tenant domain.TenantID, input usecase.CreateExpenseInput) (*domain.Expense, error) {
			captured = input
			return &domain.Expense{
				PostingHeader: domain.PostingHeader{ID: "exp-1", VoucherNo: "EX-0001"},
				AccountID:     input.AccountID,
				Items:         input.Items,
			}, nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/expenses",
		`{"account_id":"acc-a","items":[{"head_id":"fuel","amount":"90"},{"head_id":"food","amount":"60"}]}`, ""))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(captured.Items) != 2 {
		t.Fatalf("expected 2 items, got %+v", captured.Items)
	}

	var resp dto.ExpenseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Total.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected total 150, got %s", resp.Total)
	}
}

func TestExpenseHandler_Create_NoItemsIsDomainError(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		createFn: func(ctx context.Context, tenant domain.TenantID, input usecase.CreateExpenseInput) (*domain.Expense, error) {
			return nil, domain.ErrNoExpenseItems
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/expenses", `{"account_id":"acc-a"}`, ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Message != domain.ErrNoExpenseItems.Message {
		t.Fatalf("expected verbatim domain message, got %q", body.Message)
	}
}

type balanceTransferServiceStub struct {
	BalanceTransferService
	createFn func(ctx context.Context, tenant domain.TenantID, input usecase.CreateBalanceTransferInput) (*domain.BalanceTransfer, error)
}

func (s *balanceTransferServiceStub) Create(ctx context.Context, tenant domain.TenantID, input usecase.CreateBalanceTransferInput) (*domain.BalanceTransfer, error) {
	return s.createFn(ctx, tenant, input)
}

func TestBalanceTransferHandler_Create_SameAccount(t *testing.T) {
	h := NewBalanceTransferHandler(&balanceTransferServiceStub{
		createFn: func(ctx context.Context, tenant domain.TenantID, input usecase.CreateBalanceTransferInput) (*domain.BalanceTransfer, error) {
			if !input.Charge.Equal(decimal.NewFromInt(10)) {
				t.Errorf("expected charge 10, got %s", input.Charge)
			}
			return nil, domain.ErrSameAccount
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/balance-transfers",
		`{"from_account_id":"acc-a","to_account_id":"acc-a","amount":"100","charge":"10"}`, ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != "validation" || body.Message != "cannot transfer to the same account" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

type clientPaymentServiceStub struct {
	ClientPaymentService
	auditFn func(ctx context.Context, tenant domain.TenantID, clientID string) ([]*domain.AuditEntry, error)
}

func (s *clientPaymentServiceStub) AuditTrail(ctx context.Context, tenant domain.TenantID, clientID string) ([]*domain.AuditEntry, error) {
	return s.auditFn(ctx, tenant, clientID)
}

func TestClientPaymentHandler_AuditTrail(t *testing.T) {
	h := NewClientPaymentHandler(&clientPaymentServiceStub{
		auditFn: func(ctx context.Context, tenant domain.TenantID, clientID string) ([]*domain.AuditEntry, error) {
			if clientID != "client-1" {
				t.Errorf("unexpected client %q", clientID)
			}
			return []*domain.AuditEntry{{
				ID:            "audit-1",
				Action:        domain.AuditActionClientPaymentCreate,
				ClientID:      clientID,
				VoucherNo:     "CP-0001",
				BalanceBefore: decimal.NewFromInt(800),
				BalanceAfter:  decimal.NewFromInt(500),
			}}, nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.AuditTrail(rec, newRequest(http.MethodGet, "/clients/client-1/audit", "", "client-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.AuditEntryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 1 || resp[0].VoucherNo != "CP-0001" || !resp[0].BalanceAfter.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected audit response: %+v", resp)
	}
}
