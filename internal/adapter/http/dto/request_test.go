package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     any
		wantErr string
	}{
		{
			name: "valid advance return",
			req:  &CreateAdvanceReturnRequest{ClientID: "c1", AccountID: "a1", Amount: "10.50", Date: "2024-03-01"},
		},
		{
			name:    "missing client",
			req:     &CreateAdvanceReturnRequest{AccountID: "a1", Amount: "10"},
			wantErr: "client_id is required",
		},
		{
			name:    "amount not a number",
			req:     &CreateInvestmentRequest{AccountID: "a1", Amount: "ten"},
			wantErr: "amount must be a number",
		},
		{
			name:    "bad date",
			req:     &CreateClientPaymentRequest{ClientID: "c1", AccountID: "a1", Amount: "1", Date: "01/03/2024"},
			wantErr: "date must be a date like 2006-01-02",
		},
		{
			name:    "expense item without head",
			req:     &CreateExpenseRequest{AccountID: "a1", Items: []ExpenseItemRequest{{Amount: "5"}}},
			wantErr: "items[0].head_id is required",
		},
		{
			name:    "empty items on update",
			req:     &UpdateExpenseRequest{Items: []ExpenseItemRequest{}},
			wantErr: "items must have at least 1 entries",
		},
		{
			name: "update with nothing set",
			req:  &UpdateBalanceTransferRequest{},
		},
		{
			name:    "unknown reconciliation action",
			req:     &ReconcileRequest{Action: "purge"},
			wantErr: "action must be one of reconcile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if msg := domain.AsError(err).Message; msg != tt.wantErr {
				t.Fatalf("expected message %q, got %q", tt.wantErr, msg)
			}
		})
	}
}

func TestCreateBalanceTransferRequest_ToUseCaseInput(t *testing.T) {
	req := CreateBalanceTransferRequest{
		FromAccountID: "a1",
		ToAccountID:   "a2",
		Amount:        "300",
		Date:          "2024-03-01",
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !input.Amount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected amount 300, got %s", input.Amount)
	}
	if !input.Charge.IsZero() {
		t.Errorf("expected missing charge to be zero, got %s", input.Charge)
	}
	if !input.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", input.Date)
	}
}

func TestCreateRequest_InvalidAmount(t *testing.T) {
	req := CreateInvestmentRequest{AccountID: "a1", Amount: "1e"}

	_, err := req.ToUseCaseInput()
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestUpdateRequest_KeepsAbsentFieldsNil(t *testing.T) {
	req := UpdateAdvanceReturnRequest{Amount: strPtr("150")}

	input, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if input.Amount == nil || !input.Amount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected amount 150, got %v", input.Amount)
	}
	if input.ClientID != nil || input.AccountID != nil || input.Date != nil || input.Note != nil {
		t.Fatalf("expected absent fields to stay nil: %+v", input)
	}
}

func TestExpenseRequest_ItemsConverted(t *testing.T) {
	req := CreateExpenseRequest{
		AccountID: "a1",
		Items: []ExpenseItemRequest{
			{HeadID: "fuel", Amount: "90"},
			{HeadID: "food", Amount: "60.25"},
		},
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(input.Items) != 2 || input.Items[1].HeadID != "food" || !input.Items[1].Amount.Equal(decimal.RequireFromString("60.25")) {
		t.Fatalf("unexpected items: %+v", input.Items)
	}

	update := UpdateExpenseRequest{}
	upd, err := update.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upd.Items != nil {
		t.Fatalf("expected nil items to mean unchanged, got %+v", upd.Items)
	}
}
