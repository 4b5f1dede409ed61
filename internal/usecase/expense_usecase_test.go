package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

func TestExpenseUseCase_CreateRejects(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.ExpenseItem
		want  error
	}{
		{"no items", nil, domain.ErrNoExpenseItems},
		{"zero item", []domain.ExpenseItem{{HeadID: "fuel", Amount: dec("0")}}, domain.ErrInvalidAmount},
		{"negative item", []domain.ExpenseItem{{HeadID: "fuel", Amount: dec("10")}, {HeadID: "food", Amount: dec("-1")}}, domain.ErrInvalidAmount},
		{"item without head", []domain.ExpenseItem{{Amount: dec("10")}}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.expenses.Create(context.Background(), tenant, usecase.CreateExpenseInput{
				AccountID: "acc-a",
				Items:     tt.items,
			})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			assertDecimal(t, "A", balanceOf(t, f, "acc-a"), dec("1000"))
		})
	}
}

func TestExpenseUseCase_UpdateReplacesItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.expenses.Create(ctx, tenant, usecase.CreateExpenseInput{
		AccountID: "acc-a",
		Items: []domain.ExpenseItem{
			{HeadID: "fuel", Amount: dec("90")},
			{HeadID: "food", Amount: dec("60")},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.expenses.Update(ctx, tenant, created.ID, usecase.UpdateExpenseInput{
		Items: []domain.ExpenseItem{{HeadID: "rent", Amount: dec("40")}},
		Note:  ptr("march rent"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	assertDecimal(t, "A", balanceOf(t, f, "acc-a"), dec("960"))
	assertDecimal(t, "display balance", updated.AccountBalanceAfter, dec("960"))
	if len(updated.Items) != 1 || updated.Note != "march rent" {
		t.Errorf("unexpected merged record: %+v", updated)
	}

	entries := f.store.Entries(created.VoucherNo)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	assertDecimal(t, "entry", entries[0].Amount, dec("40"))

	_, err = f.expenses.Update(ctx, tenant, created.ID, usecase.UpdateExpenseInput{
		Items: []domain.ExpenseItem{},
	})
	if !errors.Is(err, domain.ErrNoExpenseItems) {
		t.Fatalf("expected empty replacement to be rejected, got %v", err)
	}
	assertDecimal(t, "A after rejected update", balanceOf(t, f, "acc-a"), dec("960"))
}

func TestExpenseUseCase_UpdateUnknownRecord(t *testing.T) {
	f := newFixture(t)

	_, err := f.expenses.Update(context.Background(), tenant, "missing", usecase.UpdateExpenseInput{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
