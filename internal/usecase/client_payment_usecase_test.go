package usecase_test

import (
	"context"
	"testing"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

func TestClientPaymentUseCase_LifecycleAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cp, err := f.clientPayments.Create(ctx, tenant, usecase.CreateClientPaymentInput{
		ClientID:  "client-1",
		AccountID: "acc-b",
		Amount:    dec("300"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cp.VoucherNo != "CP-0001" {
		t.Errorf("expected CP-0001, got %s", cp.VoucherNo)
	}
	assertDecimal(t, "due after", cp.DueAfter, dec("500"))
	assertDecimal(t, "B", balanceOf(t, f, "acc-b"), dec("700"))
	assertDecimal(t, "present balance untouched", f.store.Client("client-1").PresentBalance, dec("500"))

	if _, err := f.clientPayments.Update(ctx, tenant, cp.ID, usecase.UpdateClientPaymentInput{
		Amount: ptr(dec("350")),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	assertDecimal(t, "due after update", f.store.Client("client-1").DueAmount, dec("450"))

	if _, err := f.clientPayments.Delete(ctx, tenant, cp.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertDecimal(t, "due after delete", f.store.Client("client-1").DueAmount, dec("800"))

	trail, err := f.clientPayments.AuditTrail(ctx, tenant, "client-1")
	if err != nil {
		t.Fatalf("audit trail: %v", err)
	}

	want := []struct {
		action        domain.AuditAction
		before, after string
	}{
		{domain.AuditActionClientPaymentCreate, "800", "500"},
		{domain.AuditActionClientPaymentUpdate, "500", "450"},
		{domain.AuditActionClientPaymentDelete, "450", "800"},
	}
	if len(trail) != len(want) {
		t.Fatalf("expected %d audit entries, got %d", len(want), len(trail))
	}
	for i, w := range want {
		got := trail[i]
		if got.Action != w.action || got.VoucherNo != "CP-0001" || got.CompanyID != tenant {
			t.Errorf("entry %d: unexpected %+v", i, got)
		}
		assertDecimal(t, "before", got.BalanceBefore, dec(w.before))
		assertDecimal(t, "after", got.BalanceAfter, dec(w.after))
	}
}

func TestClientPaymentUseCase_MoveToAnotherClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cp, err := f.clientPayments.Create(ctx, tenant, usecase.CreateClientPaymentInput{
		ClientID: "client-1", AccountID: "acc-a", Amount: dec("100"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.clientPayments.Update(ctx, tenant, cp.ID, usecase.UpdateClientPaymentInput{
		ClientID: ptr("client-2"),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	assertDecimal(t, "client-1 due", f.store.Client("client-1").DueAmount, dec("800"))
	assertDecimal(t, "client-2 due", f.store.Client("client-2").DueAmount, dec("200"))

	// create on client-1, then one entry per client for the move
	if n := len(f.store.AuditEntries()); n != 3 {
		t.Errorf("expected 3 audit entries, got %d", n)
	}
}
