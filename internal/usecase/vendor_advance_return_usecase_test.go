package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

func TestVendorAdvanceReturnUseCase_Create(t *testing.T) {
	f := newFixture(t)

	ret, err := f.vendorAdvanceReturns.Create(context.Background(), tenant, usecase.CreateVendorAdvanceReturnInput{
		VendorID:  "vendor-1",
		AccountID: "acc-a",
		Amount:    dec("120"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ret.VoucherNo != "VADR-0001" || ret.VendorName != "Sky Airlines" {
		t.Errorf("unexpected record: %+v", ret)
	}
	if ret.VendorBalanceAfter.Type != domain.BalanceTypeAdvance {
		t.Errorf("expected advance tag, got %s", ret.VendorBalanceAfter.Type)
	}
	assertDecimal(t, "tagged amount", ret.VendorBalanceAfter.Amount, dec("180"))
	assertDecimal(t, "vendor", f.store.Vendor("vendor-1").Balance, dec("180"))
	assertDecimal(t, "A", balanceOf(t, f, "acc-a"), dec("1120"))

	entries := f.store.Entries(ret.VoucherNo)
	if len(entries) != 1 || entries[0].VendorID != "vendor-1" || entries[0].ClientID != "" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestVendorAdvanceReturnUseCase_CannotExceedAdvance(t *testing.T) {
	f := newFixture(t)

	_, err := f.vendorAdvanceReturns.Create(context.Background(), tenant, usecase.CreateVendorAdvanceReturnInput{
		VendorID:  "vendor-1",
		AccountID: "acc-a",
		Amount:    dec("300.01"),
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	assertDecimal(t, "vendor", f.store.Vendor("vendor-1").Balance, dec("300"))
}

func TestVendorAdvanceReturnUseCase_Tolerance(t *testing.T) {
	f := newFixture(t)
	store := f.store

	engine := usecase.NewPostingEngine(
		store,
		usecase.NewBalanceStore(store.Accounts(), store.Clients(), store.Vendors()),
		usecase.NewLedgerWriter(store.LedgerEntries(), f.ids),
		usecase.NewSequenceGenerator(store.Vouchers(), nil),
		f.ids,
		dec("5"),
		zerolog.Nop(),
		nil,
	)
	uc := usecase.NewVendorAdvanceReturnUseCase(engine, f.vendorAdvanceReturnRepo)

	ret, err := uc.Create(context.Background(), tenant, usecase.CreateVendorAdvanceReturnInput{
		VendorID: "vendor-1", AccountID: "acc-a", Amount: dec("304"),
	})
	if err != nil {
		t.Fatalf("expected overdraw within tolerance to pass, got %v", err)
	}
	if ret.VendorBalanceAfter.Type != domain.BalanceTypeDue {
		t.Errorf("expected vendor to flip to due, got %+v", ret.VendorBalanceAfter)
	}

	_, err = uc.Create(context.Background(), tenant, usecase.CreateVendorAdvanceReturnInput{
		VendorID: "vendor-1", AccountID: "acc-a", Amount: dec("2"),
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected overdraw beyond tolerance to fail, got %v", err)
	}
}

func TestVendorAdvanceReturnUseCase_DeleteRestoresVendor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ret, err := f.vendorAdvanceReturns.Create(ctx, tenant, usecase.CreateVendorAdvanceReturnInput{
		VendorID: "vendor-1", AccountID: "acc-a", Amount: dec("300"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assertDecimal(t, "vendor drained", f.store.Vendor("vendor-1").Balance, dec("0"))

	if _, err := f.vendorAdvanceReturns.Delete(ctx, tenant, ret.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertDecimal(t, "vendor", f.store.Vendor("vendor-1").Balance, dec("300"))
	assertDecimal(t, "A", balanceOf(t, f, "acc-a"), dec("1000"))
}
