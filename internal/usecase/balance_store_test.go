package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
	"github.com/iho/agencyledger/internal/usecase/mocks"
)

func TestEnsureCovers(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		debit     string
		tolerance string
		wantErr   bool
	}{
		{"exact", "100", "100", "0", false},
		{"plenty", "100", "40", "0", false},
		{"one cent short", "100", "100.01", "0", true},
		{"within tolerance", "100", "104", "5", false},
		{"beyond tolerance", "100", "105.01", "5", true},
		{"already negative", "-1", "1", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := usecase.EnsureCovers(dec(tt.current), dec(tt.debit), dec(tt.tolerance))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSortRefs(t *testing.T) {
	refs := []domain.BalanceRef{
		{Kind: domain.BalanceVendor, ID: "v-1"},
		{Kind: domain.BalanceClientPresent, ID: "c-1"},
		{Kind: domain.BalanceAccount, ID: "b"},
		{Kind: domain.BalanceClientDue, ID: "c-1"},
		{Kind: domain.BalanceAccount, ID: "a"},
		{Kind: domain.BalanceClientPresent, ID: "c-0"},
	}

	usecase.SortRefs(refs)

	assert.Equal(t, []domain.BalanceRef{
		{Kind: domain.BalanceAccount, ID: "a"},
		{Kind: domain.BalanceAccount, ID: "b"},
		{Kind: domain.BalanceClientPresent, ID: "c-0"},
		{Kind: domain.BalanceClientDue, ID: "c-1"},
		{Kind: domain.BalanceClientPresent, ID: "c-1"},
		{Kind: domain.BalanceVendor, ID: "v-1"},
	}, refs)
}

func newBalanceStore(t *testing.T) (*usecase.BalanceStore, *mocks.MockStore) {
	t.Helper()
	store := mocks.NewMockStore()
	seed(store)
	return usecase.NewBalanceStore(store.Accounts(), store.Clients(), store.Vendors()), store
}

func TestBalanceStore_LockAndApply(t *testing.T) {
	balances, store := newBalanceStore(t)
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	account := domain.BalanceRef{Kind: domain.BalanceAccount, ID: "acc-a"}
	present := domain.BalanceRef{Kind: domain.BalanceClientPresent, ID: "client-1"}
	due := domain.BalanceRef{Kind: domain.BalanceClientDue, ID: "client-1"}
	vendor := domain.BalanceRef{Kind: domain.BalanceVendor, ID: "vendor-1"}

	snap, err := balances.Lock(ctx, tx, tenant, []domain.BalanceRef{vendor, due, present, account})
	require.NoError(t, err)

	assert.True(t, snap.Balance(account).Equal(dec("1000")))
	assert.True(t, snap.Balance(present).Equal(dec("500")))
	assert.True(t, snap.Balance(due).Equal(dec("800")))
	assert.True(t, snap.Balance(vendor).Equal(dec("300")))
	assert.Equal(t, "Cash Box", snap.Name(account))
	assert.Equal(t, "Sky Airlines", snap.Name(vendor))

	now := time.Now().UTC()
	after, err := balances.ApplyDelta(ctx, tx, snap, present, dec("-120"), now)
	require.NoError(t, err)
	assert.True(t, after.Equal(dec("380")))

	_, err = balances.ApplyDelta(ctx, tx, snap, due, dec("-30"), now)
	require.NoError(t, err)

	unlocked := domain.BalanceRef{Kind: domain.BalanceAccount, ID: "acc-b"}
	_, err = balances.ApplyDelta(ctx, tx, snap, unlocked, dec("1"), now)
	assert.Error(t, err)

	require.NoError(t, tx.Commit(ctx))

	client := store.Client("client-1")
	assert.True(t, client.PresentBalance.Equal(dec("380")))
	assert.True(t, client.DueAmount.Equal(dec("770")))
	assert.True(t, store.Account("acc-b").Balance.Equal(dec("400")))
}

func TestBalanceStore_LockMissingRows(t *testing.T) {
	tests := []struct {
		name string
		ref  domain.BalanceRef
		want error
	}{
		{"unknown account", domain.BalanceRef{Kind: domain.BalanceAccount, ID: "acc-x"}, domain.ErrAccountNotFound},
		{"foreign account", domain.BalanceRef{Kind: domain.BalanceAccount, ID: "acc-other"}, domain.ErrAccountNotFound},
		{"unknown client", domain.BalanceRef{Kind: domain.BalanceClientPresent, ID: "client-x"}, domain.ErrClientNotFound},
		{"unknown vendor", domain.BalanceRef{Kind: domain.BalanceVendor, ID: "vendor-x"}, domain.ErrVendorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, store := newBalanceStore(t)
			ctx := context.Background()

			tx, err := store.Begin(ctx)
			require.NoError(t, err)
			defer func() { _ = tx.Rollback(ctx) }()

			_, err = balances.Lock(ctx, tx, tenant, []domain.BalanceRef{tt.ref})
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestBalanceStore_ReadBalance(t *testing.T) {
	balances, _ := newBalanceStore(t)

	got, err := balances.ReadBalance(context.Background(), tenant, domain.BalanceRef{Kind: domain.BalanceAccount, ID: "acc-b"})
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("400")))

	_, err = balances.ReadBalance(context.Background(), "company-2", domain.BalanceRef{Kind: domain.BalanceAccount, ID: "acc-b"})
	assert.True(t, errors.Is(err, domain.ErrAccountNotFound))
}

func TestSequenceGenerator_Next(t *testing.T) {
	store := mocks.NewMockStore()
	seq := usecase.NewSequenceGenerator(store.Vouchers(), nil)
	ctx := context.Background()

	first, err := seq.Next(ctx, nil, tenant, "BT")
	require.NoError(t, err)
	second, err := seq.Next(ctx, nil, tenant, "BT")
	require.NoError(t, err)
	other, err := seq.Next(ctx, nil, "company-2", "BT")
	require.NoError(t, err)
	expense, err := seq.Next(ctx, nil, tenant, "EX")
	require.NoError(t, err)

	assert.Equal(t, "BT-0001", first)
	assert.Equal(t, "BT-0002", second)
	assert.Equal(t, "BT-0001", other)
	assert.Equal(t, "EX-0001", expense)

	store.FailOn("vouchers.next", errors.New("timeout"))
	_, err = seq.Next(ctx, nil, tenant, "BT")
	assert.True(t, errors.Is(err, domain.ErrStoreFailure))
}
