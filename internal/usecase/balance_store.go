package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
)

// Snapshot holds the locked balances of a unit of work and the display
// names of their owners.
type Snapshot struct {
	Balances domain.Balances
	Names    map[domain.BalanceRef]string
}

// Balance returns the current balance for ref.
func (s *Snapshot) Balance(ref domain.BalanceRef) decimal.Decimal {
	return s.Balances[ref]
}

// Name returns the display name of the entity behind ref.
func (s *Snapshot) Name(ref domain.BalanceRef) string {
	return s.Names[ref]
}

// BalanceStore reads and mutates the balances of accounts, clients and vendors.
type BalanceStore struct {
	accountRepo AccountRepository
	clientRepo  ClientRepository
	vendorRepo  VendorRepository
}

// NewBalanceStore creates a new BalanceStore.
func NewBalanceStore(accountRepo AccountRepository, clientRepo ClientRepository, vendorRepo VendorRepository) *BalanceStore {
	return &BalanceStore{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		vendorRepo:  vendorRepo,
	}
}

// SortRefs puts refs in lock order.
func SortRefs(refs []domain.BalanceRef) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
}

// Lock locks every row behind refs in a fixed order and returns their balances.
func (s *BalanceStore) Lock(ctx context.Context, tx Transaction, tenant domain.TenantID, refs []domain.BalanceRef) (*Snapshot, error) {
	return s.load(ctx, tx, tenant, refs)
}

// Read returns balances and names behind refs without locking.
func (s *BalanceStore) Read(ctx context.Context, tenant domain.TenantID, refs []domain.BalanceRef) (*Snapshot, error) {
	return s.load(ctx, nil, tenant, refs)
}

// load reads refs in lock order. A nil tx reads without locks.
func (s *BalanceStore) load(ctx context.Context, tx Transaction, tenant domain.TenantID, refs []domain.BalanceRef) (*Snapshot, error) {
	sorted := append([]domain.BalanceRef(nil), refs...)
	SortRefs(sorted)

	snap := &Snapshot{
		Balances: make(domain.Balances, len(sorted)),
		Names:    make(map[domain.BalanceRef]string, len(sorted)),
	}

	// Accounts go first in one statement; the repository orders by id.
	var accountIDs []string
	for _, ref := range sorted {
		if ref.Kind == domain.BalanceAccount {
			accountIDs = append(accountIDs, ref.ID)
		}
	}

	if len(accountIDs) > 0 {
		accounts, err := s.accounts(ctx, tx, tenant, accountIDs)
		if err != nil {
			return nil, err
		}

		if len(accounts) != len(accountIDs) {
			return nil, domain.ErrAccountNotFound
		}

		for _, a := range accounts {
			ref := domain.BalanceRef{Kind: domain.BalanceAccount, ID: a.ID}
			snap.Balances[ref] = a.Balance
			snap.Names[ref] = a.Name
		}
	}

	clients := make(map[string]*domain.Client)
	for _, ref := range sorted {
		switch ref.Kind {
		case domain.BalanceAccount:
		case domain.BalanceClientPresent, domain.BalanceClientDue:
			client, ok := clients[ref.ID]
			if !ok {
				var err error
				if tx != nil {
					client, err = s.clientRepo.GetByIDForUpdate(ctx, tx, tenant, ref.ID)
				} else {
					client, err = s.clientRepo.GetByID(ctx, tenant, ref.ID)
				}
				if err != nil {
					return nil, err
				}
				clients[ref.ID] = client
			}

			if ref.Kind == domain.BalanceClientDue {
				snap.Balances[ref] = client.DueAmount
			} else {
				snap.Balances[ref] = client.PresentBalance
			}
			snap.Names[ref] = client.Name
		case domain.BalanceVendor:
			var (
				vendor *domain.Vendor
				err    error
			)
			if tx != nil {
				vendor, err = s.vendorRepo.GetByIDForUpdate(ctx, tx, tenant, ref.ID)
			} else {
				vendor, err = s.vendorRepo.GetByID(ctx, tenant, ref.ID)
			}
			if err != nil {
				return nil, err
			}
			snap.Balances[ref] = vendor.Balance
			snap.Names[ref] = vendor.Name
		default:
			return nil, fmt.Errorf("unknown balance kind %q", ref.Kind)
		}
	}

	return snap, nil
}

func (s *BalanceStore) accounts(ctx context.Context, tx Transaction, tenant domain.TenantID, ids []string) ([]*domain.Account, error) {
	if tx != nil {
		return s.accountRepo.GetByIDsForUpdate(ctx, tx, tenant, ids)
	}

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		a, err := s.accountRepo.GetByID(ctx, tenant, id)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, nil
}

// ApplyDelta adds delta to the balance behind ref and returns the new value.
// The ref must have been locked into snap first.
func (s *BalanceStore) ApplyDelta(ctx context.Context, tx Transaction, snap *Snapshot, ref domain.BalanceRef, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	current, ok := snap.Balances[ref]
	if !ok {
		return decimal.Zero, fmt.Errorf("balance %s/%s applied without lock", ref.Kind, ref.ID)
	}

	next := current.Add(delta)

	var err error
	switch ref.Kind {
	case domain.BalanceAccount:
		err = s.accountRepo.UpdateBalance(ctx, tx, ref.ID, next, now)
	case domain.BalanceClientPresent:
		err = s.clientRepo.UpdatePresentBalance(ctx, tx, ref.ID, next, now)
	case domain.BalanceClientDue:
		err = s.clientRepo.UpdateDueAmount(ctx, tx, ref.ID, next, now)
	case domain.BalanceVendor:
		err = s.vendorRepo.UpdateBalance(ctx, tx, ref.ID, next, now)
	default:
		err = fmt.Errorf("unknown balance kind %q", ref.Kind)
	}
	if err != nil {
		return decimal.Zero, err
	}

	snap.Balances[ref] = next

	return next, nil
}

// ReadBalance returns the balance behind ref without locking.
func (s *BalanceStore) ReadBalance(ctx context.Context, tenant domain.TenantID, ref domain.BalanceRef) (decimal.Decimal, error) {
	snap, err := s.Read(ctx, tenant, []domain.BalanceRef{ref})
	if err != nil {
		return decimal.Zero, err
	}

	return snap.Balance(ref), nil
}

// EnsureCovers fails when debiting current by debit would go below -tolerance.
func EnsureCovers(current, debit, tolerance decimal.Decimal) error {
	if current.Sub(debit).LessThan(tolerance.Neg()) {
		return domain.NewInsufficientBalance(
			"insufficient balance: available %s, required %s",
			current.StringFixed(2), debit.StringFixed(2),
		)
	}
	return nil
}
