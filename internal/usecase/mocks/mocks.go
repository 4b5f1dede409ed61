package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// MockStore is an in-memory transactional store backing every repository
// the posting core uses. Transactions are serialized: Begin blocks until the
// previous transaction ends, and Rollback restores the data captured at Begin.
type MockStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	accounts map[string]domain.Account
	clients  map[string]domain.Client
	vendors  map[string]domain.Vendor
	entries  []domain.LedgerEntry
	counters map[string]int64
	audit    []domain.AuditEntry

	tables []snapshotter
	fail   map[string]error

	// BeginFunc overrides Begin when set.
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

type snapshotter interface {
	snapshot() (restore func())
}

// NewMockStore creates an empty store.
func NewMockStore() *MockStore {
	return &MockStore{
		accounts: make(map[string]domain.Account),
		clients:  make(map[string]domain.Client),
		vendors:  make(map[string]domain.Vendor),
		counters: make(map[string]int64),
		fail:     make(map[string]error),
	}
}

// FailOn makes the named operation return err until cleared with a nil err.
// Operation names look like "accounts.update" or "entries.create".
func (s *MockStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

// failure must be called with mu held.
func (s *MockStore) failure(op string) error {
	return s.fail[op]
}

// Begin starts a serialized transaction.
func (s *MockStore) Begin(ctx context.Context) (usecase.Transaction, error) {
	if s.BeginFunc != nil {
		return s.BeginFunc(ctx)
	}

	s.txMu.Lock()

	s.mu.Lock()
	restores := []func(){s.snapshot()}
	for _, t := range s.tables {
		restores = append(restores, t.snapshot())
	}
	s.mu.Unlock()

	return &mockTx{store: s, restores: restores}, nil
}

func (s *MockStore) snapshot() func() {
	accounts := cloneMap(s.accounts)
	clients := cloneMap(s.clients)
	vendors := cloneMap(s.vendors)
	entries := append([]domain.LedgerEntry(nil), s.entries...)
	counters := cloneMap(s.counters)
	audit := append([]domain.AuditEntry(nil), s.audit...)

	return func() {
		s.accounts = accounts
		s.clients = clients
		s.vendors = vendors
		s.entries = entries
		s.counters = counters
		s.audit = audit
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type mockTx struct {
	store    *MockStore
	restores []func()
	done     bool
}

func (t *mockTx) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}

	t.store.mu.RLock()
	err := t.store.failure("tx.commit")
	t.store.mu.RUnlock()
	if err != nil {
		return err
	}

	t.done = true
	t.store.txMu.Unlock()
	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	for _, restore := range t.restores {
		restore()
	}
	t.store.mu.Unlock()

	t.store.txMu.Unlock()
	return nil
}

// Seeding and inspection helpers.

func (s *MockStore) AddAccount(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
}

func (s *MockStore) AddClient(c domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ID] = c
}

func (s *MockStore) AddVendor(v domain.Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors[v.ID] = v
}

func (s *MockStore) AddEntry(e domain.LedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *MockStore) Account(id string) domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[id]
}

func (s *MockStore) Client(id string) domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients[id]
}

func (s *MockStore) Vendor(id string) domain.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vendors[id]
}

// Entries returns the ledger entries of voucherNo, or all entries when empty.
func (s *MockStore) Entries(voucherNo string) []domain.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, e := range s.entries {
		if voucherNo == "" || e.VoucherNo == voucherNo {
			out = append(out, e)
		}
	}
	return out
}

func (s *MockStore) AuditEntries() []domain.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.AuditEntry(nil), s.audit...)
}

func (s *MockStore) Counter(tenant domain.TenantID, prefix string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[counterKey(tenant, prefix)]
}

func counterKey(tenant domain.TenantID, prefix string) string {
	return tenant.String() + "/" + prefix
}

// Repository views.

func (s *MockStore) Accounts() *MockAccountRepository { return &MockAccountRepository{s: s} }
func (s *MockStore) Clients() *MockClientRepository   { return &MockClientRepository{s: s} }
func (s *MockStore) Vendors() *MockVendorRepository   { return &MockVendorRepository{s: s} }
func (s *MockStore) LedgerEntries() *MockEntryRepository {
	return &MockEntryRepository{s: s}
}
func (s *MockStore) Vouchers() *MockVoucherRepository { return &MockVoucherRepository{s: s} }
func (s *MockStore) Audit() *MockAuditRepository      { return &MockAuditRepository{s: s} }

// MockAccountRepository is an in-memory AccountRepository.
type MockAccountRepository struct{ s *MockStore }

func (m *MockAccountRepository) GetByID(ctx context.Context, tenant domain.TenantID, id string) (*domain.Account, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if err := m.s.failure("accounts.get"); err != nil {
		return nil, err
	}
	a, ok := m.s.accounts[id]
	if !ok || a.CompanyID != tenant {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, ids []string) ([]*domain.Account, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if err := m.s.failure("accounts.lock"); err != nil {
		return nil, err
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	var accounts []*domain.Account
	for _, id := range sorted {
		if a, ok := m.s.accounts[id]; ok && a.CompanyID == tenant {
			accounts = append(accounts, &a)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure("accounts.update"); err != nil {
		return err
	}
	a, ok := m.s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = balance
	a.HasTransactions = true
	a.UpdatedAt = updatedAt
	m.s.accounts[id] = a
	return nil
}

// MockClientRepository is an in-memory ClientRepository.
type MockClientRepository struct{ s *MockStore }

func (m *MockClientRepository) GetByID(ctx context.Context, tenant domain.TenantID, id string) (*domain.Client, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	c, ok := m.s.clients[id]
	if !ok || c.CompanyID != tenant {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

func (m *MockClientRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, id string) (*domain.Client, error) {
	m.s.mu.RLock()
	err := m.s.failure("clients.lock")
	m.s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return m.GetByID(ctx, tenant, id)
}

func (m *MockClientRepository) UpdatePresentBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	return m.update("clients.update", id, func(c *domain.Client) {
		c.PresentBalance = balance
		c.UpdatedAt = updatedAt
	})
}

func (m *MockClientRepository) UpdateDueAmount(ctx context.Context, tx usecase.Transaction, id string, due decimal.Decimal, updatedAt time.Time) error {
	return m.update("clients.update_due", id, func(c *domain.Client) {
		c.DueAmount = due
		c.UpdatedAt = updatedAt
	})
}

func (m *MockClientRepository) update(op, id string, fn func(*domain.Client)) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure(op); err != nil {
		return err
	}
	c, ok := m.s.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	fn(&c)
	m.s.clients[id] = c
	return nil
}

func (m *MockClientRepository) ListByCompany(ctx context.Context, tenant domain.TenantID) ([]*domain.Client, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if err := m.s.failure("clients.list"); err != nil {
		return nil, err
	}
	var out []*domain.Client
	for _, c := range m.s.clients {
		if c.CompanyID == tenant {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockVendorRepository is an in-memory VendorRepository.
type MockVendorRepository struct{ s *MockStore }

func (m *MockVendorRepository) GetByID(ctx context.Context, tenant domain.TenantID, id string) (*domain.Vendor, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	v, ok := m.s.vendors[id]
	if !ok || v.CompanyID != tenant {
		return nil, domain.ErrVendorNotFound
	}
	return &v, nil
}

func (m *MockVendorRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, id string) (*domain.Vendor, error) {
	return m.GetByID(ctx, tenant, id)
}

func (m *MockVendorRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure("vendors.update"); err != nil {
		return err
	}
	v, ok := m.s.vendors[id]
	if !ok {
		return domain.ErrVendorNotFound
	}
	v.Balance = balance
	v.UpdatedAt = updatedAt
	m.s.vendors[id] = v
	return nil
}

// MockEntryRepository is an in-memory EntryRepository.
type MockEntryRepository struct{ s *MockStore }

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure("entries.create"); err != nil {
		return err
	}
	m.s.entries = append(m.s.entries, *entry)
	return nil
}

func (m *MockEntryRepository) DeleteByVoucher(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, voucherNo string, kind domain.OperationKind, direction domain.Direction) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure("entries.delete"); err != nil {
		return 0, err
	}
	kept := m.s.entries[:0:0]
	var removed int64
	for _, e := range m.s.entries {
		if e.CompanyID == tenant && e.VoucherNo == voucherNo && e.Kind == kind &&
			(direction == "" || e.Direction == direction) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	m.s.entries = kept
	return removed, nil
}

func (m *MockEntryRepository) GetByVoucher(ctx context.Context, tenant domain.TenantID, voucherNo string) ([]*domain.LedgerEntry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.s.entries {
		if e.CompanyID == tenant && e.VoucherNo == voucherNo {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}

func (m *MockEntryRepository) SumByClient(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, clientID string, kinds []domain.OperationKind) (decimal.Decimal, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if err := m.s.failure("entries.sum"); err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, e := range m.s.entries {
		if e.CompanyID != tenant || e.ClientID != clientID || !containsKind(kinds, e.Kind) {
			continue
		}
		sum = sum.Add(e.Signed())
	}
	return sum, nil
}

func containsKind(kinds []domain.OperationKind, kind domain.OperationKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// MockVoucherRepository is an in-memory VoucherRepository.
type MockVoucherRepository struct{ s *MockStore }

func (m *MockVoucherRepository) Next(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, prefix string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure("vouchers.next"); err != nil {
		return 0, err
	}
	key := counterKey(tenant, prefix)
	m.s.counters[key]++
	return m.s.counters[key], nil
}

// MockAuditRepository is an in-memory AuditRepository.
type MockAuditRepository struct{ s *MockStore }

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.AuditEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure("audit.create"); err != nil {
		return err
	}
	m.s.audit = append(m.s.audit, *entry)
	return nil
}

func (m *MockAuditRepository) ListByClient(ctx context.Context, tenant domain.TenantID, clientID string) ([]*domain.AuditEntry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []*domain.AuditEntry
	for _, e := range m.s.audit {
		if e.CompanyID == tenant && e.ClientID == clientID {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}

// MockPostingRepository is an in-memory PostingRepository for one record type.
type MockPostingRepository[E any, P interface {
	*E
	domain.Posting
}] struct {
	s       *MockStore
	name    string
	records map[string]E
}

// NewMockPostingRepository registers a record table with the store so its
// rows take part in rollbacks.
func NewMockPostingRepository[E any, P interface {
	*E
	domain.Posting
}](s *MockStore, name string) *MockPostingRepository[E, P] {
	repo := &MockPostingRepository[E, P]{s: s, name: name, records: make(map[string]E)}

	s.mu.Lock()
	s.tables = append(s.tables, repo)
	s.mu.Unlock()

	return repo
}

func (m *MockPostingRepository[E, P]) snapshot() func() {
	records := cloneMap(m.records)
	return func() { m.records = records }
}

func (m *MockPostingRepository[E, P]) Create(ctx context.Context, tx usecase.Transaction, record P) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure(m.name + ".create"); err != nil {
		return err
	}
	m.records[record.Head().ID] = *(*E)(record)
	return nil
}

func (m *MockPostingRepository[E, P]) Update(ctx context.Context, tx usecase.Transaction, record P) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure(m.name + ".update"); err != nil {
		return err
	}
	m.records[record.Head().ID] = *(*E)(record)
	return nil
}

func (m *MockPostingRepository[E, P]) Delete(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.failure(m.name + ".delete"); err != nil {
		return err
	}
	delete(m.records, id)
	return nil
}

func (m *MockPostingRepository[E, P]) GetByID(ctx context.Context, tenant domain.TenantID, id string) (P, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, &domain.Error{Code: domain.CodeNotFound, Message: m.name + " not found"}
	}
	p := P(&rec)
	if p.Head().CompanyID != tenant {
		return nil, &domain.Error{Code: domain.CodeNotFound, Message: m.name + " not found"}
	}
	return p, nil
}

func (m *MockPostingRepository[E, P]) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenant domain.TenantID, id string) (P, error) {
	return m.GetByID(ctx, tenant, id)
}

// Len returns the number of stored records.
func (m *MockPostingRepository[E, P]) Len() int {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return len(m.records)
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
