package usecase_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/metrics"
	"github.com/iho/agencyledger/internal/usecase"
	"github.com/iho/agencyledger/internal/usecase/mocks"
)

const tenant domain.TenantID = "company-1"

var testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

// fixture wires every use case to one in-memory store.
type fixture struct {
	store   *mocks.MockStore
	metrics *metrics.Metrics
	cache   *mocks.MockCache
	ids     *mocks.MockIDGenerator
	engine  *usecase.PostingEngine

	advanceReturnRepo       *mocks.MockPostingRepository[domain.AdvanceReturn, *domain.AdvanceReturn]
	balanceTransferRepo     *mocks.MockPostingRepository[domain.BalanceTransfer, *domain.BalanceTransfer]
	expenseRepo             *mocks.MockPostingRepository[domain.Expense, *domain.Expense]
	investmentRepo          *mocks.MockPostingRepository[domain.Investment, *domain.Investment]
	vendorAdvanceReturnRepo *mocks.MockPostingRepository[domain.VendorAdvanceReturn, *domain.VendorAdvanceReturn]
	clientPaymentRepo       *mocks.MockPostingRepository[domain.ClientPayment, *domain.ClientPayment]

	advanceReturns       *usecase.AdvanceReturnUseCase
	transfers            *usecase.BalanceTransferUseCase
	expenses             *usecase.ExpenseUseCase
	investments          *usecase.InvestmentUseCase
	vendorAdvanceReturns *usecase.VendorAdvanceReturnUseCase
	clientPayments       *usecase.ClientPaymentUseCase
	reconciliation       *usecase.ReconciliationUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithClients(t, nil)
}

// newFixtureWithClients lets a test swap the client repository, e.g. to inject
// per-client failures.
func newFixtureWithClients(t *testing.T, wrap func(usecase.ClientRepository) usecase.ClientRepository) *fixture {
	t.Helper()

	store := mocks.NewMockStore()
	seed(store)

	var clients usecase.ClientRepository = store.Clients()
	if wrap != nil {
		clients = wrap(clients)
	}

	m := metrics.New(prometheus.NewRegistry())
	idGen := mocks.NewMockIDGenerator()
	logger := zerolog.Nop()

	balances := usecase.NewBalanceStore(store.Accounts(), clients, store.Vendors())
	ledger := usecase.NewLedgerWriter(store.LedgerEntries(), idGen)
	sequence := usecase.NewSequenceGenerator(store.Vouchers(), m)
	engine := usecase.NewPostingEngine(store, balances, ledger, sequence, idGen, decimal.Zero, logger, m)

	f := &fixture{
		store:   store,
		metrics: m,
		cache:   mocks.NewMockCache(),
		ids:     idGen,
		engine:  engine,

		advanceReturnRepo:       mocks.NewMockPostingRepository[domain.AdvanceReturn](store, "advance return"),
		balanceTransferRepo:     mocks.NewMockPostingRepository[domain.BalanceTransfer](store, "balance transfer"),
		expenseRepo:             mocks.NewMockPostingRepository[domain.Expense](store, "expense"),
		investmentRepo:          mocks.NewMockPostingRepository[domain.Investment](store, "investment"),
		vendorAdvanceReturnRepo: mocks.NewMockPostingRepository[domain.VendorAdvanceReturn](store, "vendor advance return"),
		clientPaymentRepo:       mocks.NewMockPostingRepository[domain.ClientPayment](store, "client payment"),
	}

	f.advanceReturns = usecase.NewAdvanceReturnUseCase(engine, f.advanceReturnRepo)
	f.transfers = usecase.NewBalanceTransferUseCase(engine, f.balanceTransferRepo)
	f.expenses = usecase.NewExpenseUseCase(engine, f.expenseRepo)
	f.investments = usecase.NewInvestmentUseCase(engine, f.investmentRepo)
	f.vendorAdvanceReturns = usecase.NewVendorAdvanceReturnUseCase(engine, f.vendorAdvanceReturnRepo)
	f.clientPayments = usecase.NewClientPaymentUseCase(engine, f.clientPaymentRepo, store.Audit(), idGen, m)
	f.clientPayments.SetReportCache(f.cache)
	f.reconciliation = usecase.NewReconciliationUseCase(
		store, clients, store.LedgerEntries(), store.Audit(), balances, idGen, f.cache, time.Minute, logger, m,
	)

	return f
}

func seed(store *mocks.MockStore) {
	store.AddAccount(domain.Account{ID: "acc-a", CompanyID: tenant, Name: "Cash Box", Category: domain.AccountCategoryCash, Balance: dec("1000")})
	store.AddAccount(domain.Account{ID: "acc-b", CompanyID: tenant, Name: "City Bank", Category: domain.AccountCategoryBank, Balance: dec("400")})
	store.AddAccount(domain.Account{ID: "acc-other", CompanyID: "company-2", Name: "Foreign", Category: domain.AccountCategoryCash, Balance: dec("50")})

	store.AddClient(domain.Client{
		ID: "client-1", CompanyID: tenant, Name: "Rahim Travels",
		PresentBalance: dec("500"), DueAmount: dec("800"),
		ContractAmount: dec("1000"), InitialPayment: dec("200"),
	})
	store.AddClient(domain.Client{
		ID: "client-2", CompanyID: tenant, Name: "Karim Tours",
		PresentBalance: dec("0"), DueAmount: dec("300"),
		ContractAmount: dec("300"), InitialPayment: dec("0"),
	})

	store.AddVendor(domain.Vendor{ID: "vendor-1", CompanyID: tenant, Name: "Sky Airlines", Balance: dec("300")})
}

func balanceOf(t *testing.T, f *fixture, accountID string) decimal.Decimal {
	t.Helper()
	return f.store.Account(accountID).Balance
}

func assertDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("%s: expected %s, got %s", name, want, got)
	}
}
