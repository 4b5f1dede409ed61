package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	postgresRepo "github.com/iho/agencyledger/internal/adapter/repository/postgres"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/config"
	"github.com/iho/agencyledger/internal/infrastructure/logger"
	"github.com/iho/agencyledger/internal/infrastructure/postgres"
	"github.com/iho/agencyledger/internal/usecase"
)

const nameWidth = 24

var (
	databaseURL    string
	migrationsPath string
	companyID      string
	asJSON         bool
)

type reconciler interface {
	Report(ctx context.Context, tenant domain.TenantID) (*usecase.ReconciliationReport, error)
	Reconcile(ctx context.Context, tenant domain.TenantID) (*usecase.ReconciliationSummary, error)
}

type migrator interface {
	Up() error
	Down() error
}

// Swapped out in tests.
var (
	openReconciler = openPostgresReconciler
	newMigrator    = func(url, path string, l zerolog.Logger) migrator {
		return postgres.NewMigrator(url, path, l)
	}
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := rootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "agencyledger-cli",
		Short:         "AgencyLedger CLI tool",
		Long:          `Maintenance commands for the AgencyLedger database: migrations and due-amount reconciliation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&databaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection URL")

	root.AddCommand(reconcileCmd(cfg))
	root.AddCommand(migrateCmd(cfg))

	return root
}

func reconcileCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare and correct client due amounts",
	}
	cmd.PersistentFlags().StringVar(&companyID, "company", "", "Company to reconcile")
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	_ = cmd.MarkPersistentFlagRequired("company")

	report := &cobra.Command{
		Use:   "report",
		Short: "List clients whose stored due differs from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openReconciler(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.Report(cmd.Context(), domain.TenantID(companyID))
			if err != nil {
				return err
			}

			if asJSON {
				printJSON(res)
				return nil
			}
			printReport(res)
			return nil
		},
	}

	run := &cobra.Command{
		Use:   "run",
		Short: "Write the ledger-derived due amount back for drifting clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openReconciler(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.Reconcile(cmd.Context(), domain.TenantID(companyID))
			if err != nil {
				return err
			}

			if asJSON {
				printJSON(res)
			} else {
				printSummary(res)
			}

			if len(res.Errors) > 0 {
				return fmt.Errorf("%d client(s) could not be reconciled", len(res.Errors))
			}
			return nil
		},
	}

	cmd.AddCommand(report, run)
	return cmd
}

func migrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}
	cmd.PersistentFlags().StringVar(&migrationsPath, "path", cfg.MigrationsPath, "Directory holding migration files")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newMigrator(databaseURL, migrationsPath, cliLogger(cfg)).Up()
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newMigrator(databaseURL, migrationsPath, cliLogger(cfg)).Down()
		},
	}

	cmd.AddCommand(up, down)
	return cmd
}

func cliLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Output: os.Stderr})
}

func openPostgresReconciler(ctx context.Context, cfg *config.Config) (reconciler, func(), error) {
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    databaseURL,
		MaxConns:       2,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	clients := postgresRepo.NewClientRepository(pool)
	balances := usecase.NewBalanceStore(
		postgresRepo.NewAccountRepository(pool),
		clients,
		postgresRepo.NewVendorRepository(pool),
	)

	uc := usecase.NewReconciliationUseCase(
		postgresRepo.NewTxManager(pool),
		clients,
		postgresRepo.NewEntryRepository(pool),
		postgresRepo.NewAuditRepository(pool),
		balances,
		postgresRepo.NewULIDGenerator(),
		nil,
		0,
		cliLogger(cfg),
		nil,
	)
	uc.SetTransactionTimeout(cfg.TransactionTimeout)

	return uc, pool.Close, nil
}

func printReport(r *usecase.ReconciliationReport) {
	fmt.Printf("Clients checked: %d\n", r.TotalClients)
	fmt.Printf("Drifting: %d\n", r.DriftingClients)
	if len(r.Details) == 0 {
		return
	}

	fmt.Printf("%-*s %14s %14s %14s\n", nameWidth, "CLIENT", "STORED", "EXPECTED", "DIFFERENCE")
	for _, d := range r.Details {
		fmt.Printf("%-*s %14s %14s %14s\n", nameWidth, truncate(d.Name, nameWidth),
			d.StoredDue.StringFixed(2), d.ExpectedDue.StringFixed(2), d.Difference.StringFixed(2))
	}
}

func printSummary(s *usecase.ReconciliationSummary) {
	fmt.Printf("Clients checked: %d\n", s.TotalClients)
	fmt.Printf("Corrected: %d\n", s.Corrected)
	for _, c := range s.Corrections {
		fmt.Printf("  %-*s %14s -> %14s\n", nameWidth, truncate(c.Name, nameWidth),
			c.StoredDue.StringFixed(2), c.ExpectedDue.StringFixed(2))
	}
	for _, e := range s.Errors {
		fmt.Printf("  FAILED %s: %s\n", e.ClientID, e.Message)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
	}
}
