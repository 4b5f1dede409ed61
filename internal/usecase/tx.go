package usecase

//go:generate mockgen -source=tx.go -destination=mocks/mock_tx.go -package=mocks

import "context"

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient store conflicts. Callers of the
// posting core own the retry policy; the core never retries on its own.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
