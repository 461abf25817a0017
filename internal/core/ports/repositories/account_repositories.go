package repositories

import (
	"context"

	"github.com/SscSPs/bank_api/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// AccountExists reports whether an account with the given username is stored.
	AccountExists(ctx context.Context, username string) (bool, error)

	// FindAccountByUsername retrieves an account by username.
	// It returns apperrors.ErrNotFound when no account matches.
	// Inside RunInTx the row stays locked until the callback returns.
	FindAccountByUsername(ctx context.Context, username string) (*domain.Account, error)

	// ListUsernames returns every registered username in ascending order.
	ListUsernames(ctx context.Context) ([]string, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. It returns apperrors.ErrDuplicate if the username is taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateOwn overwrites the spendable balance of an account.
	UpdateOwn(ctx context.Context, username string, own int64) error

	// UpdateDebt overwrites the outstanding loan balance of an account.
	UpdateDebt(ctx context.Context, username string, debt int64) error
}

// AccountLifecycleManager defines operations for managing account lifecycle
type AccountLifecycleManager interface {
	// DeleteAccount removes an account. Deleting a missing account is a no-op.
	DeleteAccount(ctx context.Context, username string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLifecycleManager
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
