package repositories

import (
	"context"
)

// TxFunc is executed by RunInTx against a repository bound to the transaction.
type TxFunc func(ctx context.Context, repo AccountRepositoryFacade) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// RunInTx runs fn as one critical section. The transaction commits when fn
	// returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn TxFunc) error
}
