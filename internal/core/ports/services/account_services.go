package services

import (
	"context"

	"github.com/SscSPs/bank_api/internal/core/domain"
)

// AccountReaderSvc defines read operations for accounts
type AccountReaderSvc interface {
	// ListUsernames returns every registered username.
	ListUsernames(ctx context.Context) ([]string, error)

	// GetBalance verifies the credentials and returns the account on success.
	// On a credential failure the account is nil and the status explains why.
	GetBalance(ctx context.Context, username, password string) (*domain.Account, domain.Status, error)
}

// AccountLifecycleSvc defines operations for managing the account lifecycle
type AccountLifecycleSvc interface {
	// DeleteAccount removes an account by username.
	DeleteAccount(ctx context.Context, username string) (domain.Status, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountLifecycleSvc
}
