package services

import (
	"context"

	"github.com/SscSPs/bank_api/internal/core/domain"
)

// CredentialVerifierSvc checks a claimed username and password pair.
type CredentialVerifierSvc interface {
	// Verify returns domain.StatusOK when the pair matches, StatusInvalidUsername
	// when the account is absent and StatusIncorrectPassword on a hash mismatch.
	Verify(ctx context.Context, username, password string) (domain.Status, error)
}

// RegistrationSvc creates new accounts.
type RegistrationSvc interface {
	// Register stores a new account with a zero balance and no debt.
	Register(ctx context.Context, username, password string) (domain.Status, error)
}

// CredentialSvcFacade combines registration and verification
type CredentialSvcFacade interface {
	CredentialVerifierSvc
	RegistrationSvc
}
