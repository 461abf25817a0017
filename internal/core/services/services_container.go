package services

import (
	portsrepo "github.com/SscSPs/bank_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
	"github.com/SscSPs/bank_api/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Credentials first: the ledger and account services verify through it.
	container.Credential = NewCredentialService(repos.AccountRepo, WithHashCost(cfg.BcryptCost))
	container.Account = NewAccountService(repos.AccountRepo, container.Credential)
	container.Ledger = NewLedgerService(repos.AccountRepo, container.Credential)

	return container
}
