package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_api/internal/apperrors"
	"github.com/SscSPs/bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	verifier    portssvc.CredentialVerifierSvc
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, verifier portssvc.CredentialVerifierSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: repo,
		verifier:    verifier,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) ListUsernames(ctx context.Context) ([]string, error) {
	usernames, err := s.accountRepo.ListUsernames(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list usernames")
		return nil, fmt.Errorf("failed to list usernames: %w", err)
	}
	return usernames, nil
}

func (s *accountService) GetBalance(ctx context.Context, username, password string) (*domain.Account, domain.Status, error) {
	status, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return nil, 0, err
	}
	if status != domain.StatusOK {
		return nil, status, nil
	}

	account, err := s.accountRepo.FindAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.StatusInvalidUsername, nil
		}
		s.LogError(ctx, err, "Failed to load account balance", slog.String("username", username))
		return nil, 0, fmt.Errorf("failed to load account: %w", err)
	}
	return account, domain.StatusOK, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, username string) (domain.Status, error) {
	exists, err := s.accountRepo.AccountExists(ctx, username)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account existence", slog.String("username", username))
		return 0, fmt.Errorf("failed to check account existence: %w", err)
	}
	if !exists {
		return domain.StatusInvalidUsername, nil
	}

	if err := s.accountRepo.DeleteAccount(ctx, username); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("username", username))
		return 0, fmt.Errorf("failed to delete account: %w", err)
	}

	s.LogInfo(ctx, "Account deleted", slog.String("username", username))
	return domain.StatusUserDeleted, nil
}
