package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_api/internal/apperrors"
	"github.com/SscSPs/bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
	"github.com/SscSPs/bank_api/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// credentialService registers accounts and verifies username/password pairs.
type credentialService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	hashCost    int
}

// CredentialOption is a functional option for configuring the credential service
type CredentialOption func(*credentialService)

// WithHashCost sets the bcrypt cost used for new hashes.
func WithHashCost(cost int) CredentialOption {
	return func(s *credentialService) {
		s.hashCost = cost
	}
}

// NewCredentialService creates a new credential service with the provided options
func NewCredentialService(repo portsrepo.AccountRepositoryFacade, options ...CredentialOption) portssvc.CredentialSvcFacade {
	svc := &credentialService{
		accountRepo: repo,
		hashCost:    bcrypt.DefaultCost,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CredentialSvcFacade = (*credentialService)(nil)

func (s *credentialService) Register(ctx context.Context, username, password string) (domain.Status, error) {
	exists, err := s.accountRepo.AccountExists(ctx, username)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account existence", slog.String("username", username))
		return 0, fmt.Errorf("failed to check account existence: %w", err)
	}
	if exists {
		s.LogInfo(ctx, "Registration rejected, username taken", slog.String("username", username))
		return domain.StatusUsernameTaken, nil
	}

	hash, err := utils.HashPasswordWithCost(password, s.hashCost)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password", slog.String("username", username))
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Username:      username,
		PasswordHash:  hash,
		Own:           0,
		Debt:          0,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		// Lost a race against a concurrent registration of the same name.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return domain.StatusUsernameTaken, nil
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("username", username))
		return 0, err
	}

	s.LogInfo(ctx, "Account registered", slog.String("username", username))
	return domain.StatusRegistered, nil
}

func (s *credentialService) Verify(ctx context.Context, username, password string) (domain.Status, error) {
	account, err := s.accountRepo.FindAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.StatusInvalidUsername, nil
		}
		s.LogError(ctx, err, "Failed to load account for verification", slog.String("username", username))
		return 0, fmt.Errorf("failed to load account: %w", err)
	}

	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("username", username))
		return domain.StatusIncorrectPassword, nil
	}
	return domain.StatusOK, nil
}
