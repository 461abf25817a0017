package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_api/internal/core/domain"
	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
)

// EnsureBankAccount registers the BANK account with the given password when
// it does not exist yet. An existing BANK account is left untouched.
func EnsureBankAccount(ctx context.Context, registrar portssvc.RegistrationSvc, password string, logger *slog.Logger) error {
	status, err := registrar.Register(ctx, domain.BankUsername, password)
	if err != nil {
		return fmt.Errorf("failed to register %s account: %w", domain.BankUsername, err)
	}
	switch status {
	case domain.StatusRegistered:
		logger.Info("BANK account registered at startup")
	case domain.StatusUsernameTaken:
		logger.Info("BANK account already present")
	default:
		return fmt.Errorf("unexpected status registering %s: %s", domain.BankUsername, status)
	}
	return nil
}
