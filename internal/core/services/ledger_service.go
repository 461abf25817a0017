package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/bank_api/internal/apperrors"
	"github.com/SscSPs/bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
)

// TransactionFee is the fixed charge credited to BANK on every deposit and transfer.
const TransactionFee int64 = 1

// ledgerService applies deposits, transfers and loans to account balances.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	verifier    portssvc.CredentialVerifierSvc
	fee         int64
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithTransactionFee overrides the fee charged on deposits and transfers.
func WithTransactionFee(fee int64) LedgerOption {
	return func(s *ledgerService) {
		s.fee = fee
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.AccountRepositoryWithTx, verifier portssvc.CredentialVerifierSvc, options ...LedgerOption) portssvc.LedgerSvc {
	svc := &ledgerService{
		accountRepo: repo,
		verifier:    verifier,
		fee:         TransactionFee,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// Deposit credits amount minus the fee to the user and the fee to BANK.
// Amounts at or below the fee are accepted and may shrink the user's balance.
func (s *ledgerService) Deposit(ctx context.Context, username, password string, amount int64) (domain.Status, error) {
	if status, err := s.verify(ctx, username, password); err != nil || status != domain.StatusOK {
		return status, err
	}
	if amount <= 0 {
		return domain.StatusInvalidAmount, nil
	}

	var status domain.Status
	err := s.accountRepo.RunInTx(ctx, func(ctx context.Context, repo portsrepo.AccountRepositoryFacade) error {
		accounts, err := lockAccounts(ctx, repo, username, domain.BankUsername)
		if err != nil {
			return err
		}
		user, ok := accounts[username]
		if !ok {
			status = domain.StatusInvalidUsername
			return nil
		}
		bank, ok := accounts[domain.BankUsername]
		if !ok {
			return apperrors.ErrBankAccountMissing
		}
		newBankOwn, err := checkedAdd(bank.Own, s.fee)
		if err != nil {
			return err
		}
		newUserOwn, err := checkedAdd(user.Own, amount)
		if err == nil {
			newUserOwn, err = checkedSub(newUserOwn, s.fee)
		}
		if err != nil {
			return err
		}

		if err := repo.UpdateOwn(ctx, domain.BankUsername, newBankOwn); err != nil {
			return err
		}
		if err := repo.UpdateOwn(ctx, username, newUserOwn); err != nil {
			return err
		}
		status = domain.StatusDeposited
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Deposit failed", slog.String("username", username), slog.Int64("amount", amount))
		return 0, fmt.Errorf("deposit failed: %w", err)
	}

	if status == domain.StatusDeposited {
		s.LogInfo(ctx, "Deposit applied", slog.String("username", username), slog.Int64("amount", amount), slog.Int64("fee", s.fee))
	}
	return status, nil
}

// Transfer moves amount out of the sender's balance. The recipient receives
// amount minus the fee and BANK receives the fee.
func (s *ledgerService) Transfer(ctx context.Context, username, password, to string, amount int64) (domain.Status, error) {
	if status, err := s.verify(ctx, username, password); err != nil || status != domain.StatusOK {
		return status, err
	}

	var status domain.Status
	err := s.accountRepo.RunInTx(ctx, func(ctx context.Context, repo portsrepo.AccountRepositoryFacade) error {
		accounts, err := lockAccounts(ctx, repo, username, to, domain.BankUsername)
		if err != nil {
			return err
		}
		sender, ok := accounts[username]
		if !ok {
			status = domain.StatusInvalidUsername
			return nil
		}

		switch {
		case sender.Own <= 0:
			status = domain.StatusNoFunds
			return nil
		case amount <= 0:
			status = domain.StatusInvalidAmount
			return nil
		case sender.Own < amount:
			status = domain.StatusInsufficientFunds
			return nil
		}

		recipient, ok := accounts[to]
		if !ok {
			status = domain.StatusRecipientNotFound
			return nil
		}
		bank, ok := accounts[domain.BankUsername]
		if !ok {
			return apperrors.ErrBankAccountMissing
		}
		newBankOwn, err := checkedAdd(bank.Own, s.fee)
		if err != nil {
			return err
		}
		newRecipientOwn, err := checkedAdd(recipient.Own, amount)
		if err == nil {
			newRecipientOwn, err = checkedSub(newRecipientOwn, s.fee)
		}
		if err != nil {
			return err
		}
		newSenderOwn := sender.Own - amount // sender.Own >= amount > 0

		// Write order matters when sender, recipient or BANK coincide: the last
		// write for a username wins.
		if err := repo.UpdateOwn(ctx, domain.BankUsername, newBankOwn); err != nil {
			return err
		}
		if err := repo.UpdateOwn(ctx, to, newRecipientOwn); err != nil {
			return err
		}
		if err := repo.UpdateOwn(ctx, username, newSenderOwn); err != nil {
			return err
		}
		status = domain.StatusTransferred
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Transfer failed",
			slog.String("username", username),
			slog.String("to", to),
			slog.Int64("amount", amount))
		return 0, fmt.Errorf("transfer failed: %w", err)
	}

	if status == domain.StatusTransferred {
		s.LogInfo(ctx, "Transfer applied",
			slog.String("username", username),
			slog.String("to", to),
			slog.Int64("amount", amount),
			slog.Int64("fee", s.fee))
	}
	return status, nil
}

// TakeLoan credits amount to both the balance and the debt of the user.
// The loan is created, not drawn from BANK's balance.
func (s *ledgerService) TakeLoan(ctx context.Context, username, password string, amount int64) (domain.Status, error) {
	if status, err := s.verify(ctx, username, password); err != nil || status != domain.StatusOK {
		return status, err
	}
	if amount <= 0 {
		return domain.StatusInvalidAmount, nil
	}

	var status domain.Status
	err := s.accountRepo.RunInTx(ctx, func(ctx context.Context, repo portsrepo.AccountRepositoryFacade) error {
		accounts, err := lockAccounts(ctx, repo, username)
		if err != nil {
			return err
		}
		user, ok := accounts[username]
		if !ok {
			status = domain.StatusInvalidUsername
			return nil
		}

		newOwn, err := checkedAdd(user.Own, amount)
		if err != nil {
			return err
		}
		newDebt, err := checkedAdd(user.Debt, amount)
		if err != nil {
			return err
		}

		if err := repo.UpdateOwn(ctx, username, newOwn); err != nil {
			return err
		}
		if err := repo.UpdateDebt(ctx, username, newDebt); err != nil {
			return err
		}
		status = domain.StatusLoanTaken
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Loan failed", slog.String("username", username), slog.Int64("amount", amount))
		return 0, fmt.Errorf("take loan failed: %w", err)
	}

	if status == domain.StatusLoanTaken {
		s.LogInfo(ctx, "Loan issued", slog.String("username", username), slog.Int64("amount", amount))
	}
	return status, nil
}

// PayLoan repays part or all of the user's debt from their balance.
func (s *ledgerService) PayLoan(ctx context.Context, username, password string, amount int64) (domain.Status, error) {
	if status, err := s.verify(ctx, username, password); err != nil || status != domain.StatusOK {
		return status, err
	}

	var status domain.Status
	err := s.accountRepo.RunInTx(ctx, func(ctx context.Context, repo portsrepo.AccountRepositoryFacade) error {
		accounts, err := lockAccounts(ctx, repo, username)
		if err != nil {
			return err
		}
		user, ok := accounts[username]
		if !ok {
			status = domain.StatusInvalidUsername
			return nil
		}

		switch {
		case user.Debt <= 0:
			status = domain.StatusNoLoanToPay
			return nil
		case user.Debt < amount:
			status = domain.StatusAmountExceedsLoan
			return nil
		case user.Own < amount:
			status = domain.StatusInsufficientFunds
			return nil
		}

		newOwn, err := checkedSub(user.Own, amount)
		if err != nil {
			return err
		}
		newDebt, err := checkedSub(user.Debt, amount)
		if err != nil {
			return err
		}

		if err := repo.UpdateOwn(ctx, username, newOwn); err != nil {
			return err
		}
		if err := repo.UpdateDebt(ctx, username, newDebt); err != nil {
			return err
		}
		status = domain.StatusLoanPaid
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Loan repayment failed", slog.String("username", username), slog.Int64("amount", amount))
		return 0, fmt.Errorf("pay loan failed: %w", err)
	}

	if status == domain.StatusLoanPaid {
		s.LogInfo(ctx, "Loan repaid", slog.String("username", username), slog.Int64("amount", amount))
	}
	return status, nil
}

func (s *ledgerService) verify(ctx context.Context, username, password string) (domain.Status, error) {
	status, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return 0, fmt.Errorf("failed to verify credentials: %w", err)
	}
	return status, nil
}

// lockAccounts reads the named accounts in ascending username order so that
// concurrent operations acquire row locks in the same sequence.
// Missing accounts are left out of the result.
func lockAccounts(ctx context.Context, repo portsrepo.AccountReader, usernames ...string) (map[string]domain.Account, error) {
	ordered := make([]string, 0, len(usernames))
	seen := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		ordered = append(ordered, u)
	}
	sort.Strings(ordered)

	accounts := make(map[string]domain.Account, len(ordered))
	for _, u := range ordered {
		account, err := repo.FindAccountByUsername(ctx, u)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load account %s: %w", u, err)
		}
		accounts[u] = *account
	}
	return accounts, nil
}

// errBalanceOverflow is returned when a balance would leave the int64 range.
var errBalanceOverflow = fmt.Errorf("%w: resulting balance is out of range", apperrors.ErrValidation)

func checkedAdd(a, b int64) (int64, error) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, errBalanceOverflow
	}
	return c, nil
}

func checkedSub(a, b int64) (int64, error) {
	c := a - b
	if (b > 0 && c > a) || (b < 0 && c < a) {
		return 0, errBalanceOverflow
	}
	return c, nil
}
