package handlers_test

import (
	"context"

	"github.com/SscSPs/bank_api/internal/core/domain"
	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock CredentialService ---
type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Register(ctx context.Context, username, password string) (domain.Status, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.Status), args.Error(1)
}

func (m *MockCredentialService) Verify(ctx context.Context, username, password string) (domain.Status, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.Status), args.Error(1)
}

var _ portssvc.CredentialSvcFacade = (*MockCredentialService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListUsernames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountService) GetBalance(ctx context.Context, username, password string) (*domain.Account, domain.Status, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.Status), args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).(domain.Status), args.Error(2)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, username string) (domain.Status, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.Status), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Deposit(ctx context.Context, username, password string, amount int64) (domain.Status, error) {
	args := m.Called(ctx, username, password, amount)
	return args.Get(0).(domain.Status), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, username, password, to string, amount int64) (domain.Status, error) {
	args := m.Called(ctx, username, password, to, amount)
	return args.Get(0).(domain.Status), args.Error(1)
}

func (m *MockLedgerService) TakeLoan(ctx context.Context, username, password string, amount int64) (domain.Status, error) {
	args := m.Called(ctx, username, password, amount)
	return args.Get(0).(domain.Status), args.Error(1)
}

func (m *MockLedgerService) PayLoan(ctx context.Context, username, password string, amount int64) (domain.Status, error) {
	args := m.Called(ctx, username, password, amount)
	return args.Get(0).(domain.Status), args.Error(1)
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)
