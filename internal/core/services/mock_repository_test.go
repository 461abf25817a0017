package services_test

import (
	"context"

	"github.com/SscSPs/bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_api/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryWithTx interface
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

// RunInTx hands the mock itself to the callback unless an error is configured.
func (m *MockAccountRepository) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

func (m *MockAccountRepository) AccountExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListUsernames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateOwn(ctx context.Context, username string, own int64) error {
	args := m.Called(ctx, username, own)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateDebt(ctx context.Context, username string, debt int64) error {
	args := m.Called(ctx, username, debt)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// MockCredentialVerifier is a mock type for the CredentialVerifierSvc interface
type MockCredentialVerifier struct {
	mock.Mock
}

func (m *MockCredentialVerifier) Verify(ctx context.Context, username, password string) (domain.Status, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.Status), args.Error(1)
}
