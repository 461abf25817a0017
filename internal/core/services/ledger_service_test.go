package services_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/SscSPs/bank_api/internal/apperrors"
	"github.com/SscSPs/bank_api/internal/core/domain"
	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
	"github.com/SscSPs/bank_api/internal/core/services"
	"github.com/SscSPs/bank_api/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	repo        *memory.AccountRepository
	credentials portssvc.CredentialSvcFacade
	accounts    portssvc.AccountSvcFacade
	ledger      portssvc.LedgerSvc
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = memory.NewAccountRepository()
	suite.credentials = services.NewCredentialService(suite.repo, services.WithHashCost(bcrypt.MinCost))
	suite.accounts = services.NewAccountService(suite.repo, suite.credentials)
	suite.ledger = services.NewLedgerService(suite.repo, suite.credentials)
}

func (suite *LedgerServiceTestSuite) register(username, password string) {
	status, err := suite.credentials.Register(suite.ctx, username, password)
	suite.Require().NoError(err)
	suite.Require().Equal(domain.StatusRegistered, status)
}

func (suite *LedgerServiceTestSuite) account(username string) domain.Account {
	a, err := suite.repo.FindAccountByUsername(suite.ctx, username)
	suite.Require().NoError(err)
	return *a
}

// setBalances writes balances directly, bypassing the engine.
func (suite *LedgerServiceTestSuite) setBalances(username string, own, debt int64) {
	suite.Require().NoError(suite.repo.UpdateOwn(suite.ctx, username, own))
	suite.Require().NoError(suite.repo.UpdateDebt(suite.ctx, username, debt))
}

func (suite *LedgerServiceTestSuite) snapshot() map[string]domain.Account {
	names, err := suite.repo.ListUsernames(suite.ctx)
	suite.Require().NoError(err)
	out := make(map[string]domain.Account, len(names))
	for _, n := range names {
		out[n] = suite.account(n)
	}
	return out
}

func (suite *LedgerServiceTestSuite) setupBankAndAlice() {
	suite.register(domain.BankUsername, "x")
	suite.register("alice", "p")
}

// --- Credential checks shared by every operation ---

func (suite *LedgerServiceTestSuite) TestOperations_RejectBadCredentials() {
	suite.setupBankAndAlice()
	suite.setBalances("alice", 100, 10)
	before := suite.snapshot()

	type op func(user, pass string) (domain.Status, error)
	ops := map[string]op{
		"deposit": func(u, p string) (domain.Status, error) { return suite.ledger.Deposit(suite.ctx, u, p, 10) },
		"transfer": func(u, p string) (domain.Status, error) {
			return suite.ledger.Transfer(suite.ctx, u, p, domain.BankUsername, 10)
		},
		"takeloan": func(u, p string) (domain.Status, error) { return suite.ledger.TakeLoan(suite.ctx, u, p, 10) },
		"payloan":  func(u, p string) (domain.Status, error) { return suite.ledger.PayLoan(suite.ctx, u, p, 10) },
	}

	for name, fn := range ops {
		status, err := fn("nobody", "p")
		suite.Require().NoError(err, name)
		suite.Equal(domain.StatusInvalidUsername, status, name)

		status, err = fn("alice", "wrong")
		suite.Require().NoError(err, name)
		suite.Equal(domain.StatusIncorrectPassword, status, name)
	}

	suite.Equal(before, suite.snapshot())
}

// --- Deposit ---

func (suite *LedgerServiceTestSuite) TestDeposit_Success() {
	suite.setupBankAndAlice()

	status, err := suite.ledger.Deposit(suite.ctx, "alice", "p", 100)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusDeposited, status)
	suite.Equal(int64(99), suite.account("alice").Own)
	suite.Equal(int64(1), suite.account(domain.BankUsername).Own)
}

func (suite *LedgerServiceTestSuite) TestDeposit_NonPositiveAmount() {
	suite.setupBankAndAlice()
	before := suite.snapshot()

	for _, amount := range []int64{0, -1, -500} {
		status, err := suite.ledger.Deposit(suite.ctx, "alice", "p", amount)
		suite.Require().NoError(err)
		suite.Equal(domain.StatusInvalidAmount, status)
	}
	suite.Equal(before, suite.snapshot())
}

func (suite *LedgerServiceTestSuite) TestDeposit_AmountEqualToFeeCreditsNothing() {
	suite.setupBankAndAlice()

	status, err := suite.ledger.Deposit(suite.ctx, "alice", "p", 1)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusDeposited, status)
	suite.Equal(int64(0), suite.account("alice").Own)
	suite.Equal(int64(1), suite.account(domain.BankUsername).Own)
}

func (suite *LedgerServiceTestSuite) TestDeposit_BelowFeeShrinksBalance() {
	suite.register(domain.BankUsername, "x")
	suite.register("alice", "p")
	ledger := services.NewLedgerService(suite.repo, suite.credentials, services.WithTransactionFee(5))

	status, err := ledger.Deposit(suite.ctx, "alice", "p", 2)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusDeposited, status)
	suite.Equal(int64(-3), suite.account("alice").Own)
	suite.Equal(int64(5), suite.account(domain.BankUsername).Own)
}

func (suite *LedgerServiceTestSuite) TestDeposit_WithoutBankFails() {
	suite.register("alice", "p")

	_, err := suite.ledger.Deposit(suite.ctx, "alice", "p", 100)
	suite.Require().ErrorIs(err, apperrors.ErrBankAccountMissing)
	suite.Equal(int64(0), suite.account("alice").Own)
}

func (suite *LedgerServiceTestSuite) TestDeposit_ByBankLosesTheFee() {
	suite.register(domain.BankUsername, "x")

	status, err := suite.ledger.Deposit(suite.ctx, domain.BankUsername, "x", 10)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusDeposited, status)
	// The user write lands after the fee write and overwrites it.
	suite.Equal(int64(9), suite.account(domain.BankUsername).Own)
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_Success() {
	suite.setupBankAndAlice()
	suite.register("bob", "b")
	suite.setBalances("alice", 100, 0)

	status, err := suite.ledger.Transfer(suite.ctx, "alice", "p", "bob", 40)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusTransferred, status)
	suite.Equal(int64(60), suite.account("alice").Own)
	suite.Equal(int64(39), suite.account("bob").Own)
	suite.Equal(int64(1), suite.account(domain.BankUsername).Own)
}

func (suite *LedgerServiceTestSuite) TestTransfer_ConservesValueForAnyFee() {
	for _, fee := range []int64{0, 1, 3, 10} {
		suite.SetupTest()
		suite.setupBankAndAlice()
		suite.register("bob", "b")
		suite.setBalances("alice", 100, 0)
		ledger := services.NewLedgerService(suite.repo, suite.credentials, services.WithTransactionFee(fee))

		status, err := ledger.Transfer(suite.ctx, "alice", "p", "bob", 50)
		suite.Require().NoError(err)
		suite.Equal(domain.StatusTransferred, status)

		senderLoss := 100 - suite.account("alice").Own
		recipientGain := suite.account("bob").Own
		bankGain := suite.account(domain.BankUsername).Own
		suite.Equal(int64(50), senderLoss)
		suite.Equal(50-fee, recipientGain)
		suite.Equal(fee, bankGain)
		suite.Equal(senderLoss, recipientGain+bankGain, "fee=%d", fee)
	}
}

func (suite *LedgerServiceTestSuite) TestTransfer_PreconditionOrder() {
	suite.setupBankAndAlice()

	// No funds is reported before the amount is looked at.
	status, err := suite.ledger.Transfer(suite.ctx, "alice", "p", "ghost", -5)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusNoFunds, status)

	suite.setBalances("alice", 10, 0)
	before := suite.snapshot()

	status, err = suite.ledger.Transfer(suite.ctx, "alice", "p", "ghost", 0)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusInvalidAmount, status)

	status, err = suite.ledger.Transfer(suite.ctx, "alice", "p", "ghost", 11)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusInsufficientFunds, status)

	status, err = suite.ledger.Transfer(suite.ctx, "alice", "p", "ghost", 10)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusRecipientNotFound, status)

	suite.Equal(before, suite.snapshot())
}

func (suite *LedgerServiceTestSuite) TestTransfer_NegativeBalanceHasNoFunds() {
	suite.setupBankAndAlice()
	suite.register("bob", "b")
	suite.setBalances("alice", -4, 0)

	status, err := suite.ledger.Transfer(suite.ctx, "alice", "p", "bob", 1)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusNoFunds, status)
}

func (suite *LedgerServiceTestSuite) TestTransfer_ToSelfDebitsFullAmount() {
	suite.setupBankAndAlice()
	suite.setBalances("alice", 100, 0)

	status, err := suite.ledger.Transfer(suite.ctx, "alice", "p", "alice", 30)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusTransferred, status)
	// The sender write is applied last and wins over the recipient credit.
	suite.Equal(int64(70), suite.account("alice").Own)
	suite.Equal(int64(1), suite.account(domain.BankUsername).Own)
}

func (suite *LedgerServiceTestSuite) TestTransfer_WithoutBankFails() {
	suite.register("alice", "p")
	suite.register("bob", "b")
	suite.setBalances("alice", 100, 0)

	_, err := suite.ledger.Transfer(suite.ctx, "alice", "p", "bob", 10)
	suite.Require().ErrorIs(err, apperrors.ErrBankAccountMissing)
	suite.Equal(int64(100), suite.account("alice").Own)
	suite.Equal(int64(0), suite.account("bob").Own)
}

// --- Loans ---

func (suite *LedgerServiceTestSuite) TestTakeLoan_Success() {
	suite.setupBankAndAlice()
	suite.setBalances("alice", 5, 3)

	status, err := suite.ledger.TakeLoan(suite.ctx, "alice", "p", 20)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusLoanTaken, status)
	suite.Equal(int64(25), suite.account("alice").Own)
	suite.Equal(int64(23), suite.account("alice").Debt)
	suite.Equal(int64(0), suite.account(domain.BankUsername).Own, "loans are not drawn from BANK")
}

func (suite *LedgerServiceTestSuite) TestTakeLoan_NonPositiveAmount() {
	suite.setupBankAndAlice()
	before := suite.snapshot()

	for _, amount := range []int64{0, -20} {
		status, err := suite.ledger.TakeLoan(suite.ctx, "alice", "p", amount)
		suite.Require().NoError(err)
		suite.Equal(domain.StatusInvalidAmount, status)
	}
	suite.Equal(before, suite.snapshot())
}

func (suite *LedgerServiceTestSuite) TestTakeLoan_DoesNotNeedBank() {
	suite.register("alice", "p")

	status, err := suite.ledger.TakeLoan(suite.ctx, "alice", "p", 20)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusLoanTaken, status)
}

func (suite *LedgerServiceTestSuite) TestPayLoan_PreconditionOrder() {
	suite.setupBankAndAlice()

	status, err := suite.ledger.PayLoan(suite.ctx, "alice", "p", 5)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusNoLoanToPay, status)

	suite.setBalances("alice", 100, 20)
	before := suite.snapshot()

	status, err = suite.ledger.PayLoan(suite.ctx, "alice", "p", 25)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusAmountExceedsLoan, status, "exceeding the loan fails even with enough funds")

	suite.setBalances("alice", 5, 20)
	status, err = suite.ledger.PayLoan(suite.ctx, "alice", "p", 10)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusInsufficientFunds, status)

	alice := suite.account("alice")
	suite.Equal(int64(5), alice.Own)
	suite.Equal(before["alice"].Debt, alice.Debt)
}

func (suite *LedgerServiceTestSuite) TestPayLoan_Success() {
	suite.setupBankAndAlice()
	suite.setBalances("alice", 30, 20)

	status, err := suite.ledger.PayLoan(suite.ctx, "alice", "p", 15)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusLoanPaid, status)
	suite.Equal(int64(15), suite.account("alice").Own)
	suite.Equal(int64(5), suite.account("alice").Debt)
}

// --- End-to-end scenarios ---

func (suite *LedgerServiceTestSuite) TestScenario_DepositAndTransfer() {
	suite.setupBankAndAlice()

	status, err := suite.ledger.Deposit(suite.ctx, "alice", "p", 100)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusDeposited, status)
	suite.Equal(int64(99), suite.account("alice").Own)
	suite.Equal(int64(1), suite.account(domain.BankUsername).Own)

	before := suite.snapshot()
	status, err = suite.ledger.Transfer(suite.ctx, "alice", "p", "bob", 50)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusRecipientNotFound, status)
	suite.Equal(before, suite.snapshot())

	suite.register("bob", "b")
	status, err = suite.ledger.Transfer(suite.ctx, "alice", "p", "bob", 50)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusTransferred, status)
	suite.Equal(int64(49), suite.account("alice").Own)
	suite.Equal(int64(49), suite.account("bob").Own)
	suite.Equal(int64(2), suite.account(domain.BankUsername).Own)
}

func (suite *LedgerServiceTestSuite) TestScenario_LoanLifecycle() {
	suite.setupBankAndAlice()
	_, err := suite.ledger.Deposit(suite.ctx, "alice", "p", 100)
	suite.Require().NoError(err)
	own := suite.account("alice").Own

	status, err := suite.ledger.TakeLoan(suite.ctx, "alice", "p", 20)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusLoanTaken, status)
	suite.Equal(int64(20), suite.account("alice").Debt)
	suite.Equal(own+20, suite.account("alice").Own)

	status, err = suite.ledger.PayLoan(suite.ctx, "alice", "p", 25)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusAmountExceedsLoan, status)

	status, err = suite.ledger.PayLoan(suite.ctx, "alice", "p", 20)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusLoanPaid, status)
	suite.Equal(int64(0), suite.account("alice").Debt)
	suite.Equal(own, suite.account("alice").Own)
}

// --- Concurrency ---

func (suite *LedgerServiceTestSuite) TestConcurrentDeposits_NoLostUpdates() {
	suite.setupBankAndAlice()
	suite.register("bob", "b")

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = suite.ledger.Deposit(suite.ctx, "alice", "p", 10)
		}()
		go func() {
			defer wg.Done()
			_, _ = suite.ledger.Deposit(suite.ctx, "bob", "b", 10)
		}()
	}
	wg.Wait()

	suite.Equal(int64(workers*9), suite.account("alice").Own)
	suite.Equal(int64(workers*9), suite.account("bob").Own)
	suite.Equal(int64(2*workers), suite.account(domain.BankUsername).Own)
}

// --- Balances stay within int64 ---

func (suite *LedgerServiceTestSuite) TestOverflowingAmountsAreRejectedWithoutWrites() {
	suite.setupBankAndAlice()
	suite.register("bob", "q")
	suite.setBalances("alice", 10, 5)
	suite.setBalances("bob", math.MaxInt64-2, 0)
	before := suite.snapshot()

	_, err := suite.ledger.Deposit(suite.ctx, "alice", "p", math.MaxInt64)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.ledger.TakeLoan(suite.ctx, "alice", "p", math.MaxInt64)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.ledger.Transfer(suite.ctx, "alice", "p", "bob", 10)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.ledger.PayLoan(suite.ctx, "alice", "p", math.MinInt64)
	suite.ErrorIs(err, apperrors.ErrValidation)

	after := suite.snapshot()
	for name, acc := range before {
		suite.Equal(acc.Own, after[name].Own, name)
		suite.Equal(acc.Debt, after[name].Debt, name)
	}
}

func (suite *LedgerServiceTestSuite) TestDeposit_LargestAmountThatFits() {
	suite.setupBankAndAlice()

	status, err := suite.ledger.Deposit(suite.ctx, "alice", "p", math.MaxInt64)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusDeposited, status)
	suite.Equal(int64(math.MaxInt64-1), suite.account("alice").Own)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
