package services

import (
	"context"

	"github.com/SscSPs/bank_api/internal/core/domain"
)

// LedgerSvc is the transaction engine. Every operation verifies the
// credentials first and reports business outcomes as a domain.Status.
// The error return is reserved for storage failures.
type LedgerSvc interface {
	Deposit(ctx context.Context, username, password string, amount int64) (domain.Status, error)
	Transfer(ctx context.Context, username, password, to string, amount int64) (domain.Status, error)
	TakeLoan(ctx context.Context, username, password string, amount int64) (domain.Status, error)
	PayLoan(ctx context.Context, username, password string, amount int64) (domain.Status, error)
}
