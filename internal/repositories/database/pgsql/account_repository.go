package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bank_api/internal/apperrors"
	"github.com/SscSPs/bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_api/internal/core/ports/repositories"
	"github.com/SscSPs/bank_api/internal/models"
	"github.com/SscSPs/bank_api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
	db        querier
	forUpdate bool // set on repositories bound to a transaction
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}, db: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// RunInTx runs fn inside one transaction. Accounts read through the
// transaction-bound repository are locked with SELECT ... FOR UPDATE.
func (r *PgxAccountRepository) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	txRepo := &PgxAccountRepository{BaseRepository: r.BaseRepository, db: tx, forUpdate: true}
	if err := fn(ctx, txRepo); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) AccountExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1);`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account %s: %w", username, err)
	}
	return exists, nil
}

func (r *PgxAccountRepository) FindAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		SELECT account_id, username, password_hash, own, debt, created_at, last_updated_at
		FROM accounts
		WHERE username = $1`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}

	var modelAcc models.Account
	err := r.db.QueryRow(ctx, query, username).Scan(
		&modelAcc.AccountID,
		&modelAcc.Username,
		&modelAcc.PasswordHash,
		&modelAcc.Own,
		&modelAcc.Debt,
		&modelAcc.CreatedAt,
		&modelAcc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", username, err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

func (r *PgxAccountRepository) ListUsernames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT username FROM accounts ORDER BY username COLLATE "C";`)
	if err != nil {
		return nil, fmt.Errorf("failed to query usernames: %w", err)
	}
	usernames, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan usernames: %w", err)
	}
	return usernames, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, username, password_hash, own, debt, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Username,
		modelAcc.PasswordHash,
		modelAcc.Own,
		modelAcc.Debt,
		modelAcc.CreatedAt,
		modelAcc.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, modelAcc.Username)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.Username, err)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateOwn(ctx context.Context, username string, own int64) error {
	return r.updateColumn(ctx, `UPDATE accounts SET own = $1, last_updated_at = $2 WHERE username = $3;`, username, own)
}

func (r *PgxAccountRepository) UpdateDebt(ctx context.Context, username string, debt int64) error {
	return r.updateColumn(ctx, `UPDATE accounts SET debt = $1, last_updated_at = $2 WHERE username = $3;`, username, debt)
}

func (r *PgxAccountRepository) updateColumn(ctx context.Context, query, username string, value int64) error {
	cmdTag, err := r.db.Exec(ctx, query, value, time.Now(), username)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", username, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", username, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, username string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE username = $1;`, username); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", username, err)
	}
	return nil
}
