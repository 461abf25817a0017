// Package sqlite stores accounts in a SQLite database through database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bank_api/internal/apperrors"
	"github.com/SscSPs/bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_api/internal/core/ports/repositories"
	"github.com/SscSPs/bank_api/internal/models"
	"github.com/SscSPs/bank_api/internal/utils/mapping"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// execer is the subset of database/sql shared by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLiteAccountRepository struct {
	db   *sql.DB
	exec execer
}

// NewAccountRepository creates an account repository on an opened SQLite
// database whose schema has been migrated.
func NewAccountRepository(db *sql.DB) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{db: db, exec: db}
}

var _ portsrepo.AccountRepositoryWithTx = (*SQLiteAccountRepository)(nil)

// NewRepositoryProvider wires the SQLite account store into a provider.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{AccountRepo: NewAccountRepository(db)}
}

// RunInTx runs fn inside one transaction. With the immediate lock mode the
// write lock is taken at BEGIN, which serialises ledger operations.
func (r *SQLiteAccountRepository) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op once committed

	if err := fn(ctx, &SQLiteAccountRepository{db: r.db, exec: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *SQLiteAccountRepository) AccountExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.exec.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = ?);`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account %s: %w", username, err)
	}
	return exists, nil
}

func (r *SQLiteAccountRepository) FindAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		SELECT account_id, username, password_hash, own, debt, created_at, last_updated_at
		FROM accounts
		WHERE username = ?;
	`
	var modelAcc models.Account
	err := r.exec.QueryRowContext(ctx, query, username).Scan(
		&modelAcc.AccountID,
		&modelAcc.Username,
		&modelAcc.PasswordHash,
		&modelAcc.Own,
		&modelAcc.Debt,
		&modelAcc.CreatedAt,
		&modelAcc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", username, err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

func (r *SQLiteAccountRepository) ListUsernames(ctx context.Context) ([]string, error) {
	rows, err := r.exec.QueryContext(ctx, `SELECT username FROM accounts ORDER BY username;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query usernames: %w", err)
	}
	defer rows.Close()

	usernames := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan username row: %w", err)
		}
		usernames = append(usernames, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating username rows: %w", err)
	}
	return usernames, nil
}

func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, username, password_hash, own, debt, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.exec.ExecContext(ctx, query,
		modelAcc.AccountID,
		modelAcc.Username,
		modelAcc.PasswordHash,
		modelAcc.Own,
		modelAcc.Debt,
		modelAcc.CreatedAt.UTC(),
		modelAcc.LastUpdatedAt.UTC(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, modelAcc.Username)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.Username, err)
	}
	return nil
}

func (r *SQLiteAccountRepository) UpdateOwn(ctx context.Context, username string, own int64) error {
	return r.updateColumn(ctx, `UPDATE accounts SET own = ?, last_updated_at = ? WHERE username = ?;`, username, own)
}

func (r *SQLiteAccountRepository) UpdateDebt(ctx context.Context, username string, debt int64) error {
	return r.updateColumn(ctx, `UPDATE accounts SET debt = ?, last_updated_at = ? WHERE username = ?;`, username, debt)
}

func (r *SQLiteAccountRepository) updateColumn(ctx context.Context, query, username string, value int64) error {
	res, err := r.exec.ExecContext(ctx, query, value, time.Now().UTC(), username)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", username, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w", username, err)
	}
	if affected == 0 {
		return fmt.Errorf("account %s: %w", username, apperrors.ErrNotFound)
	}
	return nil
}

func (r *SQLiteAccountRepository) DeleteAccount(ctx context.Context, username string) error {
	if _, err := r.exec.ExecContext(ctx, `DELETE FROM accounts WHERE username = ?;`, username); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", username, err)
	}
	return nil
}
