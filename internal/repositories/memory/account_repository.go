// Package memory provides an in-process account store. It backs the
// "memory" store driver and doubles as a fake for service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/bank_api/internal/apperrors"
	"github.com/SscSPs/bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_api/internal/core/ports/repositories"
)

// AccountRepository keeps accounts in a map guarded by a mutex.
type AccountRepository struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

var _ portsrepo.AccountRepositoryWithTx = (*AccountRepository)(nil)

// RunInTx holds the store lock for the whole callback. Writes made by a
// failing callback are rolled back from a snapshot.
func (r *AccountRepository) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]domain.Account, len(r.accounts))
	for k, v := range r.accounts {
		snapshot[k] = v
	}

	if err := fn(ctx, &lockedRepository{store: r}); err != nil {
		r.accounts = snapshot
		return err
	}
	return nil
}

func (r *AccountRepository) AccountExists(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exists(username), nil
}

func (r *AccountRepository) FindAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(username)
}

func (r *AccountRepository) ListUsernames(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.usernames(), nil
}

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(account)
}

func (r *AccountRepository) UpdateOwn(ctx context.Context, username string, own int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(username, func(a *domain.Account) { a.Own = own })
}

func (r *AccountRepository) UpdateDebt(ctx context.Context, username string, debt int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(username, func(a *domain.Account) { a.Debt = debt })
}

func (r *AccountRepository) DeleteAccount(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, username)
	return nil
}

// The helpers below assume r.mu is held.

func (r *AccountRepository) exists(username string) bool {
	_, ok := r.accounts[username]
	return ok
}

func (r *AccountRepository) find(username string) (*domain.Account, error) {
	account, ok := r.accounts[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (r *AccountRepository) usernames() []string {
	names := make([]string, 0, len(r.accounts))
	for name := range r.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *AccountRepository) save(account domain.Account) error {
	if r.exists(account.Username) {
		return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, account.Username)
	}
	r.accounts[account.Username] = account
	return nil
}

func (r *AccountRepository) update(username string, mutate func(*domain.Account)) error {
	account, ok := r.accounts[username]
	if !ok {
		return fmt.Errorf("account %s: %w", username, apperrors.ErrNotFound)
	}
	mutate(&account)
	account.LastUpdatedAt = time.Now()
	r.accounts[username] = account
	return nil
}

// lockedRepository is handed to RunInTx callbacks; the store lock is already held.
type lockedRepository struct {
	store *AccountRepository
}

func (l *lockedRepository) AccountExists(ctx context.Context, username string) (bool, error) {
	return l.store.exists(username), nil
}

func (l *lockedRepository) FindAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return l.store.find(username)
}

func (l *lockedRepository) ListUsernames(ctx context.Context) ([]string, error) {
	return l.store.usernames(), nil
}

func (l *lockedRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return l.store.save(account)
}

func (l *lockedRepository) UpdateOwn(ctx context.Context, username string, own int64) error {
	return l.store.update(username, func(a *domain.Account) { a.Own = own })
}

func (l *lockedRepository) UpdateDebt(ctx context.Context, username string, debt int64) error {
	return l.store.update(username, func(a *domain.Account) { a.Debt = debt })
}

func (l *lockedRepository) DeleteAccount(ctx context.Context, username string) error {
	delete(l.store.accounts, username)
	return nil
}
