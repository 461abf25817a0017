package models

import "time"

// Account is the persisted shape of an account row.
// PasswordHash never leaves the store layer except for credential checks.
type Account struct {
	AccountID     string    `db:"account_id"`
	Username      string    `db:"username"`
	PasswordHash  string    `db:"password_hash"`
	Own           int64     `db:"own"`
	Debt          int64     `db:"debt"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
