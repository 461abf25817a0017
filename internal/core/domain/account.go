package domain

import "time"

// BankUsername is the distinguished account that collects fees and is the
// conceptual counterparty for loans.
const BankUsername = "BANK"

// Account represents one ledger participant within the core domain.
type Account struct {
	AccountID     string    `json:"-"`        // Internal primary key (UUID), never exposed
	Username      string    `json:"Username"` // Unique, immutable after creation
	PasswordHash  string    `json:"-"`        // bcrypt hash, salt embedded
	Own           int64     `json:"Own"`      // Spendable balance
	Debt          int64     `json:"Debt"`     // Outstanding loan balance
	CreatedAt     time.Time `json:"-"`
	LastUpdatedAt time.Time `json:"-"`
}

// IsBank reports whether the account is the distinguished BANK account.
func (a Account) IsBank() bool {
	return a.Username == BankUsername
}
