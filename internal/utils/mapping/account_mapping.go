package mapping

import (
	"github.com/SscSPs/bank_api/internal/core/domain"
	"github.com/SscSPs/bank_api/internal/models"
)

// ToModelAccount converts a domain.Account to models.Account for storage.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		Username:      d.Username,
		PasswordHash:  d.PasswordHash,
		Own:           d.Own,
		Debt:          d.Debt,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainAccount converts a stored models.Account to domain.Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		Username:      m.Username,
		PasswordHash:  m.PasswordHash,
		Own:           m.Own,
		Debt:          m.Debt,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
