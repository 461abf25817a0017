package dto

import "github.com/SscSPs/bank_api/internal/core/domain"

// Request fields are pointers so that an explicit zero ("" or 0) is accepted
// while a missing key fails the `required` binding.

// CredentialsRequest carries a username/password pair.
// Used by /register and /balance.
type CredentialsRequest struct {
	Username *string `json:"username" binding:"required" example:"alice"`
	Password *string `json:"password" binding:"required" example:"secret"`
}

// AmountRequest is the body of /deposit, /takeloan and /payloan.
type AmountRequest struct {
	Username *string `json:"username" binding:"required" example:"alice"`
	Password *string `json:"password" binding:"required" example:"secret"`
	Amount   *int64  `json:"amount" binding:"required" example:"100"`
}

// TransferRequest is the body of /transfer.
type TransferRequest struct {
	Username *string `json:"username" binding:"required" example:"alice"`
	Password *string `json:"password" binding:"required" example:"secret"`
	To       *string `json:"to" binding:"required" example:"bob"`
	Amount   *int64  `json:"amount" binding:"required" example:"50"`
}

// DeleteUserRequest is the body of /delete.
type DeleteUserRequest struct {
	Username *string `json:"username" binding:"required" example:"alice"`
}

// BalanceResponse mirrors the stored account without its id or password hash.
type BalanceResponse struct {
	Username string `json:"Username" example:"alice"`
	Own      int64  `json:"Own" example:"99"`
	Debt     int64  `json:"Debt" example:"0"`
}

// ToBalanceResponse converts a domain.Account to a BalanceResponse DTO
func ToBalanceResponse(account *domain.Account) BalanceResponse {
	return BalanceResponse{
		Username: account.Username,
		Own:      account.Own,
		Debt:     account.Debt,
	}
}

// ListUsersResponse is returned by /users.
type ListUsersResponse struct {
	Status int      `json:"status" example:"200"`
	Users  []string `json:"users"`
}

// ToListUsersResponse wraps the usernames; a nil slice is rendered as [].
func ToListUsersResponse(usernames []string) ListUsersResponse {
	if usernames == nil {
		usernames = []string{}
	}
	return ListUsersResponse{Status: 200, Users: usernames}
}
