package domain

// Status is the closed set of outcomes a ledger or account operation can report.
// Every value maps to a fixed (code, message) pair that clients depend on.
type Status int

const (
	StatusRegistered Status = iota + 1
	StatusDeposited
	StatusTransferred
	StatusLoanTaken
	StatusLoanPaid
	StatusUserDeleted
	StatusInvalidUsername
	StatusUsernameTaken
	StatusRecipientNotFound
	StatusIncorrectPassword
	StatusInvalidAmount
	StatusNoFunds
	StatusInsufficientFunds
	StatusNoLoanToPay
	StatusAmountExceedsLoan
)

// StatusOK is returned by the credential verifier when the pair matches.
// It is never reported to clients directly.
const StatusOK Status = 0

type statusEntry struct {
	code    int
	message string
}

var statusTable = map[Status]statusEntry{
	StatusRegistered:        {200, "Successful signed up"},
	StatusDeposited:         {200, "Amount added to account"},
	StatusTransferred:       {200, "Amount added to account"},
	StatusLoanTaken:         {200, "Loan added to your Account"},
	StatusLoanPaid:          {200, "Loan paid"},
	StatusUserDeleted:       {200, "User deleted"},
	StatusInvalidUsername:   {301, "Invalid Username"},
	StatusUsernameTaken:     {301, "Username already used"},
	StatusRecipientNotFound: {301, "Received account does not exist"},
	StatusIncorrectPassword: {302, "Incorrect Password"},
	StatusInvalidAmount:     {303, "The amount entered must be positive"},
	StatusNoFunds:           {304, "Please make a deposit or take a loan"},
	StatusInsufficientFunds: {305, "Not enough money for the requested amount"},
	StatusNoLoanToPay:       {306, "You don't have any loan to pay back"},
	StatusAmountExceedsLoan: {307, "The requested amount is greater than the loan"},
}

// Code returns the application status code carried in the response body.
func (s Status) Code() int {
	if e, ok := statusTable[s]; ok {
		return e.code
	}
	return 200
}

// Message returns the human readable message paired with the code.
func (s Status) Message() string {
	if e, ok := statusTable[s]; ok {
		return e.message
	}
	return "OK"
}

// Succeeded reports whether the status represents a successful operation.
func (s Status) Succeeded() bool {
	return s.Code() == 200
}

func (s Status) String() string {
	return s.Message()
}
