package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrBankAccountMissing indicates that the BANK account has not been registered yet.
// Deposits and transfers cannot run without it.
var ErrBankAccountMissing = errors.New("BANK account is not registered")
