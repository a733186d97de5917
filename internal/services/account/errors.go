package account

import "errors"

// Service errors
var (
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrAccountTypeTaken    = errors.New("account of this type already exists")
	ErrNotOwner            = errors.New("not owner of account")
	ErrInvalidAmount       = errors.New("invalid deposit amount")
	ErrDestinationRequired = errors.New("either toAccountId or toAccountNumber must be provided")
)
