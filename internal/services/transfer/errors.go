package transfer

import "errors"

// Service errors
var (
	ErrSourceRequired      = errors.New("either fromAccountId or fromAccountNumber must be provided")
	ErrNotOwner            = errors.New("not owner of source account")
	ErrSameAccount         = errors.New("cannot transfer to the same account")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrSingleLimitExceeded = errors.New("exceeds single transfer limit")
	ErrDailyLimitExceeded  = errors.New("exceeds daily transfer limit")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
