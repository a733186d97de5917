package deposit

import "errors"

// Service errors
var (
	ErrInvalidPrincipal   = errors.New("invalid principal amount")
	ErrInvalidInstallment = errors.New("invalid monthly installment")
	ErrInvalidRate        = errors.New("invalid interest rate")
	ErrInvalidTenure      = errors.New("invalid tenure")
	ErrNotOwner           = errors.New("not owner of deposit")
	ErrNotActive          = errors.New("Only active FD can be cancelled")
	ErrRecurringNotActive = errors.New("Only active RD can be cancelled")
	ErrAccountNotOwned    = errors.New("not owner of linked account")
)
