package card

import "errors"

// Service errors
var (
	ErrInvalidCardType       = errors.New("invalid card type")
	ErrNotOwner              = errors.New("not owner of card")
	ErrNotIssued             = errors.New("card is not in ISSUED state")
	ErrNotBlockable          = errors.New("card cannot be blocked in its current state")
	ErrNotBlocked            = errors.New("card is not blocked")
	ErrNotCreditCard         = errors.New("operation requires a credit card")
	ErrNotDebitCard          = errors.New("operation requires a debit card")
	ErrCardNotUsable         = errors.New("card is not usable")
	ErrInternationalDisabled = errors.New("international usage is disabled")
	ErrCreditLimitExceeded   = errors.New("credit limit exceeded")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrAccountRequired       = errors.New("a funding account is required")
	ErrAccountNotOwned       = errors.New("not owner of funding account")
)
