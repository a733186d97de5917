package card

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyRequest requests a new card. Credit cards carry the granted limit;
// debit cards ignore it.
type ApplyRequest struct {
	CardType    string          `json:"card_type"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// SpendRequest debits a card purchase against a funding account.
type SpendRequest struct {
	CardID        uint            `json:"card_id"`
	FromAccountID uint            `json:"from_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Merchant      string          `json:"merchant"`
	International bool            `json:"international"`
}

// PayBillRequest pays down credit card outstanding from an account.
type PayBillRequest struct {
	CardID        uint            `json:"card_id"`
	FromAccountID uint            `json:"from_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// SpendResult reports the terminal state of a card spend and the balance
// remaining on the funding account.
type SpendResult struct {
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Merchant    string          `json:"merchant"`
	NewBalance  decimal.Decimal `json:"new_balance"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}

// PayBillResult reports the bill payment and the remaining outstanding.
type PayBillResult struct {
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}
