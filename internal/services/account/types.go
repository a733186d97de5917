package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenAccountRequest opens one account per (owner, type).
type OpenAccountRequest struct {
	AccountType    string          `json:"account_type"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

// DepositRequest credits an own account from an out-of-band source (cash,
// cheque). The destination is resolved by account number when present.
type DepositRequest struct {
	ToAccountID     *uint           `json:"to_account_id"`
	ToAccountNumber string          `json:"to_account_number"`
	Amount          decimal.Decimal `json:"amount"`
	Source          string          `json:"source"`
	Narration       string          `json:"narration"`
}

// DepositResult reports the credited balance after the record is terminal.
type DepositResult struct {
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
	ToAccountID uint            `json:"to_account_id"`
	Amount      decimal.Decimal `json:"amount"`
	NewBalance  decimal.Decimal `json:"new_balance"`
	Narration   string          `json:"narration"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}
