package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the transfer ceilings. Both limits are injected at
// construction; they are not process-wide mutable state.
type Config struct {
	SingleTransferLimit decimal.Decimal
	DailyTransferLimit  decimal.Decimal
}

// Request describes a transfer. The source is resolved by account number
// when present, falling back to id. A destination that does not resolve to
// an internal account is treated as external and only the beneficiary
// snapshot is kept.
type Request struct {
	FromAccountID            *uint           `json:"from_account_id"`
	FromAccountNumber        string          `json:"from_account_number"`
	ToAccountID              *uint           `json:"to_account_id"`
	ToAccountNumber          string          `json:"to_account_number"`
	BeneficiaryName          string          `json:"beneficiary_name"`
	BeneficiaryAccountNumber string          `json:"beneficiary_account_number"`
	BeneficiaryIFSC          string          `json:"beneficiary_ifsc"`
	Amount                   decimal.Decimal `json:"amount"`
	Narration                string          `json:"narration"`
}

// Result is returned to the caller once the transfer record is terminal
// (IMPS) or accepted for settlement (NEFT, still PENDING).
type Result struct {
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}
