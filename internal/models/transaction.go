package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeDeposit = "DEPOSIT"
	TransactionTypeIMPS    = "IMPS"
	TransactionTypeNEFT    = "NEFT"
	TransactionTypeCard    = "CARD"
)

// Transaction statuses. SUCCESS and FAILED are terminal.
const (
	TransactionStatusPending = "PENDING"
	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusFailed  = "FAILED"
)

// TransactionRecord is one entry in the ledger. The reference is unique and
// immutable once assigned; beneficiary fields are a snapshot captured at
// creation time and never follow later account changes.
type TransactionRecord struct {
	ID                       uint   `gorm:"primarykey"`
	Reference                string `gorm:"uniqueIndex;not null"`
	Type                     string `gorm:"not null"`
	Status                   string `gorm:"not null;default:'PENDING'"`
	FromAccountID            *uint  `gorm:"index"`
	ToAccountID              *uint  `gorm:"index"`
	BeneficiaryName          string
	BeneficiaryAccountNumber string
	BeneficiaryIFSC          string
	Amount                   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Narration                string
	CreatedAt                time.Time
	ProcessedAt              *time.Time
}

// FailedTransaction is an append-only audit row. It is written through a
// separate unit so it survives rollback of the operation it describes.
type FailedTransaction struct {
	ID         uint      `gorm:"primarykey"`
	Reference  string    `gorm:"index;not null"`
	Reason     string    `gorm:"not null"`
	OccurredAt time.Time `gorm:"autoCreateTime"`
}
