package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card types
const (
	CardTypeDebit  = "DEBIT"
	CardTypeCredit = "CREDIT"
)

// Card statuses. CLOSED and REJECTED are terminal and reserved for an
// administrator flow that does not exist yet.
const (
	CardStatusApplied     = "APPLIED"
	CardStatusIssued      = "ISSUED"
	CardStatusActive      = "ACTIVE"
	CardStatusTempBlocked = "TEMP_BLOCKED"
	CardStatusClosed      = "CLOSED"
	CardStatusRejected    = "REJECTED"
)

// Card carries masked PAN material only; the CVV is never stored in clear.
// CreditLimit and OutstandingAmount are meaningful for CREDIT cards only.
type Card struct {
	ID                        uint   `gorm:"primarykey"`
	OwnerID                   uint   `gorm:"index;not null"`
	CardType                  string `gorm:"not null"`
	Status                    string `gorm:"not null;default:'APPLIED'"`
	CardNumber                string
	Last4                     string
	CVVMasked                 string
	Expiry                    string
	InternationalUsageEnabled bool            `gorm:"default:false"`
	CreditLimit               decimal.Decimal `gorm:"type:numeric(18,2);default:0"`
	OutstandingAmount         decimal.Decimal `gorm:"type:numeric(18,2);default:0"`
	AppliedAt                 time.Time       `gorm:"autoCreateTime"`
	IssuedAt                  *time.Time
	UpdatedAt                 time.Time
}
