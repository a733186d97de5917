package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types
const (
	AccountTypeSavings = "SAVINGS"
	AccountTypeCurrent = "CURRENT"
)

// Account statuses
const (
	AccountStatusActive = "ACTIVE"
	AccountStatusClosed = "CLOSED"
)

// Account holds a single mutable balance per (owner, type) pair.
// AccountNumber is assigned after the first insert, derived from the id.
type Account struct {
	ID            uint            `gorm:"primarykey"`
	AccountNumber string          `gorm:"uniqueIndex"`
	AccountType   string          `gorm:"not null"`
	Balance       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	OwnerID       uint            `gorm:"index;not null"`
	Status        string          `gorm:"not null;default:'ACTIVE'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
