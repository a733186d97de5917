package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit statuses. Transitions are one-way except ACTIVE→CANCELLED;
// RENEWED supersedes MATURED for auto-renewed fixed deposits.
const (
	DepositStatusActive    = "ACTIVE"
	DepositStatusMatured   = "MATURED"
	DepositStatusCancelled = "CANCELLED"
	DepositStatusRenewed   = "RENEWED"
)

// FixedDeposit accrues monthly-compounded interest on a one-time principal.
// MaturityDate and MaturityAmount are fixed at creation and drive the
// daily maturity sweep.
type FixedDeposit struct {
	ID                 uint            `gorm:"primarykey"`
	OwnerID            uint            `gorm:"index;not null"`
	Principal          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AnnualInterestRate float64         `gorm:"not null"`
	TenureMonths       int             `gorm:"not null"`
	StartDate          time.Time       `gorm:"type:date"`
	MaturityDate       time.Time       `gorm:"type:date;index"`
	MaturityAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status             string          `gorm:"not null;default:'ACTIVE';index"`
	AutoRenew          bool            `gorm:"default:false"`
	LinkedAccountID    *uint
	CreatedAt          time.Time
	MaturedAt          *time.Time
}

// RecurringDeposit accrues interest on a fixed monthly installment.
type RecurringDeposit struct {
	ID                 uint            `gorm:"primarykey"`
	OwnerID            uint            `gorm:"index;not null"`
	MonthlyInstallment decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AnnualInterestRate float64         `gorm:"not null"`
	TenureMonths       int             `gorm:"not null"`
	StartDate          time.Time       `gorm:"type:date"`
	MaturityDate       time.Time       `gorm:"type:date;index"`
	MaturityAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status             string          `gorm:"not null;default:'ACTIVE';index"`
	LinkedAccountID    *uint
	CreatedAt          time.Time
	MaturedAt          *time.Time
}
