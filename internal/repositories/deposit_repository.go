package repositories

import (
	"errors"
	"time"

	"bankapp/internal/models"
)

var ErrDepositNotFound = errors.New("deposit not found")

// DepositRepository defines the interface for fixed and recurring deposit
// database operations.
type DepositRepository interface {
	CreateFixed(fd *models.FixedDeposit) error
	SaveFixed(fd *models.FixedDeposit) error
	GetFixedByID(id uint) (*models.FixedDeposit, error)
	GetFixedByOwner(ownerID uint) ([]*models.FixedDeposit, error)

	// GetFixedMaturing returns deposits in the given status whose maturity
	// date falls on or before the calendar day containing t, so a sweep
	// catches up on days it missed.
	GetFixedMaturing(t time.Time, status string) ([]*models.FixedDeposit, error)

	CreateRecurring(rd *models.RecurringDeposit) error
	SaveRecurring(rd *models.RecurringDeposit) error
	GetRecurringByID(id uint) (*models.RecurringDeposit, error)
	GetRecurringByOwner(ownerID uint) ([]*models.RecurringDeposit, error)
	GetRecurringMaturing(t time.Time, status string) ([]*models.RecurringDeposit, error)
}
