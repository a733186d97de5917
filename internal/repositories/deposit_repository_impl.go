package repositories

import (
	"errors"
	"fmt"
	"time"

	"bankapp/internal/models"

	"gorm.io/gorm"
)

type depositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) CreateFixed(fd *models.FixedDeposit) error {
	if err := r.db.Create(fd).Error; err != nil {
		return fmt.Errorf("failed to create fixed deposit: %w", err)
	}
	return nil
}

func (r *depositRepository) SaveFixed(fd *models.FixedDeposit) error {
	if err := r.db.Save(fd).Error; err != nil {
		return fmt.Errorf("failed to save fixed deposit: %w", err)
	}
	return nil
}

func (r *depositRepository) GetFixedByID(id uint) (*models.FixedDeposit, error) {
	var fd models.FixedDeposit
	if err := r.db.First(&fd, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepositNotFound
		}
		return nil, fmt.Errorf("failed to get fixed deposit: %w", err)
	}
	return &fd, nil
}

func (r *depositRepository) GetFixedByOwner(ownerID uint) ([]*models.FixedDeposit, error) {
	var fds []*models.FixedDeposit
	if err := r.db.Where("owner_id = ?", ownerID).Order("id").Find(&fds).Error; err != nil {
		return nil, fmt.Errorf("failed to list fixed deposits: %w", err)
	}
	return fds, nil
}

func (r *depositRepository) GetFixedMaturing(t time.Time, status string) ([]*models.FixedDeposit, error) {
	var fds []*models.FixedDeposit
	err := r.db.Where("maturity_date <= ? AND status = ?", dateOnly(t), status).
		Order("id").Find(&fds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list maturing fixed deposits: %w", err)
	}
	return fds, nil
}

func (r *depositRepository) CreateRecurring(rd *models.RecurringDeposit) error {
	if err := r.db.Create(rd).Error; err != nil {
		return fmt.Errorf("failed to create recurring deposit: %w", err)
	}
	return nil
}

func (r *depositRepository) SaveRecurring(rd *models.RecurringDeposit) error {
	if err := r.db.Save(rd).Error; err != nil {
		return fmt.Errorf("failed to save recurring deposit: %w", err)
	}
	return nil
}

func (r *depositRepository) GetRecurringByID(id uint) (*models.RecurringDeposit, error) {
	var rd models.RecurringDeposit
	if err := r.db.First(&rd, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepositNotFound
		}
		return nil, fmt.Errorf("failed to get recurring deposit: %w", err)
	}
	return &rd, nil
}

func (r *depositRepository) GetRecurringByOwner(ownerID uint) ([]*models.RecurringDeposit, error) {
	var rds []*models.RecurringDeposit
	if err := r.db.Where("owner_id = ?", ownerID).Order("id").Find(&rds).Error; err != nil {
		return nil, fmt.Errorf("failed to list recurring deposits: %w", err)
	}
	return rds, nil
}

func (r *depositRepository) GetRecurringMaturing(t time.Time, status string) ([]*models.RecurringDeposit, error) {
	var rds []*models.RecurringDeposit
	err := r.db.Where("maturity_date <= ? AND status = ?", dateOnly(t), status).
		Order("id").Find(&rds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list maturing recurring deposits: %w", err)
	}
	return rds, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
