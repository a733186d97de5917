package repositories

import (
	"errors"
	"fmt"
	"time"

	"bankapp/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Save(record *models.TransactionRecord) error {
	if err := r.db.Save(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to save transaction record: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetByReference(reference string) (*models.TransactionRecord, error) {
	var record models.TransactionRecord
	if err := r.db.Where("reference = ?", reference).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction record: %w", err)
	}
	return &record, nil
}

func (r *ledgerRepository) GetDailyDebitTotal(accountID uint, t time.Time, types []string) (decimal.Decimal, error) {
	day := t.UTC()
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.Add(24 * time.Hour)

	var total decimal.Decimal
	err := r.db.Model(&models.TransactionRecord{}).
		Where("from_account_id = ? AND type IN ? AND status IN ? AND created_at >= ? AND created_at < ?",
			accountID, types,
			[]string{models.TransactionStatusPending, models.TransactionStatusSuccess},
			startOfDay, endOfDay).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get daily debit total: %w", err)
	}
	return total, nil
}

func (r *ledgerRepository) SaveFailed(failed *models.FailedTransaction) error {
	if err := r.db.Create(failed).Error; err != nil {
		return fmt.Errorf("failed to save failed transaction: %w", err)
	}
	return nil
}
