package repositories

import (
	"errors"
	"time"

	"bankapp/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateReference  = errors.New("duplicate transaction reference")
)

// LedgerRepository defines the interface for the transaction ledger and its
// failure audit sink. Save both inserts new records and finalizes existing
// ones; a terminal record is never modified again by callers.
type LedgerRepository interface {
	Save(record *models.TransactionRecord) error
	GetByReference(reference string) (*models.TransactionRecord, error)

	// GetDailyDebitTotal sums PENDING and SUCCESS debits of the given types
	// charged to the account on the calendar day containing t.
	GetDailyDebitTotal(accountID uint, t time.Time, types []string) (decimal.Decimal, error)

	// SaveFailed appends an audit row. Callers that need the row to survive
	// a rollback must invoke this through a repository bound to the root
	// database handle, not the transactional one.
	SaveFailed(failed *models.FailedTransaction) error
}
