// Package reference generates globally-unique, human-readable transaction
// references of the form PREFIX-YYYYMMDD-XXXXXXXX.
package reference

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bankapp/internal/models"
	"bankapp/internal/repositories"

	"github.com/google/uuid"
)

// Known prefixes persisted in the ledger.
const (
	PrefixDeposit    = "DEPOSIT"
	PrefixIMPS       = "IMPS"
	PrefixNEFT       = "NEFT"
	PrefixCard       = "CARD"
	PrefixFDMaturity = "FDMAT"
	PrefixRDMaturity = "RDMAT"
)

const maxAttempts = 3

// New returns a fresh reference for the given prefix.
func New(prefix string) string {
	shortID := strings.ToUpper(uuid.NewString()[:8])
	date := time.Now().Format("20060102")
	return fmt.Sprintf("%s-%s-%s", prefix, date, shortID)
}

// Apply assigns a fresh reference to the record and saves it through the
// ledger. On the practically-unreachable collision it retries with a new
// reference instead of reusing one.
func Apply(ledger repositories.LedgerRepository, record *models.TransactionRecord, prefix string) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		record.Reference = New(prefix)
		err = ledger.Save(record)
		if !errors.Is(err, repositories.ErrDuplicateReference) {
			return err
		}
	}
	return err
}
