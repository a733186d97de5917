package transfer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bankapp/internal/models"
	"bankapp/internal/repositories"
	"bankapp/internal/services/reference"

	"github.com/shopspring/decimal"
)

// Service orchestrates immediate (IMPS) and deferred-settlement (NEFT)
// transfers against the account store and the ledger.
type Service interface {
	IMPS(ctx context.Context, req Request, username string) (*Result, error)
	NEFT(ctx context.Context, req Request, username string) (*Result, error)
	GetByReference(ctx context.Context, ref string) (*models.TransactionRecord, error)
}

type service struct {
	repos  *repositories.Registry
	uow    repositories.UnitOfWork
	cache  repositories.AccountCache
	config Config
}

func NewService(repos *repositories.Registry, uow repositories.UnitOfWork, cache repositories.AccountCache, config Config) Service {
	if repos == nil {
		panic("repos is required")
	}
	if uow == nil {
		panic("unit of work is required")
	}
	if cache == nil {
		cache = repositories.NoopAccountCache{}
	}
	return &service{repos: repos, uow: uow, cache: cache, config: config}
}

// IMPS performs a synchronous transfer: the PENDING ledger record is
// persisted before any balance mutation, the source (and an internal
// destination) are debited/credited under row locks, and the record is
// finalized in the same unit. A failure after the PENDING write rolls the
// unit back and leaves a terminal FAILED record plus an audit row behind,
// written through a separate unit.
func (s *service) IMPS(ctx context.Context, req Request, username string) (*Result, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	source, err := s.resolveSource(req)
	if err != nil {
		return nil, err
	}
	if source.OwnerID != user.ID {
		return nil, ErrNotOwner
	}

	// Unlocked resolution only pins down ids and the internal/external
	// split; balances are re-read under lock inside the unit.
	destination := s.resolveDestination(req)

	if err := s.validateLimits(req.Amount, source.ID); err != nil {
		return nil, err
	}

	record := newRecord(models.TransactionTypeIMPS, req)
	if req.ToAccountNumber != "" {
		record.BeneficiaryAccountNumber = req.ToAccountNumber
	}

	var pendingWritten bool
	err = s.uow.Do(ctx, func(tx *repositories.Registry) error {
		var destID *uint
		if destination != nil {
			destID = &destination.ID
		}
		from, to, err := lockPair(tx.Accounts, source.ID, destID)
		if err != nil {
			return err
		}
		if from.OwnerID != user.ID {
			return ErrNotOwner
		}

		record.FromAccountID = &from.ID
		if to != nil {
			record.ToAccountID = &to.ID
		}
		if err := reference.Apply(tx.Ledger, record, reference.PrefixIMPS); err != nil {
			return err
		}
		pendingWritten = true

		if from.Balance.LessThan(req.Amount) {
			return ErrInsufficientBalance
		}

		from.Balance = from.Balance.Sub(req.Amount)
		if err := tx.Accounts.Save(from); err != nil {
			return err
		}
		if to != nil {
			to.Balance = to.Balance.Add(req.Amount)
			if err := tx.Accounts.Save(to); err != nil {
				return err
			}
		}

		now := time.Now()
		record.Status = models.TransactionStatusSuccess
		record.ProcessedAt = &now
		return tx.Ledger.Save(record)
	})
	if err != nil {
		if pendingWritten {
			s.recordFailure(record, err)
		}
		return nil, err
	}

	s.cache.InvalidateAccount(ctx, source.ID)
	if destination != nil {
		s.cache.InvalidateAccount(ctx, destination.ID)
	}

	return resultFrom(record), nil
}

// NEFT validates like IMPS but leaves the record PENDING and moves no
// money; settlement happens out of band.
func (s *service) NEFT(ctx context.Context, req Request, username string) (*Result, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	source, err := s.resolveSource(req)
	if err != nil {
		return nil, err
	}
	if source.OwnerID != user.ID {
		return nil, ErrNotOwner
	}

	if err := s.validateLimits(req.Amount, source.ID); err != nil {
		return nil, err
	}

	record := newRecord(models.TransactionTypeNEFT, req)
	record.FromAccountID = &source.ID

	err = s.uow.Do(ctx, func(tx *repositories.Registry) error {
		return reference.Apply(tx.Ledger, record, reference.PrefixNEFT)
	})
	if err != nil {
		return nil, err
	}

	return resultFrom(record), nil
}

func (s *service) GetByReference(ctx context.Context, ref string) (*models.TransactionRecord, error) {
	return s.repos.Ledger.GetByReference(ref)
}

func (s *service) resolveSource(req Request) (*models.Account, error) {
	switch {
	case req.FromAccountNumber != "":
		return s.repos.Accounts.GetByNumber(req.FromAccountNumber)
	case req.FromAccountID != nil:
		return s.repos.Accounts.GetByID(*req.FromAccountID)
	default:
		return nil, ErrSourceRequired
	}
}

// resolveDestination returns the internal destination account, or nil when
// the transfer is external (beneficiary snapshot only).
func (s *service) resolveDestination(req Request) *models.Account {
	if req.ToAccountNumber != "" {
		if acc, err := s.repos.Accounts.GetByNumber(req.ToAccountNumber); err == nil {
			return acc
		}
		return nil
	}
	if req.ToAccountID != nil {
		if acc, err := s.repos.Accounts.GetByID(*req.ToAccountID); err == nil {
			return acc
		}
	}
	return nil
}

func (s *service) validateLimits(amount decimal.Decimal, sourceID uint) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(s.config.SingleTransferLimit) {
		return ErrSingleLimitExceeded
	}
	total, err := s.repos.Ledger.GetDailyDebitTotal(sourceID, time.Now(),
		[]string{models.TransactionTypeIMPS, models.TransactionTypeNEFT})
	if err != nil {
		return fmt.Errorf("failed to check daily limit: %w", err)
	}
	if total.Add(amount).GreaterThan(s.config.DailyTransferLimit) {
		return ErrDailyLimitExceeded
	}
	return nil
}

// lockPair locks the source and an optional internal destination in
// ascending id order so two concurrent opposite-direction transfers cannot
// deadlock on each other.
func lockPair(accounts repositories.AccountRepository, fromID uint, toID *uint) (*models.Account, *models.Account, error) {
	if toID == nil {
		from, err := accounts.GetByIDForUpdate(fromID)
		return from, nil, err
	}
	if *toID == fromID {
		return nil, nil, ErrSameAccount
	}

	first, second := fromID, *toID
	if second < first {
		first, second = second, first
	}
	a, err := accounts.GetByIDForUpdate(first)
	if err != nil {
		return nil, nil, err
	}
	b, err := accounts.GetByIDForUpdate(second)
	if err != nil {
		return nil, nil, err
	}
	if a.ID == fromID {
		return a, b, nil
	}
	return b, a, nil
}

// recordFailure persists the terminal FAILED record and the audit row in a
// unit independent of the rolled-back operation, so the trail survives.
func (s *service) recordFailure(record *models.TransactionRecord, cause error) {
	now := time.Now()
	failed := &models.TransactionRecord{
		Reference:                record.Reference,
		Type:                     record.Type,
		Status:                   models.TransactionStatusFailed,
		FromAccountID:            record.FromAccountID,
		ToAccountID:              record.ToAccountID,
		BeneficiaryName:          record.BeneficiaryName,
		BeneficiaryAccountNumber: record.BeneficiaryAccountNumber,
		BeneficiaryIFSC:          record.BeneficiaryIFSC,
		Amount:                   record.Amount,
		Narration:                record.Narration,
		CreatedAt:                record.CreatedAt,
		ProcessedAt:              &now,
	}
	if err := s.repos.Ledger.Save(failed); err != nil {
		log.Printf("failed to record FAILED transaction %s: %v", record.Reference, err)
	}
	if err := s.repos.Ledger.SaveFailed(&models.FailedTransaction{
		Reference: record.Reference,
		Reason:    reasonFor(cause),
	}); err != nil {
		log.Printf("failed to record audit row for %s: %v", record.Reference, err)
	}
}

func reasonFor(err error) string {
	if errors.Is(err, ErrInsufficientBalance) {
		return "Insufficient balance"
	}
	return err.Error()
}

func newRecord(txType string, req Request) *models.TransactionRecord {
	return &models.TransactionRecord{
		Type:                     txType,
		Status:                   models.TransactionStatusPending,
		BeneficiaryName:          req.BeneficiaryName,
		BeneficiaryAccountNumber: req.BeneficiaryAccountNumber,
		BeneficiaryIFSC:          req.BeneficiaryIFSC,
		Amount:                   req.Amount,
		Narration:                req.Narration,
		CreatedAt:                time.Now(),
	}
}

func resultFrom(record *models.TransactionRecord) *Result {
	return &Result{
		Reference:   record.Reference,
		Status:      record.Status,
		Amount:      record.Amount,
		CreatedAt:   record.CreatedAt,
		ProcessedAt: record.ProcessedAt,
	}
}
