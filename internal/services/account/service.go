package account

import (
	"context"
	"fmt"
	"log"
	"time"

	"bankapp/internal/models"
	"bankapp/internal/repositories"
	"bankapp/internal/services/reference"

	"github.com/shopspring/decimal"
)

// Service manages account opening, cash deposits, and informational reads.
type Service interface {
	OpenAccount(ctx context.Context, req OpenAccountRequest, username string) (*models.Account, error)
	Deposit(ctx context.Context, req DepositRequest, username string) (*DepositResult, error)
	GetMyAccounts(ctx context.Context, username string) ([]*models.Account, error)
	GetAccountDetails(ctx context.Context, id uint, username string) (*models.Account, error)
}

type service struct {
	repos *repositories.Registry
	uow   repositories.UnitOfWork
	cache repositories.AccountCache
}

func NewService(repos *repositories.Registry, uow repositories.UnitOfWork, cache repositories.AccountCache) Service {
	if repos == nil {
		panic("repos is required")
	}
	if uow == nil {
		panic("unit of work is required")
	}
	if cache == nil {
		cache = repositories.NoopAccountCache{}
	}
	return &service{repos: repos, uow: uow, cache: cache}
}

// OpenAccount inserts the row first and derives the account number from the
// assigned id, so numbers are dense and collision-free by construction.
func (s *service) OpenAccount(ctx context.Context, req OpenAccountRequest, username string) (*models.Account, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if req.AccountType != models.AccountTypeSavings && req.AccountType != models.AccountTypeCurrent {
		return nil, ErrInvalidAccountType
	}
	if req.InitialDeposit.IsNegative() {
		return nil, ErrInvalidAmount
	}

	account := &models.Account{
		OwnerID:     user.ID,
		AccountType: req.AccountType,
		Balance:     req.InitialDeposit,
		Status:      models.AccountStatusActive,
	}

	err = s.uow.Do(ctx, func(tx *repositories.Registry) error {
		exists, err := tx.Accounts.ExistsByOwnerAndType(user.ID, req.AccountType)
		if err != nil {
			return err
		}
		if exists {
			return ErrAccountTypeTaken
		}
		if err := tx.Accounts.Create(account); err != nil {
			return err
		}
		account.AccountNumber = accountNumber(account.AccountType, account.ID)
		return tx.Accounts.Save(account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Deposit credits an own account under a row lock. The DEPOSIT record is
// written PENDING before the credit; a failure after that point leaves a
// FAILED record and an audit row behind through a separate unit.
func (s *service) Deposit(ctx context.Context, req DepositRequest, username string) (*DepositResult, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if req.ToAccountNumber == "" && req.ToAccountID == nil {
		return nil, ErrDestinationRequired
	}

	source := req.Source
	if source == "" {
		source = "CASH"
	}
	narration := req.Narration
	if narration == "" {
		narration = "Deposit: " + source
	}
	record := &models.TransactionRecord{
		Type:            models.TransactionTypeDeposit,
		Status:          models.TransactionStatusPending,
		BeneficiaryName: source,
		Amount:          req.Amount,
		Narration:       narration,
		CreatedAt:       time.Now(),
	}

	var (
		pendingWritten bool
		newBalance     decimal.Decimal
		accountID      uint
	)
	err = s.uow.Do(ctx, func(tx *repositories.Registry) error {
		var account *models.Account
		var err error
		if req.ToAccountNumber != "" {
			account, err = tx.Accounts.GetByNumberForUpdate(req.ToAccountNumber)
		} else {
			account, err = tx.Accounts.GetByIDForUpdate(*req.ToAccountID)
		}
		if err != nil {
			return err
		}
		if account.OwnerID != user.ID {
			return ErrNotOwner
		}

		record.ToAccountID = &account.ID
		if err := reference.Apply(tx.Ledger, record, reference.PrefixDeposit); err != nil {
			return err
		}
		pendingWritten = true

		account.Balance = account.Balance.Add(req.Amount)
		if err := tx.Accounts.Save(account); err != nil {
			return err
		}

		now := time.Now()
		record.Status = models.TransactionStatusSuccess
		record.ProcessedAt = &now
		newBalance = account.Balance
		accountID = account.ID
		return tx.Ledger.Save(record)
	})
	if err != nil {
		if pendingWritten {
			s.recordFailure(record, err)
		}
		return nil, err
	}

	s.cache.InvalidateAccount(ctx, accountID)

	return &DepositResult{
		Reference:   record.Reference,
		Status:      record.Status,
		ToAccountID: accountID,
		Amount:      record.Amount,
		NewBalance:  newBalance,
		Narration:   record.Narration,
		ProcessedAt: record.ProcessedAt,
	}, nil
}

func (s *service) GetMyAccounts(ctx context.Context, username string) ([]*models.Account, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return s.repos.Accounts.GetByOwner(user.ID)
}

func (s *service) GetAccountDetails(ctx context.Context, id uint, username string) (*models.Account, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	if account, err := s.cache.GetAccount(ctx, id); err == nil {
		if account.OwnerID != user.ID {
			return nil, ErrNotOwner
		}
		return account, nil
	}

	account, err := s.repos.Accounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account.OwnerID != user.ID {
		return nil, ErrNotOwner
	}
	s.cache.SetAccount(ctx, account)
	return account, nil
}

func (s *service) recordFailure(record *models.TransactionRecord, cause error) {
	now := time.Now()
	failed := &models.TransactionRecord{
		Reference:       record.Reference,
		Type:            record.Type,
		Status:          models.TransactionStatusFailed,
		ToAccountID:     record.ToAccountID,
		BeneficiaryName: record.BeneficiaryName,
		Amount:          record.Amount,
		Narration:       record.Narration,
		CreatedAt:       record.CreatedAt,
		ProcessedAt:     &now,
	}
	if err := s.repos.Ledger.Save(failed); err != nil {
		log.Printf("failed to record FAILED deposit %s: %v", record.Reference, err)
	}
	if err := s.repos.Ledger.SaveFailed(&models.FailedTransaction{
		Reference: record.Reference,
		Reason:    fmt.Sprintf("Deposit failed: %v", cause),
	}); err != nil {
		log.Printf("failed to record audit row for %s: %v", record.Reference, err)
	}
}

func accountNumber(accountType string, id uint) string {
	prefix := "SB"
	if accountType == models.AccountTypeCurrent {
		prefix = "CA"
	}
	datePart := time.Now().Format("20060102")
	return fmt.Sprintf("%s-%s-%06d", prefix, datePart, id)
}
