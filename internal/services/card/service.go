package card

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"bankapp/internal/models"
	"bankapp/internal/repositories"
	"bankapp/internal/services/reference"

	"github.com/shopspring/decimal"
)

// Service manages the card lifecycle and card-driven money movement.
type Service interface {
	ApplyCard(ctx context.Context, req ApplyRequest, username string) (*models.Card, error)
	ActivateCard(ctx context.Context, cardID uint, username string) (*models.Card, error)
	BlockCard(ctx context.Context, cardID uint, username string) (*models.Card, error)
	UnblockCard(ctx context.Context, cardID uint, username string) (*models.Card, error)
	SetInternationalUsage(ctx context.Context, cardID uint, enabled bool, username string) (*models.Card, error)
	AddCharge(ctx context.Context, cardID uint, amount decimal.Decimal, username string) (*models.Card, error)
	PayCardBill(ctx context.Context, req PayBillRequest, username string) (*PayBillResult, error)
	DebitCardSpend(ctx context.Context, req SpendRequest, username string) (*SpendResult, error)
	ListMyCards(ctx context.Context, username string) ([]*models.Card, error)
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

// ApplyCard creates and immediately issues the card. Issuance is synchronous
// because there is no underwriting step between application and issue.
func (s *service) ApplyCard(ctx context.Context, req ApplyRequest, username string) (*models.Card, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if req.CardType != models.CardTypeDebit && req.CardType != models.CardTypeCredit {
		return nil, ErrInvalidCardType
	}
	if req.CardType == models.CardTypeCredit && req.CreditLimit.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	pan := generatePAN(req.CardType)
	now := time.Now()
	card := &models.Card{
		OwnerID:           user.ID,
		CardType:          req.CardType,
		Status:            models.CardStatusIssued,
		CardNumber:        pan,
		Last4:             pan[len(pan)-4:],
		CVVMasked:         "XXX",
		Expiry:            now.AddDate(4, 0, 0).Format("01/06"),
		OutstandingAmount: decimal.Zero,
		IssuedAt:          &now,
	}
	if req.CardType == models.CardTypeCredit {
		card.CreditLimit = req.CreditLimit
	}

	if err := s.repos.Cards.Create(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) ActivateCard(ctx context.Context, cardID uint, username string) (*models.Card, error) {
	return s.transition(cardID, username, func(card *models.Card) error {
		if card.Status != models.CardStatusIssued {
			return ErrNotIssued
		}
		card.Status = models.CardStatusActive
		return nil
	})
}

// BlockCard moves an ISSUED or ACTIVE card to TEMP_BLOCKED. Closed, rejected
// or already-blocked cards stay where they are.
func (s *service) BlockCard(ctx context.Context, cardID uint, username string) (*models.Card, error) {
	return s.transition(cardID, username, func(card *models.Card) error {
		if card.Status != models.CardStatusActive && card.Status != models.CardStatusIssued {
			return ErrNotBlockable
		}
		card.Status = models.CardStatusTempBlocked
		return nil
	})
}

// UnblockCard reactivates a TEMP_BLOCKED card. Unblocking is the only exit
// from TEMP_BLOCKED and always lands on ACTIVE.
func (s *service) UnblockCard(ctx context.Context, cardID uint, username string) (*models.Card, error) {
	return s.transition(cardID, username, func(card *models.Card) error {
		if card.Status != models.CardStatusTempBlocked {
			return ErrNotBlocked
		}
		card.Status = models.CardStatusActive
		return nil
	})
}

func (s *service) SetInternationalUsage(ctx context.Context, cardID uint, enabled bool, username string) (*models.Card, error) {
	return s.transition(cardID, username, func(card *models.Card) error {
		card.InternationalUsageEnabled = enabled
		return nil
	})
}

// AddCharge books a merchant charge against a credit card. The charge that
// brings the outstanding exactly to the limit is allowed; one past it is
// rejected without touching the card.
func (s *service) AddCharge(ctx context.Context, cardID uint, amount decimal.Decimal, username string) (*models.Card, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	return s.transition(cardID, username, func(card *models.Card) error {
		if card.CardType != models.CardTypeCredit {
			return ErrNotCreditCard
		}
		newOutstanding := card.OutstandingAmount.Add(amount)
		if newOutstanding.GreaterThan(card.CreditLimit) {
			return ErrCreditLimitExceeded
		}
		card.OutstandingAmount = newOutstanding
		return nil
	})
}

// PayCardBill debits the funding account under a row lock and reduces the
// card outstanding, floored at zero so overpayment never leaves a negative
// balance on the card. The movement is recorded in the ledger as a CARD
// transaction.
func (s *service) PayCardBill(ctx context.Context, req PayBillRequest, username string) (*PayBillResult, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if req.FromAccountID == 0 {
		return nil, ErrAccountRequired
	}

	card, err := s.repos.Cards.GetByID(req.CardID)
	if err != nil {
		return nil, err
	}
	if card.OwnerID != user.ID {
		return nil, ErrNotOwner
	}
	if card.CardType != models.CardTypeCredit {
		return nil, ErrNotCreditCard
	}

	record := &models.TransactionRecord{
		Type:            models.TransactionTypeCard,
		Status:          models.TransactionStatusPending,
		BeneficiaryName: "Card bill payment",
		Amount:          req.Amount,
		Narration:       fmt.Sprintf("Credit card bill payment (card ending %s)", card.Last4),
		CreatedAt:       time.Now(),
	}

	var (
		pendingWritten bool
		outstanding    decimal.Decimal
	)
	err = s.uow.Do(ctx, func(tx *repositories.Registry) error {
		account, err := tx.Accounts.GetByIDForUpdate(req.FromAccountID)
		if err != nil {
			return err
		}
		if account.OwnerID != user.ID {
			return ErrAccountNotOwned
		}

		record.FromAccountID = &account.ID
		if err := reference.Apply(tx.Ledger, record, reference.PrefixCard); err != nil {
			return err
		}
		pendingWritten = true

		if account.Balance.LessThan(req.Amount) {
			return ErrInsufficientBalance
		}
		account.Balance = account.Balance.Sub(req.Amount)
		if err := tx.Accounts.Save(account); err != nil {
			return err
		}

		fresh, err := tx.Cards.GetByID(card.ID)
		if err != nil {
			return err
		}
		fresh.OutstandingAmount = fresh.OutstandingAmount.Sub(req.Amount)
		if fresh.OutstandingAmount.IsNegative() {
			fresh.OutstandingAmount = decimal.Zero
		}
		if err := tx.Cards.Save(fresh); err != nil {
			return err
		}
		outstanding = fresh.OutstandingAmount

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

	s.cache.InvalidateAccount(ctx, req.FromAccountID)

	return &PayBillResult{
		Reference:   record.Reference,
		Status:      record.Status,
		Amount:      record.Amount,
		Outstanding: outstanding,
		ProcessedAt: record.ProcessedAt,
	}, nil
}

// DebitCardSpend debits a purchase made with a debit card. The PENDING
// record is written before the balance check, so a declined purchase still
// leaves a FAILED record and an audit row behind.
func (s *service) DebitCardSpend(ctx context.Context, req SpendRequest, username string) (*SpendResult, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if req.FromAccountID == 0 {
		return nil, ErrAccountRequired
	}

	card, err := s.repos.Cards.GetByID(req.CardID)
	if err != nil {
		return nil, err
	}
	if card.OwnerID != user.ID {
		return nil, ErrNotOwner
	}
	if card.CardType != models.CardTypeDebit {
		return nil, ErrNotDebitCard
	}
	if card.Status != models.CardStatusActive && card.Status != models.CardStatusIssued {
		return nil, ErrCardNotUsable
	}
	if req.International && !card.InternationalUsageEnabled {
		return nil, ErrInternationalDisabled
	}

	record := &models.TransactionRecord{
		Type:            models.TransactionTypeCard,
		Status:          models.TransactionStatusPending,
		BeneficiaryName: req.Merchant,
		Amount:          req.Amount,
		Narration:       fmt.Sprintf("Card purchase at %s (card ending %s)", req.Merchant, card.Last4),
		CreatedAt:       time.Now(),
	}

	var (
		pendingWritten bool
		newBalance     decimal.Decimal
	)
	err = s.uow.Do(ctx, func(tx *repositories.Registry) error {
		account, err := tx.Accounts.GetByIDForUpdate(req.FromAccountID)
		if err != nil {
			return err
		}
		if account.OwnerID != user.ID {
			return ErrAccountNotOwned
		}

		record.FromAccountID = &account.ID
		if err := reference.Apply(tx.Ledger, record, reference.PrefixCard); err != nil {
			return err
		}
		pendingWritten = true

		if account.Balance.LessThan(req.Amount) {
			return ErrInsufficientBalance
		}
		account.Balance = account.Balance.Sub(req.Amount)
		if err := tx.Accounts.Save(account); err != nil {
			return err
		}
		newBalance = account.Balance

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

	s.cache.InvalidateAccount(ctx, req.FromAccountID)

	return &SpendResult{
		Reference:   record.Reference,
		Status:      record.Status,
		Amount:      record.Amount,
		Merchant:    req.Merchant,
		NewBalance:  newBalance,
		ProcessedAt: record.ProcessedAt,
	}, nil
}

func (s *service) ListMyCards(ctx context.Context, username string) ([]*models.Card, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return s.repos.Cards.GetByOwner(user.ID)
}

// transition loads the card, verifies ownership, applies the mutation and
// persists the result.
func (s *service) transition(cardID uint, username string, mutate func(*models.Card) error) (*models.Card, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	card, err := s.repos.Cards.GetByID(cardID)
	if err != nil {
		return nil, err
	}
	if card.OwnerID != user.ID {
		return nil, ErrNotOwner
	}
	if err := mutate(card); err != nil {
		return nil, err
	}
	if err := s.repos.Cards.Save(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) recordFailure(record *models.TransactionRecord, cause error) {
	now := time.Now()
	failed := &models.TransactionRecord{
		Reference:       record.Reference,
		Type:            record.Type,
		Status:          models.TransactionStatusFailed,
		FromAccountID:   record.FromAccountID,
		BeneficiaryName: record.BeneficiaryName,
		Amount:          record.Amount,
		Narration:       record.Narration,
		CreatedAt:       record.CreatedAt,
		ProcessedAt:     &now,
	}
	if err := s.repos.Ledger.Save(failed); err != nil {
		log.Printf("failed to record FAILED card transaction %s: %v", record.Reference, err)
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

// generatePAN produces a formatted 16-digit card number. Credit cards start
// with 5, debit cards with 4.
func generatePAN(cardType string) string {
	var b strings.Builder
	if cardType == models.CardTypeCredit {
		b.WriteByte('5')
	} else {
		b.WriteByte('4')
	}
	for i := 0; i < 15; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	digits := b.String()
	return fmt.Sprintf("%s-%s-%s-%s", digits[0:4], digits[4:8], digits[8:12], digits[12:16])
}
