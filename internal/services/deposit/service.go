package deposit

import (
	"context"
	"fmt"
	"log"
	"time"

	"bankapp/internal/models"
	"bankapp/internal/repositories"
	"bankapp/internal/services/notification"
	"bankapp/internal/services/reference"

	"github.com/shopspring/decimal"
)

// Service manages fixed and recurring deposits, including the daily
// maturity sweep.
type Service interface {
	CreateFD(ctx context.Context, req CreateFDRequest, username string) (*models.FixedDeposit, error)
	CreateRD(ctx context.Context, req CreateRDRequest, username string) (*models.RecurringDeposit, error)
	GetFD(ctx context.Context, id uint, username string) (*models.FixedDeposit, error)
	GetRD(ctx context.Context, id uint, username string) (*models.RecurringDeposit, error)
	ListMyFDs(ctx context.Context, username string) ([]*models.FixedDeposit, error)
	ListMyRDs(ctx context.Context, username string) ([]*models.RecurringDeposit, error)
	CancelFD(ctx context.Context, id uint, username string) (*models.FixedDeposit, error)
	CancelRD(ctx context.Context, id uint, username string) (*models.RecurringDeposit, error)
	ProcessMaturities(ctx context.Context, day time.Time) (*SweepReport, error)
}

type service struct {
	repos    *repositories.Registry
	uow      repositories.UnitOfWork
	cache    repositories.AccountCache
	notifier notification.Notifier
}

func NewService(repos *repositories.Registry, uow repositories.UnitOfWork, cache repositories.AccountCache, notifier notification.Notifier) Service {
	if repos == nil {
		panic("repos is required")
	}
	if uow == nil {
		panic("unit of work is required")
	}
	if cache == nil {
		cache = repositories.NoopAccountCache{}
	}
	return &service{repos: repos, uow: uow, cache: cache, notifier: notifier}
}

func (s *service) CreateFD(ctx context.Context, req CreateFDRequest, username string) (*models.FixedDeposit, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if req.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrincipal
	}
	if req.AnnualRate < 0 {
		return nil, ErrInvalidRate
	}
	if req.TenureMonths <= 0 {
		return nil, ErrInvalidTenure
	}
	if err := s.checkLinkedAccount(req.LinkedAccountID, user.ID); err != nil {
		return nil, err
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	fd := &models.FixedDeposit{
		OwnerID:            user.ID,
		Principal:          req.Principal,
		AnnualInterestRate: req.AnnualRate,
		TenureMonths:       req.TenureMonths,
		StartDate:          start,
		MaturityDate:       start.AddDate(0, req.TenureMonths, 0),
		MaturityAmount:     FixedMaturityAmount(req.Principal, req.AnnualRate, req.TenureMonths),
		Status:             models.DepositStatusActive,
		AutoRenew:          req.AutoRenew,
		LinkedAccountID:    req.LinkedAccountID,
	}
	if err := s.repos.Deposits.CreateFixed(fd); err != nil {
		return nil, err
	}
	s.notify(user.ID, "Fixed deposit created",
		fmt.Sprintf("Your fixed deposit #%d for %s has been created and matures on %s.",
			fd.ID, fd.Principal.StringFixed(2), fd.MaturityDate.Format("2006-01-02")))
	return fd, nil
}

func (s *service) CreateRD(ctx context.Context, req CreateRDRequest, username string) (*models.RecurringDeposit, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if req.MonthlyInstallment.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidInstallment
	}
	if req.AnnualRate < 0 {
		return nil, ErrInvalidRate
	}
	if req.TenureMonths <= 0 {
		return nil, ErrInvalidTenure
	}
	if err := s.checkLinkedAccount(req.LinkedAccountID, user.ID); err != nil {
		return nil, err
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	rd := &models.RecurringDeposit{
		OwnerID:            user.ID,
		MonthlyInstallment: req.MonthlyInstallment,
		AnnualInterestRate: req.AnnualRate,
		TenureMonths:       req.TenureMonths,
		StartDate:          start,
		MaturityDate:       start.AddDate(0, req.TenureMonths, 0),
		MaturityAmount:     RecurringMaturityAmount(req.MonthlyInstallment, req.AnnualRate, req.TenureMonths),
		Status:             models.DepositStatusActive,
		LinkedAccountID:    req.LinkedAccountID,
	}
	if err := s.repos.Deposits.CreateRecurring(rd); err != nil {
		return nil, err
	}
	s.notify(user.ID, "Recurring deposit created",
		fmt.Sprintf("Your recurring deposit #%d with monthly installment %s has been created and matures on %s.",
			rd.ID, rd.MonthlyInstallment.StringFixed(2), rd.MaturityDate.Format("2006-01-02")))
	return rd, nil
}

func (s *service) GetFD(ctx context.Context, id uint, username string) (*models.FixedDeposit, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	fd, err := s.repos.Deposits.GetFixedByID(id)
	if err != nil {
		return nil, err
	}
	if fd.OwnerID != user.ID {
		return nil, ErrNotOwner
	}
	return fd, nil
}

func (s *service) GetRD(ctx context.Context, id uint, username string) (*models.RecurringDeposit, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	rd, err := s.repos.Deposits.GetRecurringByID(id)
	if err != nil {
		return nil, err
	}
	if rd.OwnerID != user.ID {
		return nil, ErrNotOwner
	}
	return rd, nil
}

func (s *service) ListMyFDs(ctx context.Context, username string) ([]*models.FixedDeposit, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return s.repos.Deposits.GetFixedByOwner(user.ID)
}

func (s *service) ListMyRDs(ctx context.Context, username string) ([]*models.RecurringDeposit, error) {
	user, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return s.repos.Deposits.GetRecurringByOwner(user.ID)
}

// CancelFD cancels an ACTIVE deposit. Matured, renewed, or already
// cancelled deposits are immutable.
func (s *service) CancelFD(ctx context.Context, id uint, username string) (*models.FixedDeposit, error) {
	fd, err := s.GetFD(ctx, id, username)
	if err != nil {
		return nil, err
	}
	if fd.Status != models.DepositStatusActive {
		return nil, ErrNotActive
	}
	fd.Status = models.DepositStatusCancelled
	if err := s.repos.Deposits.SaveFixed(fd); err != nil {
		return nil, err
	}
	s.notify(fd.OwnerID, "Fixed deposit cancelled",
		fmt.Sprintf("Your fixed deposit #%d has been cancelled.", fd.ID))
	return fd, nil
}

func (s *service) CancelRD(ctx context.Context, id uint, username string) (*models.RecurringDeposit, error) {
	rd, err := s.GetRD(ctx, id, username)
	if err != nil {
		return nil, err
	}
	if rd.Status != models.DepositStatusActive {
		return nil, ErrRecurringNotActive
	}
	rd.Status = models.DepositStatusCancelled
	if err := s.repos.Deposits.SaveRecurring(rd); err != nil {
		return nil, err
	}
	s.notify(rd.OwnerID, "Recurring deposit cancelled",
		fmt.Sprintf("Your recurring deposit #%d has been cancelled.", rd.ID))
	return rd, nil
}

// ProcessMaturities settles every ACTIVE deposit whose maturity date is on
// or before day. Each deposit is processed in its own unit so one failure
// cannot poison the rest of the sweep, and re-running the sweep is safe
// because only ACTIVE deposits are selected.
func (s *service) ProcessMaturities(ctx context.Context, day time.Time) (*SweepReport, error) {
	report := &SweepReport{}

	fds, err := s.repos.Deposits.GetFixedMaturing(day, models.DepositStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load maturing fixed deposits: %w", err)
	}
	for _, fd := range fds {
		if err := s.matureFixed(ctx, fd); err != nil {
			report.FixedFailed++
			s.recordSweepFailure(fmt.Sprintf("FDMAT-%d", fd.ID),
				fmt.Sprintf("FD maturity processing failed: %v", err))
			continue
		}
		if fd.AutoRenew {
			report.FixedRenewed++
		} else {
			report.FixedMatured++
		}
	}

	rds, err := s.repos.Deposits.GetRecurringMaturing(day, models.DepositStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load maturing recurring deposits: %w", err)
	}
	for _, rd := range rds {
		if err := s.matureRecurring(ctx, rd); err != nil {
			report.RecurringFailed++
			s.recordSweepFailure(fmt.Sprintf("RDMAT-%d", rd.ID),
				fmt.Sprintf("RD maturity processing failed: %v", err))
			continue
		}
		report.RecurringMatured++
	}

	return report, nil
}

// matureFixed settles one fixed deposit. The linked account is credited
// whether or not the deposit auto-renews; auto-renew additionally rolls the
// maturity amount into a fresh deposit and marks the original RENEWED.
func (s *service) matureFixed(ctx context.Context, fd *models.FixedDeposit) error {
	err := s.uow.Do(ctx, func(tx *repositories.Registry) error {
		fresh, err := tx.Deposits.GetFixedByID(fd.ID)
		if err != nil {
			return err
		}
		if fresh.Status != models.DepositStatusActive {
			return nil
		}

		if fresh.LinkedAccountID != nil {
			if err := s.creditMaturity(tx, *fresh.LinkedAccountID, fresh.MaturityAmount,
				reference.PrefixFDMaturity, fmt.Sprintf("FD #%d maturity credit", fresh.ID)); err != nil {
				return err
			}
		}

		now := time.Now()
		fresh.Status = models.DepositStatusMatured
		if fresh.AutoRenew {
			start := now.UTC().Truncate(24 * time.Hour)
			renewal := &models.FixedDeposit{
				OwnerID:            fresh.OwnerID,
				Principal:          fresh.MaturityAmount,
				AnnualInterestRate: fresh.AnnualInterestRate,
				TenureMonths:       fresh.TenureMonths,
				StartDate:          start,
				MaturityDate:       start.AddDate(0, fresh.TenureMonths, 0),
				MaturityAmount:     FixedMaturityAmount(fresh.MaturityAmount, fresh.AnnualInterestRate, fresh.TenureMonths),
				Status:             models.DepositStatusActive,
				AutoRenew:          true,
				LinkedAccountID:    fresh.LinkedAccountID,
			}
			if err := tx.Deposits.CreateFixed(renewal); err != nil {
				return err
			}
			fresh.Status = models.DepositStatusRenewed
		}
		fresh.MaturedAt = &now
		return tx.Deposits.SaveFixed(fresh)
	})
	if err != nil {
		return err
	}

	if fd.LinkedAccountID != nil {
		s.cache.InvalidateAccount(ctx, *fd.LinkedAccountID)
	}
	amount := fd.MaturityAmount.StringFixed(2)
	switch {
	case fd.AutoRenew && fd.LinkedAccountID != nil:
		s.notify(fd.OwnerID, "Fixed deposit renewed",
			fmt.Sprintf("Your fixed deposit #%d has matured; %s was credited to your linked account and rolled into a new deposit.", fd.ID, amount))
	case fd.AutoRenew:
		s.notify(fd.OwnerID, "Fixed deposit renewed",
			fmt.Sprintf("Your fixed deposit #%d has matured and %s was rolled into a new deposit.", fd.ID, amount))
	case fd.LinkedAccountID != nil:
		s.notify(fd.OwnerID, "Fixed deposit matured",
			fmt.Sprintf("Your fixed deposit #%d has matured; %s was credited to your linked account.", fd.ID, amount))
	default:
		s.notify(fd.OwnerID, "Fixed deposit matured",
			fmt.Sprintf("Your fixed deposit #%d has matured with amount %s; please collect the proceeds at a branch.", fd.ID, amount))
	}
	return nil
}

func (s *service) matureRecurring(ctx context.Context, rd *models.RecurringDeposit) error {
	err := s.uow.Do(ctx, func(tx *repositories.Registry) error {
		fresh, err := tx.Deposits.GetRecurringByID(rd.ID)
		if err != nil {
			return err
		}
		if fresh.Status != models.DepositStatusActive {
			return nil
		}

		if fresh.LinkedAccountID != nil {
			if err := s.creditMaturity(tx, *fresh.LinkedAccountID, fresh.MaturityAmount,
				reference.PrefixRDMaturity, fmt.Sprintf("RD #%d maturity credit", fresh.ID)); err != nil {
				return err
			}
		}
		now := time.Now()
		fresh.Status = models.DepositStatusMatured
		fresh.MaturedAt = &now
		return tx.Deposits.SaveRecurring(fresh)
	})
	if err != nil {
		return err
	}

	if rd.LinkedAccountID != nil {
		s.cache.InvalidateAccount(ctx, *rd.LinkedAccountID)
		s.notify(rd.OwnerID, "Recurring deposit matured",
			fmt.Sprintf("Your recurring deposit #%d has matured; %s was credited to your linked account.", rd.ID, rd.MaturityAmount.StringFixed(2)))
	} else {
		s.notify(rd.OwnerID, "Recurring deposit matured",
			fmt.Sprintf("Your recurring deposit #%d has matured with amount %s; please collect the proceeds at a branch.", rd.ID, rd.MaturityAmount.StringFixed(2)))
	}
	return nil
}

// creditMaturity locks the destination account, credits the maturity amount
// and writes the terminal ledger record in one step.
func (s *service) creditMaturity(tx *repositories.Registry, accountID uint, amount decimal.Decimal, prefix, narration string) error {
	account, err := tx.Accounts.GetByIDForUpdate(accountID)
	if err != nil {
		return err
	}
	account.Balance = account.Balance.Add(amount)
	if err := tx.Accounts.Save(account); err != nil {
		return err
	}

	now := time.Now()
	record := &models.TransactionRecord{
		Type:        models.TransactionTypeDeposit,
		Status:      models.TransactionStatusSuccess,
		ToAccountID: &account.ID,
		Amount:      amount,
		Narration:   narration,
		CreatedAt:   now,
		ProcessedAt: &now,
	}
	return reference.Apply(tx.Ledger, record, prefix)
}

func (s *service) checkLinkedAccount(accountID *uint, ownerID uint) error {
	if accountID == nil {
		return nil
	}
	account, err := s.repos.Accounts.GetByID(*accountID)
	if err != nil {
		return err
	}
	if account.OwnerID != ownerID {
		return ErrAccountNotOwned
	}
	return nil
}

func (s *service) recordSweepFailure(ref, reason string) {
	if err := s.repos.Ledger.SaveFailed(&models.FailedTransaction{Reference: ref, Reason: reason}); err != nil {
		log.Printf("failed to record sweep failure %s: %v", ref, err)
	}
}

func (s *service) notify(ownerID uint, subject, body string) {
	if s.notifier == nil {
		return
	}
	user, err := s.repos.Users.GetByID(ownerID)
	if err != nil {
		return
	}
	s.notifier.Notify(user.Email, subject, body)
}
