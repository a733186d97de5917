package card

import (
	"context"
	"regexp"
	"testing"

	"bankapp/internal/models"
	"bankapp/internal/repositories/repotest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*repotest.Store, Service, models.User) {
	t.Helper()
	store := repotest.NewStore()
	svc := NewService(store.Registry(), store.UnitOfWork(), nil)
	user := store.AddUser(models.User{Username: "arjun", Email: "arjun@example.com"})
	return store, svc, user
}

func seedAccount(store *repotest.Store, ownerID uint, balance int64) models.Account {
	return store.AddAccount(models.Account{
		AccountNumber: "SB-20260101-000001",
		AccountType:   models.AccountTypeSavings,
		Balance:       decimal.NewFromInt(balance),
		OwnerID:       ownerID,
		Status:        models.AccountStatusActive,
	})
}

func TestApplyIssuesImmediately(t *testing.T) {
	_, svc, _ := setup(t)

	t.Run("credit card", func(t *testing.T) {
		issued, err := svc.ApplyCard(context.Background(), ApplyRequest{
			CardType:    models.CardTypeCredit,
			CreditLimit: decimal.NewFromInt(50000),
		}, "arjun")
		require.NoError(t, err)

		assert.Equal(t, models.CardStatusIssued, issued.Status)
		require.NotNil(t, issued.IssuedAt)
		assert.Regexp(t, regexp.MustCompile(`^5\d{3}-\d{4}-\d{4}-\d{4}$`), issued.CardNumber)
		assert.Equal(t, issued.CardNumber[len(issued.CardNumber)-4:], issued.Last4)
		assert.Equal(t, "XXX", issued.CVVMasked)
		assert.Regexp(t, `^\d{2}/\d{2}$`, issued.Expiry)
		assert.True(t, issued.CreditLimit.Equal(decimal.NewFromInt(50000)))
		assert.True(t, issued.OutstandingAmount.IsZero())
	})

	t.Run("debit card", func(t *testing.T) {
		issued, err := svc.ApplyCard(context.Background(), ApplyRequest{
			CardType: models.CardTypeDebit,
		}, "arjun")
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^4\d{3}-\d{4}-\d{4}-\d{4}$`), issued.CardNumber)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.ApplyCard(context.Background(), ApplyRequest{CardType: "PREPAID"}, "arjun")
		assert.ErrorIs(t, err, ErrInvalidCardType)
	})

	t.Run("credit card without limit", func(t *testing.T) {
		_, err := svc.ApplyCard(context.Background(), ApplyRequest{CardType: models.CardTypeCredit}, "arjun")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestActivateRequiresIssued(t *testing.T) {
	store, svc, user := setup(t)
	issued := store.AddCard(models.Card{
		OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusIssued,
	})
	active := store.AddCard(models.Card{
		OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusActive,
	})

	updated, err := svc.ActivateCard(context.Background(), issued.ID, "arjun")
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusActive, updated.Status)

	_, err = svc.ActivateCard(context.Background(), active.ID, "arjun")
	assert.ErrorIs(t, err, ErrNotIssued)
}

func TestBlockUnblockTransitions(t *testing.T) {
	store, svc, user := setup(t)

	t.Run("block from active", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusActive})
		updated, err := svc.BlockCard(context.Background(), c.ID, "arjun")
		require.NoError(t, err)
		assert.Equal(t, models.CardStatusTempBlocked, updated.Status)
	})

	t.Run("block from issued", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusIssued})
		updated, err := svc.BlockCard(context.Background(), c.ID, "arjun")
		require.NoError(t, err)
		assert.Equal(t, models.CardStatusTempBlocked, updated.Status)
	})

	t.Run("block from closed is rejected", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusClosed})
		_, err := svc.BlockCard(context.Background(), c.ID, "arjun")
		assert.ErrorIs(t, err, ErrNotBlockable)
	})

	t.Run("block twice is rejected", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusTempBlocked})
		_, err := svc.BlockCard(context.Background(), c.ID, "arjun")
		assert.ErrorIs(t, err, ErrNotBlockable)
	})

	t.Run("unblock lands on active", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusTempBlocked})
		updated, err := svc.UnblockCard(context.Background(), c.ID, "arjun")
		require.NoError(t, err)
		assert.Equal(t, models.CardStatusActive, updated.Status)
	})

	t.Run("unblock of unblocked card is rejected", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusActive})
		_, err := svc.UnblockCard(context.Background(), c.ID, "arjun")
		assert.ErrorIs(t, err, ErrNotBlocked)
	})
}

func TestAddChargeHonorsCreditLimitBoundary(t *testing.T) {
	store, svc, user := setup(t)
	c := store.AddCard(models.Card{
		OwnerID:           user.ID,
		CardType:          models.CardTypeCredit,
		Status:            models.CardStatusActive,
		CreditLimit:       decimal.NewFromInt(1000),
		OutstandingAmount: decimal.Zero,
	})

	updated, err := svc.AddCharge(context.Background(), c.ID, decimal.NewFromInt(1000), "arjun")
	require.NoError(t, err, "charge up to the exact limit is allowed")
	assert.True(t, updated.OutstandingAmount.Equal(decimal.NewFromInt(1000)))

	_, err = svc.AddCharge(context.Background(), c.ID, decimal.RequireFromString("0.01"), "arjun")
	assert.ErrorIs(t, err, ErrCreditLimitExceeded)

	after, _ := store.Card(c.ID)
	assert.True(t, after.OutstandingAmount.Equal(decimal.NewFromInt(1000)), "rejected charge must not change outstanding")
}

func TestAddChargeRequiresCreditCard(t *testing.T) {
	store, svc, user := setup(t)
	c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusActive})

	_, err := svc.AddCharge(context.Background(), c.ID, decimal.NewFromInt(10), "arjun")
	assert.ErrorIs(t, err, ErrNotCreditCard)
}

func TestPayCardBillClampsOverpayment(t *testing.T) {
	store, svc, user := setup(t)
	account := seedAccount(store, user.ID, 1000)
	c := store.AddCard(models.Card{
		OwnerID:           user.ID,
		CardType:          models.CardTypeCredit,
		Status:            models.CardStatusActive,
		CreditLimit:       decimal.NewFromInt(5000),
		OutstandingAmount: decimal.NewFromInt(500),
	})

	result, err := svc.PayCardBill(context.Background(), PayBillRequest{
		CardID:        c.ID,
		FromAccountID: account.ID,
		Amount:        decimal.NewFromInt(800),
	}, "arjun")
	require.NoError(t, err)

	assert.True(t, result.Outstanding.IsZero(), "overpayment floors outstanding at zero")
	accountAfter, _ := store.Account(account.ID)
	assert.True(t, accountAfter.Balance.Equal(decimal.NewFromInt(200)), "the full payment amount is debited")

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, models.TransactionTypeCard, records[0].Type)
	assert.Equal(t, models.TransactionStatusSuccess, records[0].Status)
	assert.Regexp(t, `^CARD-\d{8}-[0-9A-F]{8}$`, records[0].Reference)
}

func TestPayCardBillInsufficientBalance(t *testing.T) {
	store, svc, user := setup(t)
	account := seedAccount(store, user.ID, 100)
	c := store.AddCard(models.Card{
		OwnerID:           user.ID,
		CardType:          models.CardTypeCredit,
		Status:            models.CardStatusActive,
		CreditLimit:       decimal.NewFromInt(5000),
		OutstandingAmount: decimal.NewFromInt(500),
	})

	_, err := svc.PayCardBill(context.Background(), PayBillRequest{
		CardID:        c.ID,
		FromAccountID: account.ID,
		Amount:        decimal.NewFromInt(300),
	}, "arjun")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	accountAfter, _ := store.Account(account.ID)
	cardAfter, _ := store.Card(c.ID)
	assert.True(t, accountAfter.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, cardAfter.OutstandingAmount.Equal(decimal.NewFromInt(500)))

	audits := store.FailedRows()
	require.Len(t, audits, 1)
	assert.Equal(t, "Insufficient balance", audits[0].Reason)
}

func TestPayCardBillRequiresFundingAccount(t *testing.T) {
	store, svc, user := setup(t)
	c := store.AddCard(models.Card{
		OwnerID:           user.ID,
		CardType:          models.CardTypeCredit,
		Status:            models.CardStatusActive,
		CreditLimit:       decimal.NewFromInt(5000),
		OutstandingAmount: decimal.NewFromInt(500),
	})

	_, err := svc.PayCardBill(context.Background(), PayBillRequest{
		CardID: c.ID,
		Amount: decimal.NewFromInt(100),
	}, "arjun")
	assert.ErrorIs(t, err, ErrAccountRequired)

	cardAfter, _ := store.Card(c.ID)
	assert.True(t, cardAfter.OutstandingAmount.Equal(decimal.NewFromInt(500)))
}

func TestDebitCardSpend(t *testing.T) {
	store, svc, user := setup(t)
	account := seedAccount(store, user.ID, 1000)
	c := store.AddCard(models.Card{
		OwnerID:  user.ID,
		CardType: models.CardTypeDebit,
		Status:   models.CardStatusActive,
		Last4:    "4242",
	})

	result, err := svc.DebitCardSpend(context.Background(), SpendRequest{
		CardID:        c.ID,
		FromAccountID: account.ID,
		Amount:        decimal.NewFromInt(250),
		Merchant:      "Cafe Madras",
	}, "arjun")
	require.NoError(t, err)

	assert.Equal(t, models.TransactionStatusSuccess, result.Status)
	assert.Equal(t, "Cafe Madras", result.Merchant)
	accountAfter, _ := store.Account(account.ID)
	assert.True(t, accountAfter.Balance.Equal(decimal.NewFromInt(750)))
}

func TestDebitCardSpendInsufficientLeavesFailedRecord(t *testing.T) {
	store, svc, user := setup(t)
	account := seedAccount(store, user.ID, 100)
	c := store.AddCard(models.Card{
		OwnerID:  user.ID,
		CardType: models.CardTypeDebit,
		Status:   models.CardStatusActive,
	})

	_, err := svc.DebitCardSpend(context.Background(), SpendRequest{
		CardID:        c.ID,
		FromAccountID: account.ID,
		Amount:        decimal.NewFromInt(250),
		Merchant:      "Cafe Madras",
	}, "arjun")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	accountAfter, _ := store.Account(account.ID)
	assert.True(t, accountAfter.Balance.Equal(decimal.NewFromInt(100)))

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, models.TransactionStatusFailed, records[0].Status)

	audits := store.FailedRows()
	require.Len(t, audits, 1)
	assert.Equal(t, "Insufficient balance", audits[0].Reason)
}

func TestDebitCardSpendGuards(t *testing.T) {
	store, svc, user := setup(t)
	account := seedAccount(store, user.ID, 1000)

	t.Run("blocked card", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusTempBlocked})
		_, err := svc.DebitCardSpend(context.Background(), SpendRequest{
			CardID: c.ID, FromAccountID: account.ID, Amount: decimal.NewFromInt(10), Merchant: "m",
		}, "arjun")
		assert.ErrorIs(t, err, ErrCardNotUsable)
	})

	t.Run("credit card", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeCredit, Status: models.CardStatusActive})
		_, err := svc.DebitCardSpend(context.Background(), SpendRequest{
			CardID: c.ID, FromAccountID: account.ID, Amount: decimal.NewFromInt(10), Merchant: "m",
		}, "arjun")
		assert.ErrorIs(t, err, ErrNotDebitCard)
	})

	t.Run("international disabled", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusActive})
		_, err := svc.DebitCardSpend(context.Background(), SpendRequest{
			CardID: c.ID, FromAccountID: account.ID, Amount: decimal.NewFromInt(10), Merchant: "m", International: true,
		}, "arjun")
		assert.ErrorIs(t, err, ErrInternationalDisabled)
	})

	t.Run("missing funding account", func(t *testing.T) {
		c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusActive})
		_, err := svc.DebitCardSpend(context.Background(), SpendRequest{
			CardID: c.ID, Amount: decimal.NewFromInt(10), Merchant: "m",
		}, "arjun")
		assert.ErrorIs(t, err, ErrAccountRequired)
	})

	t.Run("international enabled", func(t *testing.T) {
		c := store.AddCard(models.Card{
			OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusActive,
			InternationalUsageEnabled: true,
		})
		_, err := svc.DebitCardSpend(context.Background(), SpendRequest{
			CardID: c.ID, FromAccountID: account.ID, Amount: decimal.NewFromInt(10), Merchant: "m", International: true,
		}, "arjun")
		assert.NoError(t, err)
	})
}

func TestSetInternationalUsage(t *testing.T) {
	store, svc, user := setup(t)
	c := store.AddCard(models.Card{OwnerID: user.ID, CardType: models.CardTypeDebit, Status: models.CardStatusActive})

	updated, err := svc.SetInternationalUsage(context.Background(), c.ID, true, "arjun")
	require.NoError(t, err)
	assert.True(t, updated.InternationalUsageEnabled)
}

func TestCardOwnership(t *testing.T) {
	store, svc, _ := setup(t)
	other := store.AddUser(models.User{Username: "meera", Email: "meera@example.com"})
	c := store.AddCard(models.Card{OwnerID: other.ID, CardType: models.CardTypeDebit, Status: models.CardStatusActive})

	_, err := svc.ActivateCard(context.Background(), c.ID, "arjun")
	assert.ErrorIs(t, err, ErrNotOwner)
}
