package transfer

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

var impsReferencePattern = regexp.MustCompile(`^IMPS-\d{8}-[0-9A-F]{8}$`)

func testConfig() Config {
	return Config{
		SingleTransferLimit: decimal.NewFromInt(200000),
		DailyTransferLimit:  decimal.NewFromInt(500000),
	}
}

func setup(t *testing.T) (*repotest.Store, Service) {
	t.Helper()
	store := repotest.NewStore()
	svc := NewService(store.Registry(), store.UnitOfWork(), nil, testConfig())
	return store, svc
}

func seedUserWithAccount(store *repotest.Store, username string, balance int64) (models.User, models.Account) {
	user := store.AddUser(models.User{Username: username, Email: username + "@example.com"})
	account := store.AddAccount(models.Account{
		AccountNumber: "SB-20260101-00000" + username[len(username)-1:],
		AccountType:   models.AccountTypeSavings,
		Balance:       decimal.NewFromInt(balance),
		OwnerID:       user.ID,
		Status:        models.AccountStatusActive,
	})
	return user, account
}

func TestIMPSBetweenInternalAccounts(t *testing.T) {
	store, svc := setup(t)
	_, from := seedUserWithAccount(store, "arjun1", 5000)
	_, to := seedUserWithAccount(store, "meera2", 1000)

	result, err := svc.IMPS(context.Background(), Request{
		FromAccountID: &from.ID,
		ToAccountID:   &to.ID,
		Amount:        decimal.NewFromInt(2000),
		Narration:     "rent",
	}, "arjun1")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.TransactionStatusSuccess, result.Status)
	assert.Regexp(t, impsReferencePattern, result.Reference)
	require.NotNil(t, result.ProcessedAt)

	fromAfter, _ := store.Account(from.ID)
	toAfter, _ := store.Account(to.ID)
	assert.True(t, fromAfter.Balance.Equal(decimal.NewFromInt(3000)), "source balance: %s", fromAfter.Balance)
	assert.True(t, toAfter.Balance.Equal(decimal.NewFromInt(3000)), "destination balance: %s", toAfter.Balance)

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, models.TransactionTypeIMPS, records[0].Type)
	assert.Equal(t, models.TransactionStatusSuccess, records[0].Status)
}

func TestIMPSConservesTotalBalance(t *testing.T) {
	store, svc := setup(t)
	_, from := seedUserWithAccount(store, "arjun1", 7500)
	_, to := seedUserWithAccount(store, "meera2", 2500)

	_, err := svc.IMPS(context.Background(), Request{
		FromAccountID: &from.ID,
		ToAccountID:   &to.ID,
		Amount:        decimal.NewFromInt(1234),
	}, "arjun1")
	require.NoError(t, err)

	fromAfter, _ := store.Account(from.ID)
	toAfter, _ := store.Account(to.ID)
	total := fromAfter.Balance.Add(toAfter.Balance)
	assert.True(t, total.Equal(decimal.NewFromInt(10000)), "total balance drifted: %s", total)
}

func TestIMPSInsufficientBalanceLeavesFailedRecordAndAudit(t *testing.T) {
	store, svc := setup(t)
	_, from := seedUserWithAccount(store, "arjun1", 500)
	_, to := seedUserWithAccount(store, "meera2", 1000)

	_, err := svc.IMPS(context.Background(), Request{
		FromAccountID: &from.ID,
		ToAccountID:   &to.ID,
		Amount:        decimal.NewFromInt(9000),
	}, "arjun1")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	fromAfter, _ := store.Account(from.ID)
	toAfter, _ := store.Account(to.ID)
	assert.True(t, fromAfter.Balance.Equal(decimal.NewFromInt(500)))
	assert.True(t, toAfter.Balance.Equal(decimal.NewFromInt(1000)))

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, models.TransactionStatusFailed, records[0].Status)
	require.NotNil(t, records[0].ProcessedAt)

	audits := store.FailedRows()
	require.Len(t, audits, 1)
	assert.Equal(t, records[0].Reference, audits[0].Reference)
	assert.Equal(t, "Insufficient balance", audits[0].Reason)
}

func TestIMPSValidation(t *testing.T) {
	store, svc := setup(t)
	_, from := seedUserWithAccount(store, "arjun1", 500000)
	seedUserWithAccount(store, "meera2", 1000)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "missing source",
			req:     Request{Amount: decimal.NewFromInt(100)},
			wantErr: ErrSourceRequired,
		},
		{
			name:    "zero amount",
			req:     Request{FromAccountID: &from.ID, Amount: decimal.Zero},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     Request{FromAccountID: &from.ID, Amount: decimal.NewFromInt(-5)},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "over single limit",
			req:     Request{FromAccountID: &from.ID, Amount: decimal.NewFromInt(200001)},
			wantErr: ErrSingleLimitExceeded,
		},
		{
			name:    "same account",
			req:     Request{FromAccountID: &from.ID, ToAccountID: &from.ID, Amount: decimal.NewFromInt(100)},
			wantErr: ErrSameAccount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.IMPS(context.Background(), tt.req, "arjun1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, store.Records(), "no ledger record should survive validation failures")
	assert.Empty(t, store.FailedRows())
}

func TestIMPSRejectsForeignSourceAccount(t *testing.T) {
	store, svc := setup(t)
	seedUserWithAccount(store, "arjun1", 5000)
	_, theirAccount := seedUserWithAccount(store, "meera2", 5000)

	_, err := svc.IMPS(context.Background(), Request{
		FromAccountID: &theirAccount.ID,
		Amount:        decimal.NewFromInt(100),
	}, "arjun1")
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Empty(t, store.Records())
}

func TestIMPSDailyLimitAccumulates(t *testing.T) {
	store := repotest.NewStore()
	svc := NewService(store.Registry(), store.UnitOfWork(), nil, Config{
		SingleTransferLimit: decimal.NewFromInt(10000),
		DailyTransferLimit:  decimal.NewFromInt(5000),
	})
	_, from := seedUserWithAccount(store, "arjun1", 100000)
	_, to := seedUserWithAccount(store, "meera2", 0)

	_, err := svc.IMPS(context.Background(), Request{
		FromAccountID: &from.ID,
		ToAccountID:   &to.ID,
		Amount:        decimal.NewFromInt(3000),
	}, "arjun1")
	require.NoError(t, err)

	_, err = svc.IMPS(context.Background(), Request{
		FromAccountID: &from.ID,
		ToAccountID:   &to.ID,
		Amount:        decimal.NewFromInt(2500),
	}, "arjun1")
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)

	fromAfter, _ := store.Account(from.ID)
	assert.True(t, fromAfter.Balance.Equal(decimal.NewFromInt(97000)))
}

func TestIMPSExternalBeneficiaryDebitsSourceOnly(t *testing.T) {
	store, svc := setup(t)
	_, from := seedUserWithAccount(store, "arjun1", 5000)

	result, err := svc.IMPS(context.Background(), Request{
		FromAccountID:            &from.ID,
		BeneficiaryName:          "Ravi Kumar",
		BeneficiaryAccountNumber: "XX99-1234",
		BeneficiaryIFSC:          "HDFC0001234",
		Amount:                   decimal.NewFromInt(1500),
	}, "arjun1")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusSuccess, result.Status)

	fromAfter, _ := store.Account(from.ID)
	assert.True(t, fromAfter.Balance.Equal(decimal.NewFromInt(3500)))

	records := store.Records()
	require.Len(t, records, 1)
	assert.Nil(t, records[0].ToAccountID)
	assert.Equal(t, "Ravi Kumar", records[0].BeneficiaryName)
	assert.Equal(t, "HDFC0001234", records[0].BeneficiaryIFSC)
}

func TestNEFTLeavesPendingAndMovesNoMoney(t *testing.T) {
	store, svc := setup(t)
	_, from := seedUserWithAccount(store, "arjun1", 5000)

	result, err := svc.NEFT(context.Background(), Request{
		FromAccountID:            &from.ID,
		BeneficiaryName:          "Ravi Kumar",
		BeneficiaryAccountNumber: "XX99-1234",
		Amount:                   decimal.NewFromInt(2000),
	}, "arjun1")
	require.NoError(t, err)

	assert.Equal(t, models.TransactionStatusPending, result.Status)
	assert.Nil(t, result.ProcessedAt)
	assert.Regexp(t, `^NEFT-\d{8}-[0-9A-F]{8}$`, result.Reference)

	fromAfter, _ := store.Account(from.ID)
	assert.True(t, fromAfter.Balance.Equal(decimal.NewFromInt(5000)), "NEFT must not move money at capture time")

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, models.TransactionStatusPending, records[0].Status)
}

func TestNEFTPendingCountsTowardDailyLimit(t *testing.T) {
	store := repotest.NewStore()
	svc := NewService(store.Registry(), store.UnitOfWork(), nil, Config{
		SingleTransferLimit: decimal.NewFromInt(10000),
		DailyTransferLimit:  decimal.NewFromInt(4000),
	})
	_, from := seedUserWithAccount(store, "arjun1", 100000)

	_, err := svc.NEFT(context.Background(), Request{
		FromAccountID:   &from.ID,
		BeneficiaryName: "Ravi",
		Amount:          decimal.NewFromInt(3000),
	}, "arjun1")
	require.NoError(t, err)

	_, err = svc.IMPS(context.Background(), Request{
		FromAccountID:   &from.ID,
		BeneficiaryName: "Ravi",
		Amount:          decimal.NewFromInt(1500),
	}, "arjun1")
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
}

func TestGetByReference(t *testing.T) {
	store, svc := setup(t)
	_, from := seedUserWithAccount(store, "arjun1", 5000)

	result, err := svc.NEFT(context.Background(), Request{
		FromAccountID:   &from.ID,
		BeneficiaryName: "Ravi",
		Amount:          decimal.NewFromInt(100),
	}, "arjun1")
	require.NoError(t, err)

	record, err := svc.GetByReference(context.Background(), result.Reference)
	require.NoError(t, err)
	assert.Equal(t, result.Reference, record.Reference)
	assert.Equal(t, models.TransactionTypeNEFT, record.Type)
}
