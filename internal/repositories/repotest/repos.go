package repotest

import (
	"time"

	"bankapp/internal/models"
	"bankapp/internal/repositories"

	"github.com/shopspring/decimal"
)

type fakeUsers struct {
	store *Store
}

func (r *fakeUsers) Create(user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == user.Username {
			return repositories.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	r.store.nextUser++
	user.ID = r.store.nextUser
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUsers) GetByID(id uint) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUsers) GetByUsername(username string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUsers) GetByEmail(email string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type fakeAccounts struct {
	store *Store
}

func (r *fakeAccounts) Create(account *models.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextAccount++
	account.ID = r.store.nextAccount
	r.store.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccounts) Save(account *models.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts[account.ID]; !ok {
		return repositories.ErrAccountNotFound
	}
	r.store.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccounts) GetByID(id uint) (*models.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	return &a, nil
}

func (r *fakeAccounts) GetByNumber(number string) (*models.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.accounts {
		if a.AccountNumber == number {
			out := a
			return &out, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccounts) GetByIDForUpdate(id uint) (*models.Account, error) {
	return r.GetByID(id)
}

func (r *fakeAccounts) GetByNumberForUpdate(number string) (*models.Account, error) {
	return r.GetByNumber(number)
}

func (r *fakeAccounts) GetByOwner(ownerID uint) ([]*models.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Account
	for _, a := range r.store.accounts {
		if a.OwnerID == ownerID {
			item := a
			out = append(out, &item)
		}
	}
	return out, nil
}

func (r *fakeAccounts) ExistsByOwnerAndType(ownerID uint, accountType string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.accounts {
		if a.OwnerID == ownerID && a.AccountType == accountType {
			return true, nil
		}
	}
	return false, nil
}

type fakeLedger struct {
	store *Store
}

func (r *fakeLedger) Save(record *models.TransactionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if record.ID == 0 {
		for _, existing := range r.store.records {
			if existing.Reference == record.Reference {
				return repositories.ErrDuplicateReference
			}
		}
		r.store.nextRecord++
		record.ID = r.store.nextRecord
	}
	r.store.records[record.ID] = *record
	return nil
}

func (r *fakeLedger) GetByReference(reference string) (*models.TransactionRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rec := range r.store.records {
		if rec.Reference == reference {
			out := rec
			return &out, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (r *fakeLedger) GetDailyDebitTotal(accountID uint, t time.Time, types []string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	day := t.UTC().Truncate(24 * time.Hour)
	total := decimal.Zero
	for _, rec := range r.store.records {
		if rec.FromAccountID == nil || *rec.FromAccountID != accountID {
			continue
		}
		if rec.Status != models.TransactionStatusPending && rec.Status != models.TransactionStatusSuccess {
			continue
		}
		if !containsType(types, rec.Type) {
			continue
		}
		if !rec.CreatedAt.UTC().Truncate(24 * time.Hour).Equal(day) {
			continue
		}
		total = total.Add(rec.Amount)
	}
	return total, nil
}

func (r *fakeLedger) SaveFailed(failed *models.FailedTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextFailed++
	failed.ID = r.store.nextFailed
	if failed.OccurredAt.IsZero() {
		failed.OccurredAt = time.Now()
	}
	r.store.failed = append(r.store.failed, *failed)
	return nil
}

func containsType(types []string, t string) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

type fakeCards struct {
	store *Store
}

func (r *fakeCards) Create(card *models.Card) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextCard++
	card.ID = r.store.nextCard
	if card.AppliedAt.IsZero() {
		card.AppliedAt = time.Now()
	}
	r.store.cards[card.ID] = *card
	return nil
}

func (r *fakeCards) Save(card *models.Card) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.cards[card.ID]; !ok {
		return repositories.ErrCardNotFound
	}
	r.store.cards[card.ID] = *card
	return nil
}

func (r *fakeCards) GetByID(id uint) (*models.Card, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.cards[id]
	if !ok {
		return nil, repositories.ErrCardNotFound
	}
	return &c, nil
}

func (r *fakeCards) GetByOwner(ownerID uint) ([]*models.Card, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Card
	for _, c := range r.store.cards {
		if c.OwnerID == ownerID {
			item := c
			out = append(out, &item)
		}
	}
	return out, nil
}

type fakeDeposits struct {
	store *Store
}

func (r *fakeDeposits) CreateFixed(fd *models.FixedDeposit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextFixed++
	fd.ID = r.store.nextFixed
	r.store.fixed[fd.ID] = *fd
	return nil
}

func (r *fakeDeposits) SaveFixed(fd *models.FixedDeposit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.fixed[fd.ID]; !ok {
		return repositories.ErrDepositNotFound
	}
	r.store.fixed[fd.ID] = *fd
	return nil
}

func (r *fakeDeposits) GetFixedByID(id uint) (*models.FixedDeposit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	fd, ok := r.store.fixed[id]
	if !ok {
		return nil, repositories.ErrDepositNotFound
	}
	return &fd, nil
}

func (r *fakeDeposits) GetFixedByOwner(ownerID uint) ([]*models.FixedDeposit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.FixedDeposit
	for _, fd := range r.store.fixed {
		if fd.OwnerID == ownerID {
			item := fd
			out = append(out, &item)
		}
	}
	return out, nil
}

func (r *fakeDeposits) GetFixedMaturing(t time.Time, status string) ([]*models.FixedDeposit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	day := t.UTC().Truncate(24 * time.Hour)
	var out []*models.FixedDeposit
	for _, fd := range r.store.fixed {
		if fd.Status == status && !fd.MaturityDate.After(day) {
			item := fd
			out = append(out, &item)
		}
	}
	return out, nil
}

func (r *fakeDeposits) CreateRecurring(rd *models.RecurringDeposit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextRecurring++
	rd.ID = r.store.nextRecurring
	r.store.recurring[rd.ID] = *rd
	return nil
}

func (r *fakeDeposits) SaveRecurring(rd *models.RecurringDeposit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.recurring[rd.ID]; !ok {
		return repositories.ErrDepositNotFound
	}
	r.store.recurring[rd.ID] = *rd
	return nil
}

func (r *fakeDeposits) GetRecurringByID(id uint) (*models.RecurringDeposit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rd, ok := r.store.recurring[id]
	if !ok {
		return nil, repositories.ErrDepositNotFound
	}
	return &rd, nil
}

func (r *fakeDeposits) GetRecurringByOwner(ownerID uint) ([]*models.RecurringDeposit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.RecurringDeposit
	for _, rd := range r.store.recurring {
		if rd.OwnerID == ownerID {
			item := rd
			out = append(out, &item)
		}
	}
	return out, nil
}

func (r *fakeDeposits) GetRecurringMaturing(t time.Time, status string) ([]*models.RecurringDeposit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	day := t.UTC().Truncate(24 * time.Hour)
	var out []*models.RecurringDeposit
	for _, rd := range r.store.recurring {
		if rd.Status == status && !rd.MaturityDate.After(day) {
			item := rd
			out = append(out, &item)
		}
	}
	return out, nil
}
