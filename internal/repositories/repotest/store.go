// Package repotest provides in-memory repository fakes for service tests.
// The fakes copy values in and out so tests observe persisted state, not
// shared pointers, and the fake unit of work restores a snapshot on error
// to model transaction rollback.
package repotest

import (
	"context"
	"sync"

	"bankapp/internal/models"
	"bankapp/internal/repositories"
)

// Store is the shared in-memory database behind a fake Registry.
type Store struct {
	mu sync.Mutex

	users     map[uint]models.User
	accounts  map[uint]models.Account
	records   map[uint]models.TransactionRecord
	failed    []models.FailedTransaction
	cards     map[uint]models.Card
	fixed     map[uint]models.FixedDeposit
	recurring map[uint]models.RecurringDeposit

	nextUser      uint
	nextAccount   uint
	nextRecord    uint
	nextFailed    uint
	nextCard      uint
	nextFixed     uint
	nextRecurring uint
}

func NewStore() *Store {
	return &Store{
		users:     make(map[uint]models.User),
		accounts:  make(map[uint]models.Account),
		records:   make(map[uint]models.TransactionRecord),
		cards:     make(map[uint]models.Card),
		fixed:     make(map[uint]models.FixedDeposit),
		recurring: make(map[uint]models.RecurringDeposit),
	}
}

// Registry returns a repositories.Registry backed by this store.
func (s *Store) Registry() *repositories.Registry {
	return &repositories.Registry{
		Users:    &fakeUsers{store: s},
		Accounts: &fakeAccounts{store: s},
		Ledger:   &fakeLedger{store: s},
		Cards:    &fakeCards{store: s},
		Deposits: &fakeDeposits{store: s},
	}
}

// UnitOfWork returns a fake unit of work over this store. On error the
// store is restored to its pre-unit snapshot, like a rolled-back
// transaction.
func (s *Store) UnitOfWork() repositories.UnitOfWork {
	return &fakeUnitOfWork{store: s}
}

type fakeUnitOfWork struct {
	store *Store
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(tx *repositories.Registry) error) error {
	snap := u.store.snapshot()
	if err := fn(u.store.Registry()); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	users     map[uint]models.User
	accounts  map[uint]models.Account
	records   map[uint]models.TransactionRecord
	failed    []models.FailedTransaction
	cards     map[uint]models.Card
	fixed     map[uint]models.FixedDeposit
	recurring map[uint]models.RecurringDeposit

	nextUser      uint
	nextAccount   uint
	nextRecord    uint
	nextFailed    uint
	nextCard      uint
	nextFixed     uint
	nextRecurring uint
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storeSnapshot{
		users:         copyMap(s.users),
		accounts:      copyMap(s.accounts),
		records:       copyMap(s.records),
		failed:        append([]models.FailedTransaction(nil), s.failed...),
		cards:         copyMap(s.cards),
		fixed:         copyMap(s.fixed),
		recurring:     copyMap(s.recurring),
		nextUser:      s.nextUser,
		nextAccount:   s.nextAccount,
		nextRecord:    s.nextRecord,
		nextFailed:    s.nextFailed,
		nextCard:      s.nextCard,
		nextFixed:     s.nextFixed,
		nextRecurring: s.nextRecurring,
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.accounts = snap.accounts
	s.records = snap.records
	s.failed = snap.failed
	s.cards = snap.cards
	s.fixed = snap.fixed
	s.recurring = snap.recurring
	s.nextUser = snap.nextUser
	s.nextAccount = snap.nextAccount
	s.nextRecord = snap.nextRecord
	s.nextFailed = snap.nextFailed
	s.nextCard = snap.nextCard
	s.nextFixed = snap.nextFixed
	s.nextRecurring = snap.nextRecurring
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Seed and inspection helpers.

func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		s.nextUser++
		u.ID = s.nextUser
	} else if u.ID > s.nextUser {
		s.nextUser = u.ID
	}
	s.users[u.ID] = u
	return u
}

func (s *Store) AddAccount(a models.Account) models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		s.nextAccount++
		a.ID = s.nextAccount
	} else if a.ID > s.nextAccount {
		s.nextAccount = a.ID
	}
	s.accounts[a.ID] = a
	return a
}

func (s *Store) AddCard(c models.Card) models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		s.nextCard++
		c.ID = s.nextCard
	} else if c.ID > s.nextCard {
		s.nextCard = c.ID
	}
	s.cards[c.ID] = c
	return c
}

func (s *Store) AddFixedDeposit(fd models.FixedDeposit) models.FixedDeposit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fd.ID == 0 {
		s.nextFixed++
		fd.ID = s.nextFixed
	} else if fd.ID > s.nextFixed {
		s.nextFixed = fd.ID
	}
	s.fixed[fd.ID] = fd
	return fd
}

func (s *Store) AddRecurringDeposit(rd models.RecurringDeposit) models.RecurringDeposit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rd.ID == 0 {
		s.nextRecurring++
		rd.ID = s.nextRecurring
	} else if rd.ID > s.nextRecurring {
		s.nextRecurring = rd.ID
	}
	s.recurring[rd.ID] = rd
	return rd
}

// Account returns the stored account by id, or false.
func (s *Store) Account(id uint) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	return a, ok
}

// Card returns the stored card by id, or false.
func (s *Store) Card(id uint) (models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	return c, ok
}

// FixedDeposit returns the stored fixed deposit by id, or false.
func (s *Store) FixedDeposit(id uint) (models.FixedDeposit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fd, ok := s.fixed[id]
	return fd, ok
}

// RecurringDeposit returns the stored recurring deposit by id, or false.
func (s *Store) RecurringDeposit(id uint) (models.RecurringDeposit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rd, ok := s.recurring[id]
	return rd, ok
}

// FixedDeposits returns all stored fixed deposits.
func (s *Store) FixedDeposits() []models.FixedDeposit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FixedDeposit, 0, len(s.fixed))
	for _, fd := range s.fixed {
		out = append(out, fd)
	}
	return out
}

// Records returns all ledger records.
func (s *Store) Records() []models.TransactionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TransactionRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}

// FailedRows returns all audit rows.
func (s *Store) FailedRows() []models.FailedTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FailedTransaction(nil), s.failed...)
}
