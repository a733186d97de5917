package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Registry bundles the repositories bound to one database handle. A Registry
// built from the root handle writes in autocommit mode; one built inside a
// UnitOfWork shares that unit's transaction.
type Registry struct {
	Users    UserRepository
	Accounts AccountRepository
	Ledger   LedgerRepository
	Cards    CardRepository
	Deposits DepositRepository
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		Users:    NewUserRepository(db),
		Accounts: NewAccountRepository(db),
		Ledger:   NewLedgerRepository(db),
		Cards:    NewCardRepository(db),
		Deposits: NewDepositRepository(db),
	}
}

// UnitOfWork executes a function inside a single all-or-nothing database
// transaction. Row locks taken through the transactional Registry are held
// until the unit commits or rolls back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx *Registry) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(tx *Registry) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRegistry(tx))
	})
}
