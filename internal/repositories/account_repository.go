package repositories

import (
	"errors"

	"bankapp/internal/models"
)

var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the interface for account-related database
// operations. The ForUpdate variants acquire an exclusive row lock that is
// held until the enclosing transaction ends; they must only be called from
// inside a UnitOfWork, and only for rows about to be mutated.
type AccountRepository interface {
	Create(account *models.Account) error
	Save(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByNumber(number string) (*models.Account, error)
	GetByIDForUpdate(id uint) (*models.Account, error)
	GetByNumberForUpdate(number string) (*models.Account, error)
	GetByOwner(ownerID uint) ([]*models.Account, error)
	ExistsByOwnerAndType(ownerID uint, accountType string) (bool, error)
}
