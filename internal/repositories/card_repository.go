package repositories

import (
	"errors"

	"bankapp/internal/models"
)

var ErrCardNotFound = errors.New("card not found")

// CardRepository defines the interface for card-related database operations.
type CardRepository interface {
	Create(card *models.Card) error
	Save(card *models.Card) error
	GetByID(id uint) (*models.Card, error)
	GetByOwner(ownerID uint) ([]*models.Card, error)
}
