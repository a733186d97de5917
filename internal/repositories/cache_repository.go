package repositories

import (
	"context"

	"bankapp/internal/models"
)

// AccountCache caches accounts for unlocked informational reads. It is
// never consulted on the lock-for-update path; every balance mutation must
// invalidate the touched accounts.
type AccountCache interface {
	GetAccount(ctx context.Context, id uint) (*models.Account, error)
	SetAccount(ctx context.Context, account *models.Account) error
	InvalidateAccount(ctx context.Context, id uint) error
}

// NoopAccountCache is used when no cache backend is configured.
type NoopAccountCache struct{}

func (NoopAccountCache) GetAccount(context.Context, uint) (*models.Account, error) {
	return nil, ErrAccountNotFound
}
func (NoopAccountCache) SetAccount(context.Context, *models.Account) error { return nil }
func (NoopAccountCache) InvalidateAccount(context.Context, uint) error     { return nil }
