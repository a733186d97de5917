package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bankapp/internal/models"

	"github.com/redis/go-redis/v9"
)

const accountKeyPrefix = "account:"

// AccountCache implements repositories.AccountCache on top of Redis.
type AccountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAccountCache(client *redis.Client, ttl time.Duration) *AccountCache {
	return &AccountCache{client: client, ttl: ttl}
}

func (c *AccountCache) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	val, err := c.client.Get(ctx, accountKey(id)).Result()
	if err != nil {
		return nil, err
	}
	var account models.Account
	if err := json.Unmarshal([]byte(val), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *AccountCache) SetAccount(ctx context.Context, account *models.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, accountKey(account.ID), data, c.ttl).Err()
}

func (c *AccountCache) InvalidateAccount(ctx context.Context, id uint) error {
	return c.client.Del(ctx, accountKey(id)).Err()
}

func accountKey(id uint) string {
	return fmt.Sprintf("%s%d", accountKeyPrefix, id)
}
