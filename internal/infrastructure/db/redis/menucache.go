package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

const menuTTL = 5 * time.Minute

// MenuCache stores the role-scoped menu sets with a freshness window, so
// the route guard does not hit the database on every navigation.
// Key format: menus:role:<role_id>
type MenuCache struct {
	client *redis.Client
}

// NewMenuCache creates a MenuCache wrapping the given Redis client.
func NewMenuCache(client *redis.Client) *MenuCache {
	return &MenuCache{client: client}
}

// Get returns the cached menu set for the role. The second return reports
// whether the key was present and fresh.
func (c *MenuCache) Get(ctx context.Context, roleID int) ([]domain.Menu, bool, error) {
	raw, err := c.client.Get(ctx, c.key(roleID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("menu cache get: %w", err)
	}

	var menus []domain.Menu
	if err := json.Unmarshal(raw, &menus); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return menus, true, nil
}

// Set stores the role's menu set, expiring after the freshness window.
func (c *MenuCache) Set(ctx context.Context, roleID int, menus []domain.Menu) error {
	raw, err := json.Marshal(menus)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(roleID), raw, menuTTL).Err()
}

// Invalidate drops the role's cached set.
func (c *MenuCache) Invalidate(ctx context.Context, roleID int) error {
	return c.client.Del(ctx, c.key(roleID)).Err()
}

func (c *MenuCache) key(roleID int) string {
	return fmt.Sprintf("menus:role:%d", roleID)
}
