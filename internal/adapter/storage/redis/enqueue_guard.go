package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// EnqueueGuard implements ports.EnqueueGuard using Redis SET NX.
type EnqueueGuard struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewEnqueueGuard creates a guard holding each claim for ttl.
func NewEnqueueGuard(client goredis.UniversalClient, ttl time.Duration) *EnqueueGuard {
	return &EnqueueGuard{
		client: client,
		prefix: "deposit_address:enqueued:",
		ttl:    ttl,
	}
}

// Claim returns true if no enqueue happened for the account within ttl.
func (g *EnqueueGuard) Claim(ctx context.Context, accountID int64) (bool, error) {
	key := g.prefix + strconv.FormatInt(accountID, 10)
	ok, err := g.client.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis enqueue claim: %w", err)
	}
	return ok, nil
}

// Release drops a claim so a failed enqueue can be retried right away.
func (g *EnqueueGuard) Release(ctx context.Context, accountID int64) error {
	key := g.prefix + strconv.FormatInt(accountID, 10)
	if err := g.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis enqueue release: %w", err)
	}
	return nil
}
