// Package redis holds the projections the page reads between store
// round-trips: the per-contestant tally counter and the parked checkout
// intents awaiting a rail callback.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	backend "github.com/redis/go-redis/v9"
	"github.com/smallie/smallie/internal/core/ports"
)

// TallyCache implements ports.TallyCache on a redis counter per
// contestant.
type TallyCache struct {
	client *backend.Client
	prefix string
}

type TallyOption func(*TallyCache)

// WithTallyPrefix sets the key prefix for tally counters.
func WithTallyPrefix(prefix string) TallyOption {
	return func(c *TallyCache) {
		c.prefix = prefix
	}
}

// NewTallyCache creates a tally cache from an existing client.
func NewTallyCache(client *backend.Client, opts ...TallyOption) *TallyCache {
	cache := &TallyCache{
		client: client,
		prefix: "smallie:tally:",
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

var _ ports.TallyCache = (*TallyCache)(nil)

func (c *TallyCache) key(contestantID string) string {
	return c.prefix + contestantID
}

func (c *TallyCache) Add(ctx context.Context, contestantID string, delta int64) (int64, error) {
	total, err := c.client.IncrBy(ctx, c.key(contestantID), delta).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment tally projection: %w", err)
	}
	return total, nil
}

func (c *TallyCache) Set(ctx context.Context, contestantID string, votes int64) error {
	if err := c.client.Set(ctx, c.key(contestantID), strconv.FormatInt(votes, 10), 0).Err(); err != nil {
		return fmt.Errorf("failed to set tally projection: %w", err)
	}
	return nil
}

func (c *TallyCache) Get(ctx context.Context, contestantID string) (int64, bool, error) {
	v, err := c.client.Get(ctx, c.key(contestantID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read tally projection: %w", err)
	}

	votes, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt tally projection for %s: %w", contestantID, err)
	}
	return votes, true, nil
}
