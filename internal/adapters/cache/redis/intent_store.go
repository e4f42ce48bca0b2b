package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
)

// IntentStore parks vote intents between checkout creation and the rail
// callback. Entries expire after the TTL so abandoned checkouts clean
// themselves up; Take deletes on read so a reference settles at most once.
type IntentStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type IntentOption func(*IntentStore)

// WithIntentTTL overrides how long a parked intent stays claimable.
func WithIntentTTL(ttl time.Duration) IntentOption {
	return func(s *IntentStore) {
		s.ttl = ttl
	}
}

func NewIntentStore(client *backend.Client, opts ...IntentOption) *IntentStore {
	store := &IntentStore{
		client: client,
		prefix: "smallie:checkout:",
		ttl:    time.Hour,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

var _ ports.PendingIntentStore = (*IntentStore)(nil)

func (s *IntentStore) key(reference string) string {
	return s.prefix + reference
}

func (s *IntentStore) Put(ctx context.Context, reference string, intent domain.VoteIntent) error {
	data, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("failed to marshal intent: %w", err)
	}

	if err := s.client.Set(ctx, s.key(reference), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to park intent %s: %w", reference, err)
	}
	return nil
}

func (s *IntentStore) Take(ctx context.Context, reference string) (*domain.VoteIntent, error) {
	data, err := s.client.GetDel(ctx, s.key(reference)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("failed to claim intent %s: %w", reference, err)
	}

	var intent domain.VoteIntent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil, fmt.Errorf("corrupt parked intent %s: %w", reference, err)
	}
	return &intent, nil
}
