package redis

// Package redis provides Redis-backed adapters for the catalog console.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/catalog-console/internal/domain/notice"
	"github.com/target/catalog-console/internal/ports"
)

const defaultFlashPrefix = "flash:"

// FlashStore queues notices in a Redis list per browser flash id.
// Each push refreshes the list TTL so unread notices eventually expire.
type FlashStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.FlashStore = (*FlashStore)(nil)

// FlashStoreOptions configures a FlashStore.
type FlashStoreOptions struct {
	Client redis.UniversalClient
	Prefix string        // optional, defaults to "flash:"
	TTL    time.Duration // optional, defaults to one minute
}

// NewFlashStore creates a Redis-backed flash store.
func NewFlashStore(opts FlashStoreOptions) *FlashStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultFlashPrefix
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &FlashStore{client: opts.Client, prefix: prefix, ttl: ttl}
}

// Push appends n to the queue for id.
func (s *FlashStore) Push(ctx context.Context, id string, n notice.Notice) error {
	if id == "" {
		return errors.New("flash id cannot be empty")
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	key := s.prefix + id
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis push flash: %w", err)
	}
	return nil
}

// Pop drains the queue for id.
func (s *FlashStore) Pop(ctx context.Context, id string) ([]notice.Notice, error) {
	if id == "" {
		return nil, nil
	}

	key := s.prefix + id
	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis pop flash: %w", err)
	}

	raw, err := items.Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis pop flash: %w", err)
	}

	out := make([]notice.Notice, 0, len(raw))
	for _, r := range raw {
		var n notice.Notice
		if uerr := json.Unmarshal([]byte(r), &n); uerr != nil {
			return nil, fmt.Errorf("unmarshal notice: %w", uerr)
		}
		out = append(out, n)
	}
	return out, nil
}
