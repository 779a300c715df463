// Package memory provides in-process adapters for single-instance deployments
// and local development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/target/catalog-console/internal/domain/notice"
	"github.com/target/catalog-console/internal/ports"
)

type flashEntry struct {
	notices   []notice.Notice
	expiresAt time.Time
}

// FlashStore keeps notices in a map guarded by a mutex. Expired queues are
// dropped lazily on access.
type FlashStore struct {
	mu      sync.Mutex
	entries map[string]flashEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ ports.FlashStore = (*FlashStore)(nil)

// NewFlashStore creates an in-memory flash store with the given TTL.
func NewFlashStore(ttl time.Duration) *FlashStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &FlashStore{entries: make(map[string]flashEntry), ttl: ttl, now: time.Now}
}

// Push appends n to the queue for id and refreshes its expiry.
func (s *FlashStore) Push(_ context.Context, id string, n notice.Notice) error {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	e := s.entries[id]
	e.notices = append(e.notices, n)
	e.expiresAt = now.Add(s.ttl)
	s.entries[id] = e
	return nil
}

// Pop drains the queue for id.
func (s *FlashStore) Pop(_ context.Context, id string) ([]notice.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	delete(s.entries, id)
	if s.now().After(e.expiresAt) {
		return nil, nil
	}
	return e.notices, nil
}

func (s *FlashStore) sweepLocked(now time.Time) {
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
