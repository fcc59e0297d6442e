package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/rules"
)

type run struct {
	results   *rules.Results
	expiresAt time.Time
}

// runStore is the in-memory session cache of completed runs, kept only
// for re-display and export download. Entries expire after a TTL; runs
// never share data.
type runStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]run
}

func newRunStore(ttl time.Duration) *runStore {
	return &runStore{
		ttl:   ttl,
		items: make(map[string]run),
	}
}

func (s *runStore) put(results *rules.Results) (id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	id = uuid.New().String()
	s.items[id] = run{
		results:   results,
		expiresAt: time.Now().Add(s.ttl),
	}
	return id
}

func (s *runStore) get(id string) (*rules.Results, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, id)
		return nil, false
	}
	return v.results, true
}

func (s *runStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())
	return len(s.items)
}

func (s *runStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
