package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio/internal/domain/entities"
)

// StatusStore keeps pending form statuses until they expire. Each status
// expires on its own schedule; storing a new one never shortens or extends
// another.
type StatusStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]entities.FormStatus
	now   func() time.Time
}

func NewStatusStore(now func() time.Time) *StatusStore {
	if now == nil {
		now = time.Now
	}
	return &StatusStore{items: make(map[uuid.UUID]entities.FormStatus), now: now}
}

func (s *StatusStore) Put(status entities.FormStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[status.ID] = status
}

// Get returns the status while it is still visible.
func (s *StatusStore) Get(id uuid.UUID) (entities.FormStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[id]
	if !ok {
		return entities.FormStatus{}, false
	}
	if st.Expired(s.now()) {
		delete(s.items, id)
		return entities.FormStatus{}, false
	}
	return st, true
}

func (s *StatusStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep drops expired statuses and reports how many were removed.
func (s *StatusStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, st := range s.items {
		if st.Expired(now) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// RunSweeper sweeps expired statuses every interval until ctx is done.
func (s *StatusStore) RunSweeper(ctx context.Context, interval time.Duration, logger *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && logger != nil {
				logger.Debug("expired form statuses swept", zap.Int("count", n))
			}
		}
	}
}
