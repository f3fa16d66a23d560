package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"portfolio/internal/domain"
	"portfolio/internal/domain/entities"
	"portfolio/internal/ports/output"
)

var _ output.ContactRepository = (*ContactStore)(nil)

// ContactStore keeps contact messages in process memory. Contents are lost
// on restart.
type ContactStore struct {
	mu       sync.RWMutex
	messages map[uuid.UUID]entities.ContactMessage
}

func NewContactStore() *ContactStore {
	return &ContactStore{messages: make(map[uuid.UUID]entities.ContactMessage)}
}

func (s *ContactStore) Create(_ context.Context, m *entities.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[m.ID] = clone(*m)
	return nil
}

func (s *ContactStore) FindByID(_ context.Context, id uuid.UUID) (*entities.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	m = clone(m)
	return &m, nil
}

func (s *ContactStore) List(_ context.Context, limit int) ([]entities.ContactMessage, error) {
	s.mu.RLock()
	out := make([]entities.ContactMessage, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, clone(m))
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ContactStore) UpdateStatus(_ context.Context, m *entities.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[m.ID]; !ok {
		return domain.ErrMessageNotFound
	}
	s.messages[m.ID] = clone(*m)
	return nil
}

func clone(m entities.ContactMessage) entities.ContactMessage {
	if m.Fields != nil {
		f := make(entities.Fields, len(m.Fields))
		for k, v := range m.Fields {
			f[k] = append([]string(nil), v...)
		}
		m.Fields = f
	}
	return m
}
