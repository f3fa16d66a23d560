package kvdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"portfolio/internal/domain"
	"portfolio/internal/domain/entities"
	"portfolio/internal/ports/output"
)

const bucketContact = "contact_store"

var _ output.ContactRepository = (*ContactStore)(nil)

// ContactStore keeps contact messages in a bbolt bucket keyed by message ID.
type ContactStore struct {
	db *bolt.DB
}

func NewContactStore(db *bolt.DB) (*ContactStore, error) {
	return &ContactStore{db: db}, db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketContact))
		return err
	})
}

func (s *ContactStore) Create(ctx context.Context, m *entities.ContactMessage) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateContactMessage")
	defer span.End()

	return s.put(span, m, false)
}

func (s *ContactStore) FindByID(ctx context.Context, id uuid.UUID) (*entities.ContactMessage, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "FindContactMessage")
	defer span.End()

	m := &entities.ContactMessage{}
	return m, s.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketContact)).Get(id[:])
		if res == nil {
			span.SetStatus(codes.Error, domain.ErrMessageNotFound.Error())
			return domain.ErrMessageNotFound
		}
		return json.Unmarshal(res, m)
	})
}

func (s *ContactStore) List(ctx context.Context, limit int) ([]entities.ContactMessage, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListContactMessages")
	defer span.End()

	var out []entities.ContactMessage
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketContact)).ForEach(func(_, v []byte) error {
			var m entities.ContactMessage
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			out = append(out, m)
			return nil
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ContactStore) UpdateStatus(ctx context.Context, m *entities.ContactMessage) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "UpdateContactMessage")
	defer span.End()

	return s.put(span, m, true)
}

func (s *ContactStore) put(span trace.Span, m *entities.ContactMessage, mustExist bool) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketContact))
		if mustExist && bucket.Get(m.ID[:]) == nil {
			return domain.ErrMessageNotFound
		}
		j, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode contact message: %w", err)
		}
		return bucket.Put(m.ID[:], j)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
