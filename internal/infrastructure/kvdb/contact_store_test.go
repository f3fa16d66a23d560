package kvdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"portfolio/internal/domain"
	"portfolio/internal/domain/entities"
)

func openStore(t *testing.T) *ContactStore {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"), 0600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewContactStore(db)
	require.NoError(t, err)
	return store
}

func message(at time.Time) *entities.ContactMessage {
	return &entities.ContactMessage{
		ID:          uuid.New(),
		Origin:      "/index.html",
		Locale:      entities.LocaleES,
		Name:        "Ada",
		Fields:      entities.Fields{"name": {"Ada"}},
		Status:      entities.ContactPending,
		SubmittedAt: at,
	}
}

func TestContactStoreRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	m := message(time.Now().UTC())
	require.NoError(t, store.Create(ctx, m))

	m.Status = entities.ContactDelivered
	m.SettledAt = m.SubmittedAt.Add(time.Second)
	require.NoError(t, store.UpdateStatus(ctx, m))

	got, err := store.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ContactDelivered, got.Status)
	assert.Equal(t, "Ada", got.Fields.Get("name"))
	assert.True(t, got.SettledAt.Equal(m.SettledAt))
}

func TestContactStoreMissing(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	_, err := store.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)

	err = store.UpdateStatus(ctx, message(time.Now()))
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestContactStoreListNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		require.NoError(t, store.Create(ctx, message(base.Add(time.Duration(i)*time.Hour))))
	}

	got, err := store.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].SubmittedAt.Equal(base.Add(3*time.Hour)))
	assert.True(t, got[2].SubmittedAt.Equal(base.Add(time.Hour)))
}
