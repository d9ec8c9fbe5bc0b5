package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	defer store.Close()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), 0))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	now = now.Add(2 * time.Minute)

	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)

	got, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

func TestMemoryStore_Incr(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	n, err := store.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = store.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	raw, err := store.Get(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, "2", string(raw))

	require.NoError(t, store.Set(ctx, "word", []byte("x"), 0))
	_, err = store.Incr(ctx, "word")
	assert.Error(t, err)
}

func testPageCache(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	pages := NewPageCache(store, time.Minute)
	user := uuid.New().String()

	key, err := pages.Key(ctx, user, "/api/stats")
	require.NoError(t, err)

	_, err = pages.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)

	page := &Page{Status: 200, ContentType: "application/json", Body: []byte(`{"ok":true}`)}
	require.NoError(t, pages.Set(ctx, key, page))

	cached, err := pages.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, page, cached)

	other, err := pages.Key(ctx, uuid.New().String(), "/api/stats")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	require.NoError(t, pages.Invalidate(ctx, user))

	fresh, err := pages.Key(ctx, user, "/api/stats")
	require.NoError(t, err)
	assert.NotEqual(t, key, fresh)

	_, err = pages.Get(ctx, fresh)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestPageCache_Memory(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	testPageCache(t, store)
}

func TestPageCache_Redis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	store, err := NewRedisStore(context.Background(), url)
	require.NoError(t, err)
	defer store.Close()

	testPageCache(t, store)
}
