package session

import (
	"context"
	"path/filepath"
	"testing"

	"hotelinfinity/pkg/config"
	"hotelinfinity/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// exerciseStore runs the contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound, "empty store should report ErrNotFound")

	require.NoError(t, s.Save(ctx, []byte(`{"id":"1"}`)))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(got))

	require.NoError(t, s.Save(ctx, []byte(`{"id":"2"}`)))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2"}`, string(got), "save should overwrite the slot")

	require.NoError(t, s.Delete(ctx))
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx), "deleting an empty slot is not an error")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesPayload(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	payload := []byte("abc")
	require.NoError(t, s.Save(ctx, payload))
	payload[0] = 'x'

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, []byte(`{"email":"admin@hotelinfinity.com"}`)))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"admin@hotelinfinity.com"}`, string(got))
}

func TestNewFromConfig(t *testing.T) {
	log := logger.Discard()

	t.Run("memory", func(t *testing.T) {
		s, err := NewFromConfig(&config.Config{SessionBackend: config.SessionBackendMemory, Log: log})
		require.NoError(t, err)
		exerciseStore(t, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, err := NewFromConfig(&config.Config{
			SessionBackend: config.SessionBackendSQLite,
			SQLitePath:     filepath.Join(t.TempDir(), "s.db"),
			Log:            log,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		exerciseStore(t, s)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewFromConfig(&config.Config{SessionBackend: "etcd", Log: log})
		assert.Error(t, err)
	})
}

func TestSessionValidator_MatchesDocument(t *testing.T) {
	raw, err := bson.Marshal(mongoDocument{Key: Key, Payload: []byte(`{}`)})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	schema := SessionValidator["$jsonSchema"].(bson.M)
	for _, field := range schema["required"].([]string) {
		assert.Contains(t, doc, field)
	}
	assert.Len(t, schema["properties"], len(doc))
}
