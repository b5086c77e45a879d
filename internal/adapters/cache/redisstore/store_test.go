package redisstore

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	s := New(redis.NewClient(opts), "roomfinder:test:"+uuid.NewString()+":")
	t.Cleanup(func() {
		_ = s.Reset()
		_ = s.Close()
	})
	return s
}

func TestStore_GetSetDelete(t *testing.T) {
	s := newTestStore(t)

	val, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set("hits", []byte("3"), time.Minute))
	val, err = s.Get("hits")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	require.NoError(t, s.Delete("hits"))
	val, err = s.Get("hits")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestStore_Reset(t *testing.T) {
	s := newTestStore(t)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(k, []byte(k), 0))
	}
	require.NoError(t, s.Reset())

	for _, k := range []string{"a", "b", "c"} {
		val, err := s.Get(k)
		require.NoError(t, err)
		assert.Nil(t, val)
	}
}
