package storage

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireRedis skips when no Redis server listens on localhost:6379.
func requireRedis(t *testing.T) *RedisStore {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Redis test in short mode")
	}
	conn, err := net.DialTimeout("tcp", "localhost:6379", time.Second)
	if err != nil {
		t.Skip("Redis not available at localhost:6379")
	}
	conn.Close()

	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s, err := NewRedisStore(ctx, "redis://localhost:6379/5", "playbox-test-"+time.Now().Format("150405.000"), log)
	if err != nil {
		t.Skipf("Redis not usable: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s := requireRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, ThemeKey, "dark"))
	v, ok, err := s.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	require.NoError(t, s.Remove(ctx, ThemeKey))
	_, ok, err = s.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreApply(t *testing.T) {
	s := requireRedis(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, CartKey, `{"1":{}}`))

	require.NoError(t, s.Apply(ctx, []Mutation{SetMutation(OrdersKey, "[]"), RemoveCartMutation()}))

	v, ok, _ := s.Get(ctx, OrdersKey)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
	_, ok, _ = s.Get(ctx, CartKey)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx, OrdersKey))
}

func TestNewRedisStoreRejectsEmptyURL(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := NewRedisStore(context.Background(), "", "ns", log)
	assert.EqualError(t, err, "redis URL is required")
}
