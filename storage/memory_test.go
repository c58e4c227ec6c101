package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, CartKey, "{}"))
	v, ok, err := s.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{}", v)

	require.NoError(t, s.Remove(ctx, CartKey))
	_, ok, _ = s.Get(ctx, CartKey)
	assert.False(t, ok)
}

func TestMemoryStoreApplyIsAllOrNothingOnCancelledContext(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set(context.Background(), CartKey, `{"a":{}}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Apply(ctx, []Mutation{SetMutation(OrdersKey, "[]"), RemoveMutation(CartKey)})
	assert.ErrorIs(t, err, context.Canceled)

	v, ok, _ := s.Get(context.Background(), CartKey)
	assert.True(t, ok)
	assert.Equal(t, `{"a":{}}`, v)
	_, ok, _ = s.Get(context.Background(), OrdersKey)
	assert.False(t, ok)
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	_, _, err := s.Get(context.Background(), UserKey)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set(context.Background(), UserKey, "x"), ErrClosed)
}
