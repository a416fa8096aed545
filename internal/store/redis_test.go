package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStoreWithClient(client)
}

func TestRedisStorePutGet(t *testing.T) {
	rs := setupRedisStore(t)
	ctx := context.Background()

	err := rs.Put(ctx, "runs/r1/summary.json", []byte(`{"run_id":"r1"}`))
	require.NoError(t, err)

	data, err := rs.Get(ctx, "runs/r1/summary.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"run_id":"r1"}`, string(data))
}

func TestRedisStoreGetMissing(t *testing.T) {
	rs := setupRedisStore(t)

	_, err := rs.Get(context.Background(), "runs/none/summary.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreExists(t *testing.T) {
	rs := setupRedisStore(t)
	ctx := context.Background()

	exists, err := rs.Exists(ctx, "runs/r1/docs/d1/p.json")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, rs.Put(ctx, "runs/r1/docs/d1/p.json", []byte("{}")))

	exists, err = rs.Exists(ctx, "runs/r1/docs/d1/p.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisStoreEmptyKey(t *testing.T) {
	rs := setupRedisStore(t)
	ctx := context.Background()

	assert.Error(t, rs.Put(ctx, "", []byte("x")))
	_, err := rs.Get(ctx, "")
	assert.Error(t, err)
	_, err = rs.Exists(ctx, "")
	assert.Error(t, err)
}
