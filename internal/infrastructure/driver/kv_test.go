package driver

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewRedisClient(mr.Host(), mustAtoi(t, mr.Port()), "", 0)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func mustAtoi(t *testing.T, s string) int {
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}

func TestKeyValueDB(t *testing.T) {
	redisClient, _ := newTestRedis(t)
	backends := map[string]KeyValueDB{
		"redis":  redisClient,
		"memory": NewMemoryKV(),
	}
	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, kv.Ping(ctx))

			_, err := kv.Get(ctx, "lesson_progress_l1")
			assert.Equal(t, ErrKeyNotFound, err)
			ok, err := kv.Exists(ctx, "lesson_progress_l1")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.SetEX(ctx, "lesson_progress_l1", `{"isCompleted":true}`, 0))
			v, err := kv.Get(ctx, "lesson_progress_l1")
			require.NoError(t, err)
			assert.Equal(t, `{"isCompleted":true}`, v)
			ok, err = kv.Exists(ctx, "lesson_progress_l1")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestRedisClientExpiration(t *testing.T) {
	client, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetEX(ctx, "token", "", time.Minute))
	mr.FastForward(2 * time.Minute)

	ok, err := client.Exists(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryKVExpiration(t *testing.T) {
	kv := NewMemoryKV()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, kv.SetEX(ctx, "token", "", time.Minute))
	ok, _ := kv.Exists(ctx, "token")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, _ = kv.Exists(ctx, "token")
	assert.False(t, ok)
}

func TestGetKeyValueDB(t *testing.T) {
	kv, err := GetKeyValueDB(&KVConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	_, err = GetKeyValueDB(&KVConfig{Driver: "etcd"})
	assert.Error(t, err)
}
