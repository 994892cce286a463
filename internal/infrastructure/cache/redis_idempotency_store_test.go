package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisIdempotencyStore_KeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	store := NewRedisIdempotencyStoreWithClient(client, "")
	defer store.Close()
	assert.Equal(t, defaultKeyPrefix, store.keyPrefix)

	custom := NewRedisIdempotencyStoreWithClient(client, "test:")
	assert.Equal(t, "test:", custom.keyPrefix)
}

func TestRedisIdempotencyStore_ConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewRedisIdempotencyStoreWithClient(client, "")
	defer store.Close()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "booking.created:1", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mark booking.created:1 processed")

	_, err = store.IsProcessed(ctx, "booking.created:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check booking.created:1 processed")
}
