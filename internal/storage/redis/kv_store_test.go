package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// setupTestRedis поднимает miniredis и возвращает хранилище поверх него.
func setupTestRedis(t *testing.T, opts ...Option) (*KeyValueStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewKeyValueStore(client, opts...), mr
}

func TestKeyValueStore_GetMissing(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get("shopcart_cart")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestKeyValueStore_PutUsesPrefix(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, store.Put("shopcart_cart", []byte(`{"items":[]}`)))

	raw, err := mr.Get("shopcart:shopcart_cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, raw)

	value, err := store.Get("shopcart_cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(value))
}

func TestKeyValueStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t, WithKeyPrefix("test:"))

	require.NoError(t, store.Put("shopcart_user", []byte(`{"name":"a"}`)))
	require.NoError(t, store.Delete("shopcart_user"))
	assert.False(t, mr.Exists("test:shopcart_user"))
	require.NoError(t, store.Delete("shopcart_user"))
}

func TestKeyValueStore_TTL(t *testing.T) {
	store, mr := setupTestRedis(t, WithTTL(time.Hour))

	require.NoError(t, store.Put("shopcart_cart", []byte(`{}`)))
	assert.Equal(t, time.Hour, mr.TTL("shopcart:shopcart_cart"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Get("shopcart_cart")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestKeyValueStore_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	_, err := store.Get("shopcart_cart")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrKeyNotFound)
	require.Error(t, store.Ping(context.Background()))
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := Dial(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Put("k", []byte("v")))

	_, err = Dial(context.Background(), "://bad")
	require.Error(t, err)
}
