package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

func TestKeyValueStore_RoundTrip(t *testing.T) {
	store, err := NewKeyValueStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("shopcart_cart")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Put("shopcart_cart", []byte(`{"items":[]}`)))
	require.NoError(t, store.Put("shopcart_cart", []byte(`{"items":[{"id":1}]}`)))

	value, err := store.Get("shopcart_cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"id":1}]}`, string(value))

	require.NoError(t, store.Delete("shopcart_cart"))
	require.NoError(t, store.Delete("shopcart_cart"))
	_, err = store.Get("shopcart_cart")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestKeyValueStore_EscapesKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewKeyValueStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put("shopcart_cart:../../etc", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "/")
	_, err = os.Stat(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
}

func TestKeyValueStore_Ping(t *testing.T) {
	dir := t.TempDir()
	store, err := NewKeyValueStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Ping(t.Context()))

	require.NoError(t, os.RemoveAll(dir))
	require.Error(t, store.Ping(t.Context()))
}

func TestNewKeyValueStore_RequiresDir(t *testing.T) {
	_, err := NewKeyValueStore("")
	require.Error(t, err)
}
