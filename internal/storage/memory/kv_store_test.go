package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/memory"
)

func TestKeyValueStore_PutGetDelete(t *testing.T) {
	store := memory.NewKeyValueStore()

	if _, err := store.Get("missing"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	value := []byte(`{"items":[]}`)
	if err := store.Put("cart", value); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	// Мутация исходного буфера не должна влиять на сохранённое значение.
	value[0] = 'X'

	stored, err := store.Get("cart")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(stored) != `{"items":[]}` {
		t.Fatalf("unexpected stored value: %s", stored)
	}

	if err := store.Delete("cart"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete("cart"); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d keys", store.Len())
	}
}
