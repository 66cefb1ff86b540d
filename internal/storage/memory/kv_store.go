// Package memory содержит in-memory хранилища для локальной разработки и тестов.
package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// KeyValueStore — потокобезопасная in-memory реализация domain.KeyValueStore.
type KeyValueStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewKeyValueStore возвращает пустое хранилище.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{items: make(map[string][]byte)}
}

// Get возвращает копию значения или ErrKeyNotFound.
func (s *KeyValueStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put сохраняет копию, чтобы вызывающий код не мог изменить данные снаружи.
func (s *KeyValueStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = append([]byte(nil), value...)
	return nil
}

// Delete удаляет ключ.
func (s *KeyValueStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Ping всегда успешен.
func (s *KeyValueStore) Ping(context.Context) error {
	return nil
}

// Len возвращает число ключей.
func (s *KeyValueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

var (
	_ domain.KeyValueStore = (*KeyValueStore)(nil)
	_ domain.Pinger        = (*KeyValueStore)(nil)
)
