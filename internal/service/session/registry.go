package session

import (
	"sync"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// Registry лениво открывает по одной сессии на профиль.
type Registry struct {
	mu     sync.Mutex
	kv     domain.KeyValueStore
	opts   []Option
	stores map[string]*Store
}

// NewRegistry создаёт реестр сессий поверх общего хранилища.
func NewRegistry(kv domain.KeyValueStore, opts ...Option) *Registry {
	return &Registry{kv: kv, opts: opts, stores: make(map[string]*Store)}
}

// For возвращает сессию профиля.
func (r *Registry) For(profile string) *Store {
	key := domain.ProfileKey(StorageKey, profile)

	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[key]; ok {
		return store
	}
	store := Open(r.kv, append(append([]Option(nil), r.opts...), WithProfile(profile))...)
	r.stores[key] = store
	return store
}
