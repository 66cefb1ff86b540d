// Package redis хранит значения KeyValueStore в Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

const (
	// DefaultKeyPrefix отделяет ключи storefront от прочих данных в той же базе.
	DefaultKeyPrefix = "shopcart:"
	opTimeout        = 3 * time.Second
)

// KeyValueStore — реализация domain.KeyValueStore поверх go-redis.
type KeyValueStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// Option настраивает KeyValueStore.
type Option func(*KeyValueStore)

// WithKeyPrefix задаёт префикс ключей.
func WithKeyPrefix(prefix string) Option {
	return func(s *KeyValueStore) {
		s.prefix = prefix
	}
}

// WithTTL задаёт срок жизни записей; 0 отключает истечение.
func WithTTL(ttl time.Duration) Option {
	return func(s *KeyValueStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewKeyValueStore оборачивает готовый клиент.
func NewKeyValueStore(client *goredis.Client, opts ...Option) *KeyValueStore {
	s := &KeyValueStore{client: client, prefix: DefaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dial создаёт клиент по redis:// URL и проверяет соединение.
func Dial(ctx context.Context, rawURL string, opts ...Option) (*KeyValueStore, error) {
	options, err := goredis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(options)
	store := NewKeyValueStore(client, opts...)
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return store, nil
}

func (s *KeyValueStore) key(key string) string {
	return s.prefix + key
}

// Get возвращает значение или ErrKeyNotFound.
func (s *KeyValueStore) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, nil
}

// Put перезаписывает значение.
func (s *KeyValueStore) Put(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ.
func (s *KeyValueStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Ping проверяет соединение.
func (s *KeyValueStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close закрывает клиент.
func (s *KeyValueStore) Close() error {
	return s.client.Close()
}

var (
	_ domain.KeyValueStore = (*KeyValueStore)(nil)
	_ domain.Pinger        = (*KeyValueStore)(nil)
)
