// Package postgres реализует KeyValueStore поверх PostgreSQL (pgx через database/sql).
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const opTimeout = 5 * time.Second

var errNotInitialized = errors.New("postgres store is not initialized")

// PoolOptions задаёт параметры пула подключений.
type PoolOptions struct {
	ConnectTimeout  time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Option настраивает Store.
type Option func(*PoolOptions)

// WithConnectTimeout ограничивает начальный ping и проверки доступности.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(opts *PoolOptions) {
		if timeout > 0 {
			opts.ConnectTimeout = timeout
		}
	}
}

// WithPoolSize задаёт верхние границы открытых и простаивающих подключений.
func WithPoolSize(maxOpen, maxIdle int) Option {
	return func(opts *PoolOptions) {
		if maxOpen > 0 {
			opts.MaxOpenConns = maxOpen
		}
		if maxIdle >= 0 {
			opts.MaxIdleConns = maxIdle
		}
	}
}

// WithConnMaxLifetime задаёт время жизни подключения.
func WithConnMaxLifetime(lifetime time.Duration) Option {
	return func(opts *PoolOptions) {
		if lifetime > 0 {
			opts.ConnMaxLifetime = lifetime
		}
	}
}

func defaultPoolOptions() PoolOptions {
	// Корзины и сессии весят мало: небольшого пула хватает даже под нагрузочный тест.
	return PoolOptions{
		ConnectTimeout:  5 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// Store держит пул подключений к базе с таблицей kv_entries.
type Store struct {
	db      *sql.DB
	options PoolOptions
}

// Open открывает пул подключений и проверяет доступность базы.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	options := defaultPoolOptions()
	for _, opt := range opts {
		opt(&options)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(options.MaxOpenConns)
	db.SetMaxIdleConns(options.MaxIdleConns)
	db.SetConnMaxLifetime(options.ConnMaxLifetime)

	store := &Store{db: db, options: options}
	if err := store.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return store, nil
}

// DB возвращает пул для миграций и KeyValueStore.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Options возвращает применённые параметры пула.
func (s *Store) Options() PoolOptions {
	return s.options
}

// Ping проверяет доступность подключения; используется health-проверкой storage.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errNotInitialized
	}
	pingCtx, cancel := context.WithTimeout(ctx, s.options.ConnectTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// Close закрывает пул.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
