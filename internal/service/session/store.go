package session

import (
	"encoding/json"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/metrics"
)

// StorageKey — ключ сохранённой личности профиля по умолчанию.
const StorageKey = "shopcart_user"

// Store — имитация сессии: личность хранится локально, сервер не участвует.
type Store struct {
	mu       sync.RWMutex
	identity *domain.Identity
	key      string
	kv       domain.KeyValueStore
	logger   *log.Entry
	metrics  *metrics.StorefrontMetrics
}

// Option настраивает Store.
type Option func(*Store)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithProfile хранит сессию под ключом профиля.
func WithProfile(profile string) Option {
	return func(s *Store) {
		s.key = domain.ProfileKey(StorageKey, profile)
	}
}

// Open восстанавливает сессию; отсутствующее или повреждённое значение означает «не вошёл».
func Open(kv domain.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		key:    StorageKey,
		kv:     kv,
		logger: log.WithField("component", "session-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("key", s.key)
	s.identity = s.rehydrate()
	return s
}

func (s *Store) rehydrate() *domain.Identity {
	raw, err := s.kv.Get(s.key)
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		return nil
	case err != nil:
		s.logger.WithError(err).Warn("failed to read persisted session, logged out")
		s.metrics.RecordStorageFallback(s.key, "read_error")
		return nil
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil || identity.IsZero() {
		s.logger.WithError(err).Warn("persisted session is corrupt, logged out")
		s.metrics.RecordStorageFallback(s.key, "corrupt")
		return nil
	}
	return &identity
}

// Login запоминает личность и сохраняет её.
func (s *Store) Login(identity domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = &identity
	payload, err := json.Marshal(identity)
	if err == nil {
		err = s.kv.Put(s.key, payload)
	}
	if err != nil {
		s.logger.WithError(err).Warn("failed to persist session")
		s.metrics.RecordStorageWriteError(s.key)
	}
}

// Logout забывает личность и удаляет ключ.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	if err := s.kv.Delete(s.key); err != nil {
		s.logger.WithError(err).Warn("failed to delete persisted session")
		s.metrics.RecordStorageWriteError(s.key)
	}
}

// Current возвращает текущую личность.
func (s *Store) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

// IsAuthenticated сообщает, есть ли личность.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}
