// Package file хранит значения KeyValueStore в отдельных файлах каталога,
// аналог локального хранилища браузера для CLI.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

const fileSuffix = ".json"

// KeyValueStore пишет каждый ключ в <dir>/<escaped key>.json атомарной заменой файла.
type KeyValueStore struct {
	mu  sync.Mutex
	dir string
}

// NewKeyValueStore создаёт каталог при необходимости.
func NewKeyValueStore(dir string) (*KeyValueStore, error) {
	if dir == "" {
		return nil, errors.New("file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &KeyValueStore{dir: dir}, nil
}

func (s *KeyValueStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileSuffix)
}

// Get читает файл ключа.
func (s *KeyValueStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

// Put пишет во временный файл и переименовывает его, чтобы читатель
// никогда не увидел наполовину записанное значение.
func (s *KeyValueStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("replace %q: %w", key, err)
	}
	return nil
}

// Delete удаляет файл ключа.
func (s *KeyValueStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Ping проверяет, что каталог всё ещё доступен.
func (s *KeyValueStore) Ping(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

var (
	_ domain.KeyValueStore = (*KeyValueStore)(nil)
	_ domain.Pinger        = (*KeyValueStore)(nil)
)
