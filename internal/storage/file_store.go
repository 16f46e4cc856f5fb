package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore - файловое key-value хранилище.
// Каждый ключ хранится отдельным файлом в заданной директории.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore создает файловое хранилище в директории dir
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	return &FileStore{dir: dir}, nil
}

// Get возвращает значение по ключу
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return data, nil
}

// Put атомарно заменяет значение по ключу.
// Запись идет во временный файл с последующим rename, чтобы
// при сбое на диске не оставалось частично записанное значение.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit key %s: %w", key, err)
	}

	return nil
}

// path возвращает путь файла для ключа
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
