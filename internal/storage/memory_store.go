package storage

import (
	"context"
	"sync"
)

// MemoryStore - хранилище в памяти. Используется в тестах и
// при запуске без персистентности.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore создает пустое хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get возвращает значение по ключу
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	// Копия, чтобы вызывающий не мог изменить хранимое значение
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put заменяет значение по ключу
func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}
