package storage

import (
	"context"
	"errors"
)

// ErrNotFound возвращается, когда ключ отсутствует в хранилище
var ErrNotFound = errors.New("key not found")

// Store - интерфейс внешнего key-value хранилища.
// Реализации должны быть безопасны для конкурентного доступа.
type Store interface {
	// Get возвращает значение по ключу или ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Put атомарно заменяет значение по ключу
	Put(ctx context.Context, key string, value []byte) error
}
