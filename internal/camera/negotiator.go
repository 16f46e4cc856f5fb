package camera

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"camera-gateway/internal/storage"
)

// Ключ конфигурации в key-value хранилище
const configKey = "config"

// Negotiator валидирует предложенную конфигурацию захвата по
// справочнику режимов и фиксирует ее в хранилище. Единственный
// писатель конфигурации в системе.
type Negotiator struct {
	catalog *Catalog
	store   storage.Store
	logger  *zap.Logger

	// mu сериализует цикл "прочитать-проверить-записать" в Propose.
	// Читатели Current берут RLock и видят либо старое, либо новое
	// значение целиком, никогда не смесь полей.
	mu      sync.RWMutex
	current Config

	// Подписчики на зафиксированные изменения конфигурации
	subMu       sync.Mutex
	subscribers map[int]chan Config
	nextSubID   int
}

// NewNegotiator загружает сохраненную конфигурацию из хранилища.
// Если ее нет, берется первый режим первого известного устройства.
func NewNegotiator(ctx context.Context, catalog *Catalog, store storage.Store, logger *zap.Logger) (*Negotiator, error) {
	n := &Negotiator{
		catalog:     catalog,
		store:       store,
		logger:      logger,
		subscribers: make(map[int]chan Config),
	}

	data, err := store.Get(ctx, configKey)
	switch {
	case err == nil:
		var persisted Config
		if err := json.Unmarshal(data, &persisted); err != nil {
			return nil, fmt.Errorf("persisted config is corrupt: %w", err)
		}
		n.current = persisted

	case errors.Is(err, storage.ErrNotFound):
		n.current = defaultConfig(catalog)
		logger.Info("No persisted config found, using default",
			zap.String("device", n.current.Device))

	default:
		return nil, fmt.Errorf("failed to load persisted config: %w", err)
	}

	return n, nil
}

// defaultConfig выбирает стартовую конфигурацию из справочника
func defaultConfig(catalog *Catalog) Config {
	for _, device := range catalog.Devices() {
		options := catalog.ListOptions(device)
		if len(options) == 0 {
			continue
		}
		return Config{
			Device:     device,
			Resolution: options[0].Resolution,
			Framerate:  options[0].Framerate,
			Rotation:   0,
		}
	}

	return Config{}
}

// Current возвращает текущую конфигурацию
func (n *Negotiator) Current() Config {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.current
}

// Propose валидирует кандидата и, если все проверки прошли,
// атомарно заменяет конфигурацию целиком. Порядок проверок:
// устройство, режим, поворот. При любой ошибке сохраненная
// конфигурация не меняется.
func (n *Negotiator) Propose(ctx context.Context, candidate Config) (Config, error) {
	if !n.catalog.HasDevice(candidate.Device) {
		return Config{}, errUnknownDevice(candidate.Device)
	}

	if !n.catalog.Supports(candidate.Device, candidate.Resolution, candidate.Framerate) {
		return Config{}, errUnsupportedMode(candidate.Resolution, candidate.Framerate)
	}

	if !ValidRotation(candidate.Rotation) {
		return Config{}, errInvalidRotation(candidate.Rotation)
	}

	data, err := json.Marshal(candidate)
	if err != nil {
		return Config{}, fmt.Errorf("failed to marshal config: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	// Сначала персистентность, потом обновление в памяти: при ошибке
	// записи видимая конфигурация остается прежней
	if err := n.store.Put(ctx, configKey, data); err != nil {
		return Config{}, fmt.Errorf("failed to persist config: %w", err)
	}

	n.current = candidate

	n.logger.Info("Capture config committed",
		zap.String("device", candidate.Device),
		zap.String("resolution", candidate.Resolution.String()),
		zap.Int("framerate", candidate.Framerate),
		zap.Int("rotation", candidate.Rotation))

	n.publish(candidate)

	return candidate, nil
}

// Subscribe регистрирует подписчика на зафиксированные изменения
// конфигурации. Возвращает канал и функцию отписки.
func (n *Negotiator) Subscribe() (<-chan Config, func()) {
	n.subMu.Lock()
	defer n.subMu.Unlock()

	id := n.nextSubID
	n.nextSubID++

	ch := make(chan Config, 4)
	n.subscribers[id] = ch

	cancel := func() {
		n.subMu.Lock()
		defer n.subMu.Unlock()

		if sub, ok := n.subscribers[id]; ok {
			delete(n.subscribers, id)
			close(sub)
		}
	}

	return ch, cancel
}

// publish рассылает зафиксированную конфигурацию подписчикам.
// Медленный подписчик пропускает событие, но не блокирует коммит.
func (n *Negotiator) publish(committed Config) {
	n.subMu.Lock()
	defer n.subMu.Unlock()

	for _, ch := range n.subscribers {
		select {
		case ch <- committed:
		default:
		}
	}
}
