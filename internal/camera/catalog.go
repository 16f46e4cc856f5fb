package camera

import (
	"context"
	"fmt"
	"sort"
)

// Enumerator - внешний коллаборатор, перечисляющий устройства захвата
// и их режимы
type Enumerator interface {
	Enumerate(ctx context.Context) (map[string][]Capability, error)
}

// Catalog - неизменяемый справочник режимов захвата по устройствам.
// Строится один раз на старте из результата Enumerator.
type Catalog struct {
	devices map[string][]Capability
}

// NewCatalog опрашивает перечислитель и кеширует результат
func NewCatalog(ctx context.Context, enumerator Enumerator) (*Catalog, error) {
	devices, err := enumerator.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate capture devices: %w", err)
	}

	// Копия с дедупликацией: набор режимов устройства не содержит
	// повторяющихся пар (разрешение, частота)
	cached := make(map[string][]Capability, len(devices))
	for device, caps := range devices {
		seen := make(map[Capability]bool, len(caps))
		ordered := make([]Capability, 0, len(caps))
		for _, capability := range caps {
			if seen[capability] {
				continue
			}
			seen[capability] = true
			ordered = append(ordered, capability)
		}
		cached[device] = ordered
	}

	return &Catalog{devices: cached}, nil
}

// Supports сообщает, может ли устройство выдавать режим (resolution, framerate)
func (c *Catalog) Supports(device string, resolution Resolution, framerate int) bool {
	for _, capability := range c.devices[device] {
		if capability.Resolution == resolution && capability.Framerate == framerate {
			return true
		}
	}

	return false
}

// HasDevice сообщает, известно ли устройство справочнику
func (c *Catalog) HasDevice(device string) bool {
	_, ok := c.devices[device]
	return ok
}

// ListOptions возвращает режимы устройства в порядке перечисления.
// Для неизвестного устройства возвращается пустой список, не ошибка.
func (c *Catalog) ListOptions(device string) []Capability {
	caps := c.devices[device]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// Devices возвращает отсортированный список известных устройств
func (c *Catalog) Devices() []string {
	devices := make([]string, 0, len(c.devices))
	for device := range c.devices {
		devices = append(devices, device)
	}
	sort.Strings(devices)
	return devices
}

// All возвращает копию всего справочника для выдачи клиенту
func (c *Catalog) All() map[string][]Capability {
	out := make(map[string][]Capability, len(c.devices))
	for device := range c.devices {
		out[device] = c.ListOptions(device)
	}
	return out
}
