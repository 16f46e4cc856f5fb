package camera

import (
	"context"

	"camera-gateway/internal/config"
)

// StaticEnumerator отдает устройства, заданные в конфигурационном
// файле. Используется в тестах и на машинах без v4l2.
type StaticEnumerator struct {
	devices []config.DeviceConfig
}

// NewStaticEnumerator создает перечислитель из статического списка устройств
func NewStaticEnumerator(devices []config.DeviceConfig) *StaticEnumerator {
	return &StaticEnumerator{devices: devices}
}

// Enumerate возвращает сконфигурированные устройства и их режимы
func (e *StaticEnumerator) Enumerate(_ context.Context) (map[string][]Capability, error) {
	out := make(map[string][]Capability, len(e.devices))
	for _, device := range e.devices {
		caps := make([]Capability, 0, len(device.Capabilities))
		for _, mode := range device.Capabilities {
			caps = append(caps, Capability{
				Resolution: Resolution{Width: mode.Width, Height: mode.Height},
				Framerate:  mode.Framerate,
			})
		}
		out[device.Device] = caps
	}

	return out, nil
}
