package camera

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camera-gateway/internal/config"
)

func testEnumerator() *StaticEnumerator {
	return NewStaticEnumerator([]config.DeviceConfig{
		{
			Device: "/dev/video0",
			Capabilities: []config.CapabilityConfig{
				{Width: 640, Height: 480, Framerate: 30},
				{Width: 640, Height: 360, Framerate: 30},
			},
		},
		{
			Device: "/dev/video2",
			Capabilities: []config.CapabilityConfig{
				{Width: 1920, Height: 1080, Framerate: 60},
			},
		},
	})
}

func TestCatalog_Supports(t *testing.T) {
	catalog, err := NewCatalog(context.Background(), testEnumerator())
	require.NoError(t, err)

	assert.True(t, catalog.Supports("/dev/video0", Resolution{640, 480}, 30))
	assert.True(t, catalog.Supports("/dev/video0", Resolution{640, 360}, 30))

	assert.False(t, catalog.Supports("/dev/video0", Resolution{1920, 1080}, 60))
	assert.False(t, catalog.Supports("/dev/video0", Resolution{640, 480}, 25))
	assert.False(t, catalog.Supports("/dev/video1", Resolution{640, 480}, 30))
}

func TestCatalog_ListOptionsUnknownDevice(t *testing.T) {
	catalog, err := NewCatalog(context.Background(), testEnumerator())
	require.NoError(t, err)

	// Неизвестное устройство - пустой список, не ошибка
	assert.Empty(t, catalog.ListOptions("/dev/video9"))
}

func TestCatalog_ListOptionsKeepsOrder(t *testing.T) {
	catalog, err := NewCatalog(context.Background(), testEnumerator())
	require.NoError(t, err)

	options := catalog.ListOptions("/dev/video0")
	require.Len(t, options, 2)
	assert.Equal(t, Capability{Resolution{640, 480}, 30}, options[0])
	assert.Equal(t, Capability{Resolution{640, 360}, 30}, options[1])
}

func TestCatalog_DeduplicatesModes(t *testing.T) {
	enumerator := NewStaticEnumerator([]config.DeviceConfig{
		{
			Device: "/dev/video0",
			Capabilities: []config.CapabilityConfig{
				{Width: 640, Height: 480, Framerate: 30},
				{Width: 640, Height: 480, Framerate: 30},
			},
		},
	})

	catalog, err := NewCatalog(context.Background(), enumerator)
	require.NoError(t, err)

	assert.Len(t, catalog.ListOptions("/dev/video0"), 1)
}

func TestCatalog_Devices(t *testing.T) {
	catalog, err := NewCatalog(context.Background(), testEnumerator())
	require.NoError(t, err)

	assert.Equal(t, []string{"/dev/video0", "/dev/video2"}, catalog.Devices())
}

func TestParseFormats(t *testing.T) {
	output := `ioctl: VIDIOC_ENUM_FMT
	Type: Video Capture

	[0]: 'MJPG' (Motion-JPEG, compressed)
		Size: Discrete 640x480
			Interval: Discrete 0.033s (30.000 fps)
			Interval: Discrete 0.067s (15.000 fps)
		Size: Discrete 1280x720
			Interval: Discrete 0.033s (30.000 fps)
	[1]: 'YUYV' (YUYV 4:2:2)
		Size: Discrete 640x480
			Interval: Discrete 0.033s (30.000 fps)
`

	caps := parseFormats(output)

	assert.Equal(t, []Capability{
		{Resolution{640, 480}, 30},
		{Resolution{640, 480}, 15},
		{Resolution{1280, 720}, 30},
	}, caps)
}

func TestParseFormats_Empty(t *testing.T) {
	assert.Empty(t, parseFormats(""))
}
