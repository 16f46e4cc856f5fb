package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
host: 127.0.0.1
port: 9090
auth:
  password_hash: "$argon2id$v=19$m=8192,t=3,p=4$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g"
session:
  ttl: 30m
  cookie_name: my_session
  sliding: true
store:
  backend: redis
  redis:
    addr: redis:6379
    db: 2
stream:
  upstream_url: http://capture:8554/live
camera:
  devices:
    - device: /dev/video0
      capabilities:
        - width: 640
          height: 480
          framerate: 30
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Address())
	assert.Contains(t, cfg.Auth.PasswordHash, "$argon2id$")
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "my_session", cfg.Session.CookieName)
	assert.True(t, cfg.Session.Sliding)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "http://capture:8554/live", cfg.Stream.UpstreamURL)
	require.Len(t, cfg.Camera.Devices, 1)
	assert.Equal(t, "/dev/video0", cfg.Camera.Devices[0].Device)
	require.Len(t, cfg.Camera.Devices[0].Capabilities, 1)
	assert.Equal(t, 30, cfg.Camera.Devices[0].Capabilities[0].Framerate)
}

func TestLoadConfig_KeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 3000\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, "session_token", cfg.Session.CookieName)
	assert.Equal(t, 5*time.Minute, cfg.Session.ReapInterval)
	assert.Equal(t, "file", cfg.Store.Backend)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [broken\n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Auth.PasswordHash = "$argon2id$v=19$m=8192,t=3,p=4$AAAA$BBBB"
	cfg.Session.TTL = 2 * time.Hour
	cfg.Camera.Devices = []DeviceConfig{
		{
			Device:       "/dev/video0",
			Capabilities: []CapabilityConfig{{Width: 640, Height: 480, Framerate: 30}},
		},
	}
	require.NoError(t, cfg.Save(path))

	// Пароль не утекает в файл открытым текстом, только хеш
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "password_hash:")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Empty(t, cfg.Auth.PasswordHash)
	assert.False(t, cfg.Session.Sliding)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "./data", cfg.Store.Path)
}
