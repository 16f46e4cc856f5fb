package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config представляет конфигурацию приложения
type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Auth
	Auth AuthConfig `yaml:"auth"`

	// Session
	Session SessionConfig `yaml:"session"`

	// Store
	Store StoreConfig `yaml:"store"`

	// Stream
	Stream StreamConfig `yaml:"stream"`

	// Camera
	Camera CameraConfig `yaml:"camera"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// AuthConfig содержит настройки проверки пароля
type AuthConfig struct {
	// PasswordHash - закодированный argon2id хеш мастер-пароля.
	// Заполняется командой set-password, пароль в открытом виде не хранится.
	PasswordHash string `yaml:"password_hash"`
}

// SessionConfig содержит настройки жизненного цикла сессий
type SessionConfig struct {
	TTL          time.Duration `yaml:"ttl"`
	CookieName   string        `yaml:"cookie_name"`
	Sliding      bool          `yaml:"sliding"`
	Secure       bool          `yaml:"secure"`
	ReapInterval time.Duration `yaml:"reap_interval"`
}

// sessionConfigYAML - промежуточное представление: yaml.v3 не умеет
// разбирать строки вида "30m" в time.Duration
type sessionConfigYAML struct {
	TTL          string `yaml:"ttl,omitempty"`
	CookieName   string `yaml:"cookie_name,omitempty"`
	Sliding      *bool  `yaml:"sliding,omitempty"`
	Secure       *bool  `yaml:"secure,omitempty"`
	ReapInterval string `yaml:"reap_interval,omitempty"`
}

// UnmarshalYAML разбирает длительности через time.ParseDuration.
// Пропущенные поля не затирают уже установленные значения.
func (s *SessionConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw sessionConfigYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.TTL != "" {
		ttl, err := time.ParseDuration(raw.TTL)
		if err != nil {
			return fmt.Errorf("invalid session ttl: %w", err)
		}
		s.TTL = ttl
	}
	if raw.ReapInterval != "" {
		interval, err := time.ParseDuration(raw.ReapInterval)
		if err != nil {
			return fmt.Errorf("invalid session reap_interval: %w", err)
		}
		s.ReapInterval = interval
	}
	if raw.CookieName != "" {
		s.CookieName = raw.CookieName
	}
	if raw.Sliding != nil {
		s.Sliding = *raw.Sliding
	}
	if raw.Secure != nil {
		s.Secure = *raw.Secure
	}

	return nil
}

// MarshalYAML записывает длительности строками
func (s SessionConfig) MarshalYAML() (interface{}, error) {
	return sessionConfigYAML{
		TTL:          s.TTL.String(),
		CookieName:   s.CookieName,
		Sliding:      &s.Sliding,
		Secure:       &s.Secure,
		ReapInterval: s.ReapInterval.String(),
	}, nil
}

// StoreConfig содержит настройки хранилища конфигурации камеры
type StoreConfig struct {
	// Backend: "file", "redis" или "memory"
	Backend string `yaml:"backend"`
	// Path - директория для файлового хранилища
	Path string `yaml:"path"`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StreamConfig содержит настройки видеострима
type StreamConfig struct {
	// UpstreamURL - адрес внешнего сервиса, который отдает видеострим
	UpstreamURL string `yaml:"upstream_url"`
}

// CameraConfig содержит настройки перечисления камер
type CameraConfig struct {
	// Devices - статический список устройств. Если пустой,
	// устройства обнаруживаются через v4l2.
	Devices []DeviceConfig `yaml:"devices"`
}

// DeviceConfig описывает одно устройство захвата
type DeviceConfig struct {
	Device       string             `yaml:"device"`
	Capabilities []CapabilityConfig `yaml:"capabilities"`
}

// CapabilityConfig описывает поддерживаемый режим захвата
type CapabilityConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	Framerate int `yaml:"framerate"`
}

// LoggingConfig содержит настройки логирования
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadConfig загружает конфигурацию из файла
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save записывает конфигурацию в файл
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// Address возвращает адрес HTTP сервера
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetDefaultConfig возвращает конфигурацию по умолчанию
func GetDefaultConfig() *Config {
	return &Config{
		Host: "0.0.0.0",
		Port: 8080,
		Session: SessionConfig{
			TTL:          time.Hour,
			CookieName:   "session_token",
			Sliding:      false,
			Secure:       false,
			ReapInterval: 5 * time.Minute,
		},
		Store: StoreConfig{
			Backend: "file",
			Path:    "./data",
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				Password: "",
				DB:       0,
			},
		},
		Stream: StreamConfig{
			UpstreamURL: "http://localhost:8554/stream",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
