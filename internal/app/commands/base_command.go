package commands

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"camera-gateway/internal/config"
)

// CommandContext содержит общий контекст для всех команд
type CommandContext struct {
	Logger     *zap.Logger
	Config     *config.Config
	ConfigPath string
}

// NewCommandContext создает новый контекст команды
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	// Настраиваем логгер
	logger, err := createLogger(c.String("log-level"), c.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// Загружаем конфигурацию
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Warn("Config file not found, using defaults",
			zap.String("path", configPath))
		cfg = config.GetDefaultConfig()
	}

	return &CommandContext{
		Logger:     logger,
		Config:     cfg,
		ConfigPath: configPath,
	}, nil
}

// createLogger создает логгер
func createLogger(level string, debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	var logLevel zapcore.Level
	switch level {
	case "debug":
		logLevel = zap.DebugLevel
	case "warn":
		logLevel = zap.WarnLevel
	case "error":
		logLevel = zap.ErrorLevel
	default:
		logLevel = zap.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevel)

	return cfg.Build()
}
