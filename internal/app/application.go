package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"camera-gateway/internal/auth"
	"camera-gateway/internal/camera"
	"camera-gateway/internal/config"
	"camera-gateway/internal/handler"
	"camera-gateway/internal/storage"
)

// Application - основное приложение
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	router     http.Handler
	server     *http.Server
	sessions   *auth.SessionManager
	negotiator *camera.Negotiator
	catalog    *camera.Catalog
	store      storage.Store
}

// NewApplication собирает приложение: хранилище, справочник режимов,
// негошиатор, менеджер сессий, хендлеры и роутер
func NewApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Application, error) {
	// Хранилище конфигурации
	store, err := newStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create config store: %w", err)
	}

	// Справочник режимов захвата
	catalog, err := camera.NewCatalog(ctx, newEnumerator(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build capability catalog: %w", err)
	}
	logger.Info("Capability catalog built",
		zap.Strings("devices", catalog.Devices()))

	// Негошиатор конфигурации
	negotiator, err := camera.NewNegotiator(ctx, catalog, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create config negotiator: %w", err)
	}

	// Проверка пароля. Без хеша сервер стартует, но логин будет
	// отвечать внутренней ошибкой до запуска set-password.
	var verifier *auth.Verifier
	if cfg.Auth.PasswordHash == "" {
		logger.Warn("No password hash configured, run the set-password command")
	} else {
		verifier, err = auth.NewVerifier(cfg.Auth.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("configured password hash is invalid: %w", err)
		}
	}

	// Менеджер сессий
	sessions := auth.NewSessionManager(cfg.Session.TTL, cfg.Session.Sliding, logger)

	// Хендлеры
	authHandler := handler.NewAuthHandler(logger, verifier, sessions, cfg.Session)
	configHandler := handler.NewConfigHandler(logger, negotiator, catalog)
	eventsHandler := handler.NewEventsHandler(logger, negotiator)

	streamHandler, err := handler.NewStreamHandler(logger, cfg.Stream.UpstreamURL)
	if err != nil {
		return nil, err
	}

	// Роутер
	router := NewRouter(RouterDeps{
		Auth:       authHandler,
		Config:     configHandler,
		Stream:     streamHandler,
		Events:     eventsHandler,
		Sessions:   sessions,
		CookieName: cfg.Session.CookieName,
	}, logger)

	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: router,
	}

	return &Application{
		config:     cfg,
		logger:     logger,
		router:     router,
		server:     server,
		sessions:   sessions,
		negotiator: negotiator,
		catalog:    catalog,
		store:      store,
	}, nil
}

// newStore создает хранилище конфигурации по настройкам
func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store.Backend {
	case "file":
		return storage.NewFileStore(cfg.Store.Path)
	case "redis":
		return storage.NewRedisStore(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newEnumerator выбирает источник перечисления устройств:
// статический список из конфигурации или v4l2
func newEnumerator(cfg *config.Config, logger *zap.Logger) camera.Enumerator {
	if len(cfg.Camera.Devices) > 0 {
		return camera.NewStaticEnumerator(cfg.Camera.Devices)
	}

	return camera.NewV4L2Enumerator(logger)
}

// BuildCatalog строит справочник режимов по настройкам.
// Используется командой devices без запуска сервера.
func BuildCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*camera.Catalog, error) {
	catalog, err := camera.NewCatalog(ctx, newEnumerator(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build capability catalog: %w", err)
	}

	return catalog, nil
}

// Run запускает приложение и блокируется до отмены контекста
// или ошибки сервера
func (app *Application) Run(ctx context.Context) error {
	// Фоновая уборка истекших сессий
	app.sessions.StartReaper(ctx, app.config.Session.ReapInterval)

	errChan := make(chan error, 1)
	go func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr))

		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		app.logger.Info("Shutdown signal received")
	case err := <-errChan:
		app.logger.Error("HTTP server failed", zap.Error(err))
		return err
	}

	return app.Stop()
}

// Stop останавливает приложение с таймаутом на graceful shutdown
func (app *Application) Stop() error {
	app.logger.Info("Stopping application")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	app.logger.Info("Application stopped")
	return nil
}

// GetRouter возвращает роутер
func (app *Application) GetRouter() http.Handler {
	return app.router
}
