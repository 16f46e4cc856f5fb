package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"camera-gateway/internal/auth"
	"camera-gateway/internal/handler"
)

// RouterDeps - хендлеры и гвард, из которых собирается роутер
type RouterDeps struct {
	Auth       *handler.AuthHandler
	Config     *handler.ConfigHandler
	Stream     *handler.StreamHandler
	Events     *handler.EventsHandler
	Sessions   *auth.SessionManager
	CookieName string
}

// NewRouter создает роутер с настройкой маршрутов.
// Какие маршруты защищены, решается здесь, а не в гварде.
func NewRouter(deps RouterDeps, logger *zap.Logger) http.Handler {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			logger.Info("HTTP Request",
				zap.String("method", param.Method),
				zap.String("path", param.Path),
				zap.Int("status", param.StatusCode),
				zap.Duration("latency", param.Latency),
				zap.String("client_ip", param.ClientIP),
			)
			return ""
		},
	}))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "camera-gateway",
			"time":    time.Now().Unix(),
		})
	})

	guard := auth.RequireSession(deps.Sessions, deps.CookieName)

	api := router.Group("/api")
	{
		// Вход и выход доступны без сессии
		deps.Auth.RegisterRoutes(api)

		// Все остальное только с валидной сессией
		protected := api.Group("", guard)
		deps.Config.RegisterRoutes(protected)
		deps.Events.RegisterRoutes(protected)
	}

	// Стрим живет вне /api, но за тем же гвардом
	stream := router.Group("", guard)
	deps.Stream.RegisterRoutes(stream)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "The requested resource was not found",
			"path":    c.Request.URL.Path,
		})
	})

	// CORS оборачивает весь роутер. Credentials нужны для cookie сессии.
	return cors.New(cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)
}

// NewTestRouter создает роутер для тестов без логирования и CORS
func NewTestRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	guard := auth.RequireSession(deps.Sessions, deps.CookieName)

	api := router.Group("/api")
	{
		deps.Auth.RegisterRoutes(api)

		protected := api.Group("", guard)
		if deps.Config != nil {
			deps.Config.RegisterRoutes(protected)
		}
		if deps.Events != nil {
			deps.Events.RegisterRoutes(protected)
		}
	}

	if deps.Stream != nil {
		stream := router.Group("", guard)
		deps.Stream.RegisterRoutes(stream)
	}

	return router
}
