package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"camera-gateway/internal/auth"
	"camera-gateway/internal/config"
)

// AuthHandler обрабатывает вход и выход
type AuthHandler struct {
	logger   *zap.Logger
	verifier *auth.Verifier
	sessions *auth.SessionManager
	session  config.SessionConfig
}

// NewAuthHandler создает новый хендлер аутентификации
func NewAuthHandler(
	logger *zap.Logger,
	verifier *auth.Verifier,
	sessions *auth.SessionManager,
	session config.SessionConfig,
) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		verifier: verifier,
		sessions: sessions,
		session:  session,
	}
}

// RegisterRoutes регистрирует маршруты. Вход и выход не защищены
// гвардом: логин создает сессию, логаут идемпотентен.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
}

// loginRequest - единственная принимаемая схема тела логина
type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login проверяет пароль и выдает сессию.
// Ответ не раскрывает, чем именно не подошел пароль.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "body must be a JSON object with a password field",
		})
		return
	}

	if h.verifier == nil {
		// Хеш не сконфигурирован - внутренняя ошибка, не 401
		h.logger.Error("Login attempted but no password hash is configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	if !h.verifier.Verify(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.sessions.Create()
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	maxAge := int(h.session.TTL.Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.session.CookieName, token, maxAge, "/", "", h.session.Secure, true)

	// Токен дублируется в теле для не-браузерных клиентов
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"token":      token,
		"expires_in": maxAge,
	})
}

// Logout отзывает предъявленную сессию и сбрасывает cookie.
// Всегда отвечает 200: выход без сессии - no-op.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.session.CookieName); err == nil {
		h.sessions.Revoke(token)
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.Secure, true)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
