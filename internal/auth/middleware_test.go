package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCookie = "session_token"

func newGuardedRouter(manager *SessionManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireSession(manager, testCookie), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": Authenticated(c)})
	})
	return router
}

func TestRequireSession_NoCookie(t *testing.T) {
	manager := NewSessionManager(time.Hour, false, zap.NewNop())
	router := newGuardedRouter(manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}

func TestRequireSession_InvalidToken(t *testing.T) {
	manager := NewSessionManager(time.Hour, false, zap.NewNop())
	router := newGuardedRouter(manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "forged-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSession_ValidSession(t *testing.T) {
	manager := NewSessionManager(time.Hour, false, zap.NewNop())
	router := newGuardedRouter(manager)

	token, err := manager.Create()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())
}

func TestRequireSession_RevokedSession(t *testing.T) {
	manager := NewSessionManager(time.Hour, false, zap.NewNop())
	router := newGuardedRouter(manager)

	token, err := manager.Create()
	require.NoError(t, err)
	manager.Revoke(token)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	router.ServeHTTP(w, req)

	// Отозванная сессия неотличима от отсутствующей
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}
