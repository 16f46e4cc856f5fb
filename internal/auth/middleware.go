package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ключ аутентифицированного принципала в контексте запроса
const principalKey = "auth_principal"

// RequireSession - middleware, пропускающий запрос дальше только
// при валидной сессии. Токен извлекается один раз из cookie;
// глубже по стеку запрос читать cookie не должен.
func RequireSession(sessions *SessionManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || !sessions.Validate(token) {
			// Единый ответ для отсутствующей, истекшей и отозванной
			// сессии: причина отказа не раскрывается
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}

		c.Set(principalKey, true)
		c.Next()
	}
}

// Authenticated сообщает, прошел ли запрос через RequireSession
func Authenticated(c *gin.Context) bool {
	return c.GetBool(principalKey)
}
