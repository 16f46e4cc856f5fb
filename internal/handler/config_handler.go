package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"camera-gateway/internal/camera"
)

// ConfigHandler обрабатывает чтение и обновление конфигурации захвата
type ConfigHandler struct {
	logger     *zap.Logger
	negotiator *camera.Negotiator
	catalog    *camera.Catalog
}

// NewConfigHandler создает новый хендлер конфигурации
func NewConfigHandler(
	logger *zap.Logger,
	negotiator *camera.Negotiator,
	catalog *camera.Catalog,
) *ConfigHandler {
	return &ConfigHandler{
		logger:     logger,
		negotiator: negotiator,
		catalog:    catalog,
	}
}

// RegisterRoutes регистрирует маршруты в защищенной группе
func (h *ConfigHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.HEAD("/config", h.HeadConfig)
	router.GET("/config", h.GetConfig)
	router.PUT("/config", h.PutConfig)
	router.GET("/capabilities", h.GetCapabilities)
}

// HeadConfig - проба аутентификации: до сюда доходят только
// запросы с валидной сессией
func (h *ConfigHandler) HeadConfig(c *gin.Context) {
	c.Status(http.StatusOK)
}

// GetConfig возвращает текущую конфигурацию захвата
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.negotiator.Current())
}

// PutConfig валидирует кандидата и фиксирует его целиком.
// 400 с указанием поля при ошибке валидации, 500 при отказе хранилища.
func (h *ConfigHandler) PutConfig(c *gin.Context) {
	var candidate camera.Config
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "body must be a capture config JSON object",
		})
		return
	}

	committed, err := h.negotiator.Propose(c.Request.Context(), candidate)
	if err != nil {
		var validationErr *camera.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   validationErr.Code,
				"field":   validationErr.Field,
				"message": validationErr.Message,
			})
			return
		}

		h.logger.Error("Failed to commit capture config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	c.JSON(http.StatusOK, committed)
}

// GetCapabilities возвращает справочник режимов: для одного
// устройства через ?device=, иначе для всех
func (h *ConfigHandler) GetCapabilities(c *gin.Context) {
	if device := c.Query("device"); device != "" {
		c.JSON(http.StatusOK, gin.H{
			"device":       device,
			"capabilities": h.catalog.ListOptions(device),
		})
		return
	}

	c.JSON(http.StatusOK, h.catalog.All())
}
