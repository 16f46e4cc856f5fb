package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"camera-gateway/internal/camera"
)

// EventsHandler пушит зафиксированные изменения конфигурации
// захвата по WebSocket аутентифицированным подписчикам
type EventsHandler struct {
	logger     *zap.Logger
	negotiator *camera.Negotiator
	upgrader   websocket.Upgrader
}

// NewEventsHandler создает новый хендлер событий
func NewEventsHandler(logger *zap.Logger, negotiator *camera.Negotiator) *EventsHandler {
	return &EventsHandler{
		logger:     logger,
		negotiator: negotiator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes регистрирует маршрут событий в защищенной группе
func (h *EventsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/events", h.Events)
}

// Events апгрейдит соединение и шлет подписчику текущую конфигурацию
// и каждое последующее зафиксированное изменение
func (h *EventsHandler) Events(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "websocket_upgrade_failed"})
		return
	}
	defer conn.Close()

	events, cancel := h.negotiator.Subscribe()
	defer cancel()

	// Чтение нужно только для обнаружения закрытия клиентом
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Сразу отдаем текущее состояние
	if err := h.writeConfig(conn, h.negotiator.Current()); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case committed, ok := <-events:
			if !ok {
				return
			}
			if err := h.writeConfig(conn, committed); err != nil {
				return
			}
		}
	}
}

// writeConfig отправляет конфигурацию одним JSON сообщением
func (h *EventsHandler) writeConfig(conn *websocket.Conn, cfg camera.Config) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(gin.H{"event": "config", "config": cfg}); err != nil {
		h.logger.Debug("WebSocket subscriber gone", zap.Error(err))
		return err
	}

	return nil
}
