package handler

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StreamHandler проксирует видеострим с внешнего сервиса захвата.
// Ядро решает только, может ли запрос дойти до стрима; сам
// видеопоток производится коллаборатором.
type StreamHandler struct {
	logger *zap.Logger
	proxy  *httputil.ReverseProxy
}

// NewStreamHandler создает прокси на upstream сервис стрима
func NewStreamHandler(logger *zap.Logger, upstreamURL string) (*StreamHandler, error) {
	upstream, err := url.Parse(upstreamURL)
	if err != nil {
		return nil, fmt.Errorf("invalid stream upstream url %q: %w", upstreamURL, err)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(upstream)
			r.Out.URL.Path = upstream.Path
			r.Out.Host = upstream.Host
		},
		// Буферизация выключена: стрим отдается по мере поступления
		FlushInterval: -1,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn("Stream upstream unavailable",
				zap.String("upstream", upstream.String()),
				zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	return &StreamHandler{
		logger: logger,
		proxy:  proxy,
	}, nil
}

// RegisterRoutes регистрирует маршрут стрима в защищенной группе
func (h *StreamHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stream", h.GetStream)
}

// GetStream пересылает запрос на upstream. Кеширование запрещено.
func (h *StreamHandler) GetStream(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	h.proxy.ServeHTTP(c.Writer, c.Request)
}
