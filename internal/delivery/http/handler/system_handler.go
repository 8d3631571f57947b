package handler

import (
	"net/http"
	"time"

	"datacenter-inventory/internal/events"
	"datacenter-inventory/internal/metrics"
	"datacenter-inventory/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves health, metrics and the live event stream
type SystemHandler struct {
	hub       *events.Hub
	recorder  *metrics.Recorder
	startedAt time.Time
}

func NewSystemHandler(hub *events.Hub, recorder *metrics.Recorder) *SystemHandler {
	return &SystemHandler{hub: hub, recorder: recorder, startedAt: time.Now()}
}

func (h *SystemHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.Health)
	if h.recorder != nil {
		router.GET("/metrics", gin.WrapH(h.recorder.Handler()))
	}
}

// RegisterStreamRoutes adds the websocket endpoint, which needs a token
func (h *SystemHandler) RegisterStreamRoutes(router *gin.RouterGroup) {
	router.GET("/events", h.Events)
}

func (h *SystemHandler) Health(c *gin.Context) {
	data := gin.H{
		"status": "healthy",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	}
	if h.hub != nil {
		data["stream_clients"] = h.hub.ClientCount()
	}
	utils.SuccessResponse(c, http.StatusOK, "Service is healthy", data)
}

func (h *SystemHandler) Events(c *gin.Context) {
	if h.hub == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Event stream is disabled")
		return
	}
	h.hub.ServeWS(c.Writer, c.Request)
}
