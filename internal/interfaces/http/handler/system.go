package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stocktier/backend/internal/interfaces/http/dto"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler serves liveness and readiness probes
type SystemHandler struct {
	BaseHandler
	db        Pinger
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db, startedAt: time.Now()}
}

// Health reports liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// Ready reports readiness, including database reachability
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.CodeInternalError, "database unreachable"))
			return
		}
	}
	h.Success(c, gin.H{"status": "ready"})
}

// RegisterRoutes registers the probe routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}
