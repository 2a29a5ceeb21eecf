// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/as_manager/internal/database/database"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler handles health check requests.
type Handler struct {
	db       *gorm.DB
	sessions Pinger
	logger   *zap.SugaredLogger
}

// New creates a new health handler instance.
func New(db *gorm.DB, sessions Pinger, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:       db,
		sessions: sessions,
		logger:   logger,
	}
}

// Response represents health check response.
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp := Response{Status: "ok", Database: "ok", Sessions: "ok"}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("database health check failed", "error", err)
		resp.Status, resp.Database = "unhealthy", "unavailable"
	}

	if err := h.sessions.Ping(ctx); err != nil {
		h.logger.Warnw("session store health check failed", "error", err)
		resp.Status, resp.Sessions = "unhealthy", "unavailable"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
