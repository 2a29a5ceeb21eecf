// Package handler provides HTTP handlers for the dashboard and statistics endpoint.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/statistics/service"
	"github.com/festy23/as_manager/internal/web"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Dashboard handles GET /.
func (h *Handler) Dashboard(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting roster summary", "error", err)
	}
	view := web.Load(summary, err)
	web.Render(c, view.HTTPStatus(), "dashboard", web.Page{Title: "Dashboard", Data: view})
}

// GetStats handles GET /api/stats.
func (h *Handler) GetStats(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting roster summary", "error", err)
		web.JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
