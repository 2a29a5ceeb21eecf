// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/statistics/handler"
)

// RegisterRoutes registers the dashboard and the statistics endpoint.
func RegisterRoutes(pages, api gin.IRoutes, h *handler.Handler) {
	pages.GET("/", h.Dashboard)
	api.GET("/stats", h.GetStats)
}
