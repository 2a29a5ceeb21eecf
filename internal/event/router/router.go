// Package router provides event module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/event/handler"
)

// RegisterRoutes registers event pages and API endpoints.
func RegisterRoutes(pages, api gin.IRoutes, h *handler.Handler) {
	pages.GET("/events", h.List)
	pages.GET("/events/new", h.New)
	pages.POST("/events", h.Create)
	pages.GET("/events/:id", h.Show)
	pages.GET("/events/:id/edit", h.Edit)
	pages.POST("/events/:id", h.Update)
	pages.POST("/events/:id/join", h.Join)
	pages.POST("/events/:id/leave", h.Leave)

	api.GET("/events", h.ListAPI)
	api.GET("/events/:id", h.GetAPI)
}
