// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/team/handler"
)

// RegisterRoutes registers team pages and API endpoints.
func RegisterRoutes(pages, api gin.IRoutes, h *handler.Handler) {
	pages.GET("/teams", h.List)
	pages.GET("/teams/new", h.New)
	pages.POST("/teams", h.Create)
	pages.GET("/teams/:id", h.Show)
	pages.GET("/teams/:id/edit", h.Edit)
	pages.POST("/teams/:id", h.Update)

	api.GET("/teams", h.ListAPI)
	api.POST("/teams", h.CreateAPI)
	api.GET("/teams/:id", h.GetAPI)
	api.PUT("/teams/:id", h.SaveAPI)
}
