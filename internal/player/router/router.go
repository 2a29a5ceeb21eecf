// Package router provides player module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/player/handler"
)

// RegisterRoutes registers player pages and API endpoints.
func RegisterRoutes(pages, api gin.IRoutes, h *handler.Handler) {
	pages.GET("/players", h.List)
	pages.GET("/players/new", h.New)
	pages.POST("/players", h.Create)
	pages.GET("/players/:id", h.Show)
	pages.GET("/players/:id/edit", h.Edit)
	pages.POST("/players/:id", h.Update)

	api.GET("/players", h.ListAPI)
	api.GET("/players/:id", h.GetAPI)
	api.POST("/players", h.CreateAPI)
	api.PUT("/players/:id", h.UpdateAPI)
}
