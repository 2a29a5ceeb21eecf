// Package router provides platoon module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/platoon/handler"
)

// RegisterRoutes registers platoon pages and API endpoints.
func RegisterRoutes(pages, api gin.IRoutes, h *handler.Handler) {
	pages.GET("/platoons", h.List)
	pages.GET("/platoons/new", h.New)
	pages.POST("/platoons", h.Create)
	pages.GET("/platoons/:id", h.Show)
	pages.GET("/platoons/:id/edit", h.Edit)
	pages.POST("/platoons/:id", h.Update)
	pages.POST("/platoons/:id/players", h.AddPlayer)
	pages.POST("/platoons/:id/players/:playerID/remove", h.RemovePlayer)

	api.GET("/platoons", h.ListAPI)
	api.GET("/platoons/:id", h.GetAPI)
}
