// Package router provides auth module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/auth/handler"
)

// RegisterRoutes registers the public login and registration pages, the
// logout action and the token endpoint.
func RegisterRoutes(public, pages, api gin.IRoutes, h *handler.Handler) {
	public.GET("/login", h.LoginForm)
	public.POST("/login", h.Login)
	public.GET("/register", h.RegisterForm)
	public.POST("/register", h.Register)
	pages.POST("/logout", h.Logout)
	api.POST("/token", h.Token)
}
