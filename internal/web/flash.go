package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	flashCookieName = "as_flash"
	flashContextKey = "flash"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next page.
type Flash struct {
	Kind    string
	Message string
}

// SetFlash stores a message for the next request.
func SetFlash(c *gin.Context, kind, message string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(kind + ":" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetFlash returns the flash message read by FlashMiddleware, if any.
func GetFlash(c *gin.Context) *Flash {
	v, ok := c.Get(flashContextKey)
	if !ok {
		return nil
	}
	flash, _ := v.(*Flash)
	return flash
}

// FlashMiddleware reads and clears the flash cookie.
func FlashMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(flashCookieName)
		if err == nil && cookie.Value != "" {
			if flash := parseFlash(cookie.Value); flash != nil {
				c.Set(flashContextKey, flash)
			}
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     flashCookieName,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Next()
	}
}

func parseFlash(raw string) *Flash {
	value, err := url.QueryUnescape(raw)
	if err != nil || value == "" {
		return nil
	}
	kind, message, found := strings.Cut(value, ":")
	if !found {
		return &Flash{Kind: FlashInfo, Message: value}
	}
	return &Flash{Kind: kind, Message: message}
}
