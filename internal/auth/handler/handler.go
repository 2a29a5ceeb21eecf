// Package handler provides HTTP handlers for login, registration and API tokens.
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/auth/service"
	"github.com/festy23/as_manager/internal/auth/session"
	"github.com/festy23/as_manager/internal/config"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	"github.com/festy23/as_manager/internal/web"
)

// TokenIssuer signs API tokens.
type TokenIssuer interface {
	Issue(playerID int64, tagName string) (string, time.Time, error)
}

// Handler handles HTTP requests for authentication endpoints.
type Handler struct {
	service service.Service
	tokens  TokenIssuer
	cookie  config.SessionConfig
	logger  *zap.SugaredLogger
}

// New creates a new auth handler instance.
func New(svc service.Service, tokens TokenIssuer, cookie config.SessionConfig, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, tokens: tokens, cookie: cookie, logger: logger}
}

type loginForm struct {
	Email    string `form:"email"    binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type registerForm struct {
	Email    string `form:"email"    binding:"required,email,max=255"`
	TagName  string `form:"tag_name" binding:"required,max=255"`
	Password string `form:"password" binding:"required"`
}

// TokenRequest is the body of POST /api/token.
type TokenRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by POST /api/token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginForm handles GET /login.
func (h *Handler) LoginForm(c *gin.Context) {
	if _, err := session.FromContext(c.Request.Context()); err == nil {
		c.Redirect(http.StatusSeeOther, web.SafeNext(c.Query("next")))
		return
	}
	web.Render(c, http.StatusOK, "auth/login", web.Page{
		Title: "Log in",
		Form:  loginForm{},
		Next:  web.SafeNext(c.Query("next")),
	})
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	bindErr := c.ShouldBind(&form)
	next := web.SafeNext(form.Next)
	page := web.Page{Title: "Log in", Form: form, Next: next}
	if bindErr != nil {
		page.SetBindError(bindErr)
		web.Render(c, http.StatusBadRequest, "auth/login", page)
		return
	}

	sess, err := h.service.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		page.Error = apperror.Message(err)
		web.Render(c, apperror.CodeOf(err).HTTPStatus(), "auth/login", page)
		return
	}

	h.setCookie(c, sess)
	c.Redirect(http.StatusSeeOther, next)
}

// RegisterForm handles GET /register.
func (h *Handler) RegisterForm(c *gin.Context) {
	web.Render(c, http.StatusOK, "auth/register", web.Page{Title: "Register", Form: registerForm{}})
}

// Register handles POST /register and logs the new player in.
func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	bindErr := c.ShouldBind(&form)
	page := web.Page{Title: "Register", Form: form}
	if bindErr != nil {
		page.SetBindError(bindErr)
		web.Render(c, http.StatusBadRequest, "auth/register", page)
		return
	}

	sess, err := h.service.Register(c.Request.Context(), &playerModel.CreatePlayerRequest{
		Email:    form.Email,
		TagName:  strings.TrimSpace(form.TagName),
		Password: form.Password,
	})
	if err != nil {
		web.RenderForm(c, "auth/register", page, err)
		return
	}

	h.setCookie(c, sess)
	web.SetFlash(c, web.FlashSuccess, "Welcome, "+sess.TagName)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles POST /logout.
func (h *Handler) Logout(c *gin.Context) {
	raw, _ := c.Cookie(h.cookie.CookieName)
	if err := h.service.Logout(c.Request.Context(), raw); err != nil {
		web.RenderError(c, err)
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Redirect(http.StatusSeeOther, "/login")
}

// Token handles POST /api/token.
func (h *Handler) Token(c *gin.Context) {
	var req TokenRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.JSONError(c, err)
		return
	}
	player, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		web.JSONError(c, err)
		return
	}
	raw, expires, err := h.tokens.Issue(player.ID, player.TagName)
	if err != nil {
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Token: raw, ExpiresAt: expires})
}

func (h *Handler) setCookie(c *gin.Context, sess *session.Session) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
