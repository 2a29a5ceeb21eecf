package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/auth/session"
	"github.com/festy23/as_manager/internal/auth/token"
	"github.com/festy23/as_manager/internal/web"
)

// ErrAuthRequired is returned to API clients without credentials.
var ErrAuthRequired = apperror.New(apperror.CodeInvalidLogin, "authentication required")

// SessionResolver resolves a session token.
type SessionResolver interface {
	Session(ctx context.Context, token string) (*session.Session, error)
}

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// LoadSession attaches the session named by the cookie to the request
// context. Unknown or expired tokens are ignored and the cookie is
// cleared. A failing session store aborts with 503.
func LoadSession(resolver SessionResolver, cookieName string, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		sess, err := resolver.Session(c.Request.Context(), raw)
		switch {
		case err == nil:
			c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
		case errors.Is(err, session.ErrSessionNotFound):
			http.SetCookie(c.Writer, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
		default:
			logger.Errorw("session lookup failed", "request_id", GetRequestID(c), "error", err)
			abort(c, err)
			return
		}
		c.Next()
	}
}

// RequireSession rejects requests without a session. Pages are
// redirected to the login form, API requests get 401.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := session.FromContext(c.Request.Context()); err == nil {
			c.Next()
			return
		}
		if web.IsAPI(c) {
			web.AbortJSONError(c, ErrAuthRequired)
			return
		}
		c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// RequireAPIAuth accepts a session loaded by LoadSession or an
// "Authorization: Bearer" token.
func RequireAPIAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := session.FromContext(c.Request.Context()); err == nil {
			c.Next()
			return
		}

		raw, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			web.AbortJSONError(c, ErrAuthRequired)
			return
		}
		claims, err := parser.Parse(raw)
		if err != nil {
			web.AbortJSONError(c, err)
			return
		}
		playerID, err := claims.PlayerID()
		if err != nil {
			web.AbortJSONError(c, err)
			return
		}

		sess := &session.Session{PlayerID: playerID, TagName: claims.TagName}
		if claims.IssuedAt != nil {
			sess.CreatedAt = claims.IssuedAt.Time
		}
		if claims.ExpiresAt != nil {
			sess.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
		c.Next()
	}
}

func bearer(header string) (string, bool) {
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func abort(c *gin.Context, err error) {
	if web.IsAPI(c) {
		web.AbortJSONError(c, err)
		return
	}
	c.Abort()
	web.RenderError(c, err)
}
