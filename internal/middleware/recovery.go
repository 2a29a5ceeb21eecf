package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/web"
)

var errPanic = apperror.New(apperror.CodeInternal, "internal server error")

// Recovery returns a middleware that recovers from panics and logs them.
// API requests get a JSON error, pages a plain text one.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorw("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"request_id", GetRequestID(c),
					"stack", string(debug.Stack()),
				)

				if web.IsAPI(c) {
					web.AbortJSONError(c, errPanic)
					return
				}
				c.Abort()
				c.String(http.StatusInternalServerError, "internal server error")
			}
		}()

		c.Next()
	}
}
