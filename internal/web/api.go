package web

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/apperror"
)

// ErrorResponse is the JSON error body of the API.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewErrorResponse builds the error body for err.
func NewErrorResponse(err error) ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = string(apperror.CodeOf(err))
	resp.Error.Message = apperror.Message(err)
	return resp
}

// JSONError writes err as a JSON error with the status of its code.
func JSONError(c *gin.Context, err error) {
	c.JSON(apperror.CodeOf(err).HTTPStatus(), NewErrorResponse(err))
}

// AbortJSONError is like JSONError but stops the handler chain.
func AbortJSONError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperror.CodeOf(err).HTTPStatus(), NewErrorResponse(err))
}

// IsAPI reports whether the request targets the JSON API.
func IsAPI(c *gin.Context) bool {
	path := c.Request.URL.Path
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
