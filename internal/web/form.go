package web

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/apperror"
)

// InputTimeLayout is the format of datetime-local inputs.
const InputTimeLayout = "2006-01-02T15:04"

// ParseID parses a positive id path parameter.
func ParseID(c *gin.Context, param string) (int64, error) {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Invalid("invalid %s: %q", param, raw)
	}
	return id, nil
}

// ParseOptionalID parses an optional id form value. An empty value is nil.
func ParseOptionalID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperror.Invalid("invalid id: %q", raw)
	}
	return &id, nil
}

// ParseTime parses a datetime-local or RFC 3339 value as UTC.
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(InputTimeLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, apperror.Invalid("invalid time: %q", raw)
	}
	return t, nil
}

// ParseOptionalTime is like ParseTime but an empty value is nil.
func ParseOptionalTime(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := ParseTime(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// QueryLimit reads the optional "limit" query parameter.
func QueryLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return n
}

// FormatOptionalID formats an optional id for a form field.
func FormatOptionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
