package web

import (
	"errors"
	"net/http"

	"github.com/festy23/as_manager/internal/apperror"
)

// Status is the state of a View.
type Status int

// View states.
const (
	StatusReady Status = iota
	StatusNotFound
	StatusFailed
)

// View is what a detail page shows: the loaded value, a not-found notice,
// or a failure message. Only the field matching Status is meaningful.
type View[T any] struct {
	Status  Status
	Value   T
	Message string
}

// Ready returns a view showing value.
func Ready[T any](value T) View[T] {
	return View[T]{Status: StatusReady, Value: value}
}

// NotFound returns a not-found view.
func NotFound[T any](message string) View[T] {
	return View[T]{Status: StatusNotFound, Message: message}
}

// Failed returns a failure view for err. Storage details are not shown.
func Failed[T any](err error) View[T] {
	return View[T]{Status: StatusFailed, Message: apperror.Message(err)}
}

// Load builds a view from the result of a lookup.
func Load[T any](value T, err error) View[T] {
	switch {
	case err == nil:
		return Ready(value)
	case errors.Is(err, apperror.ErrNotFound):
		return NotFound[T](apperror.Message(err))
	default:
		return Failed[T](err)
	}
}

// IsReady reports whether the value was loaded.
func (v View[T]) IsReady() bool { return v.Status == StatusReady }

// IsNotFound reports whether the value does not exist.
func (v View[T]) IsNotFound() bool { return v.Status == StatusNotFound }

// IsFailed reports whether loading failed.
func (v View[T]) IsFailed() bool { return v.Status == StatusFailed }

// HTTPStatus is the response status for the view.
func (v View[T]) HTTPStatus() int {
	switch v.Status {
	case StatusReady:
		return http.StatusOK
	case StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
