package model

import "github.com/festy23/as_manager/internal/apperror"

var (
	// ErrEventNotFound indicates that the requested event does not exist.
	ErrEventNotFound = apperror.New(apperror.CodeNotFound, "event not found")
	// ErrInvalidName indicates an empty or overlong event name.
	ErrInvalidName = apperror.New(apperror.CodeInvalid, "event name is required and must be at most 255 characters")
	// ErrMissingStart indicates an event without a start time.
	ErrMissingStart = apperror.New(apperror.CodeInvalid, "start time is required")
	// ErrEndBeforeStart indicates an end time earlier than the start time.
	ErrEndBeforeStart = apperror.New(apperror.CodeInvalid, "end time must not be before start time")
)
