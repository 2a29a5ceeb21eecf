package model

import "github.com/festy23/as_manager/internal/apperror"

var (
	// ErrPlayerNotFound indicates that the requested player does not exist.
	ErrPlayerNotFound = apperror.New(apperror.CodeNotFound, "player not found")
	// ErrTeamNotFound indicates that the referenced team does not exist.
	ErrTeamNotFound = apperror.New(apperror.CodeNotFound, "team not found")
	// ErrInvalidEmail indicates a missing or malformed email.
	ErrInvalidEmail = apperror.New(apperror.CodeInvalid, "a valid email is required")
	// ErrInvalidTagName indicates a missing or overlong tag name.
	ErrInvalidTagName = apperror.New(apperror.CodeInvalid, "tag name is required and must be at most 255 characters")
)

// EmailExists returns the uniqueness violation for email.
func EmailExists(email string) error {
	return apperror.AlreadyExists("player", "email", "email", email)
}

// TagNameExists returns the uniqueness violation for tag.
func TagNameExists(tag string) error {
	return apperror.AlreadyExists("player", "tag_name", "tag name", tag)
}
