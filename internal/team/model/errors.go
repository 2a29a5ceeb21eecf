package model

import "github.com/festy23/as_manager/internal/apperror"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = apperror.New(apperror.CodeNotFound, "team not found")
	// ErrInvalidTeamName indicates an empty or overlong team name.
	ErrInvalidTeamName = apperror.New(apperror.CodeInvalid, "team name is required and must be at most 255 characters")
	// ErrContactNotFound indicates that the designated contact person does not exist.
	ErrContactNotFound = apperror.New(apperror.CodeNotFound, "contact person not found")
	// ErrPlatoonNotFound indicates that the referenced platoon does not exist.
	ErrPlatoonNotFound = apperror.New(apperror.CodeNotFound, "platoon not found")
)

// PlayersNotFound reports player ids that were asked to join but do not exist.
func PlayersNotFound(ids []int64) error {
	err := apperror.Invalid("unknown players: %s", FormatIDList(ids))
	err.Metadata = map[string]string{"field": "added", "value": FormatIDList(ids)}
	return err
}
