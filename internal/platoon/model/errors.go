package model

import "github.com/festy23/as_manager/internal/apperror"

var (
	// ErrPlatoonNotFound indicates that the requested platoon does not exist.
	ErrPlatoonNotFound = apperror.New(apperror.CodeNotFound, "platoon not found")
	// ErrInvalidName indicates an empty or overlong platoon name.
	ErrInvalidName = apperror.New(apperror.CodeInvalid, "platoon name is required and must be at most 255 characters")
	// ErrLeaderNotFound indicates that the leader does not exist.
	ErrLeaderNotFound = apperror.New(apperror.CodeNotFound, "leader not found")
	// ErrDeputyNotFound indicates that the deputy leader does not exist.
	ErrDeputyNotFound = apperror.New(apperror.CodeNotFound, "deputy leader not found")
	// ErrSameLeader indicates that leader and deputy are the same player.
	ErrSameLeader = apperror.New(apperror.CodeInvalid, "leader and deputy leader must be different players")
	// ErrPlayerNotFound indicates that the player to attach does not exist.
	ErrPlayerNotFound = apperror.New(apperror.CodeNotFound, "player not found")
	// ErrPlayerHasTeam indicates that the player to attach already belongs to a team.
	ErrPlayerHasTeam = apperror.New(apperror.CodeInvalid, "player already belongs to a team")
)
