package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/festy23/as_manager/internal/apperror"
)

func TestPlayer_TableName(t *testing.T) {
	assert.Equal(t, "players", Player{}.TableName())
}

func TestPlayer_CanLogIn(t *testing.T) {
	assert.False(t, Player{}.CanLogIn())
	assert.True(t, Player{PasswordHash: "abc"}.CanLogIn())
}

func TestPlayer_InTeam(t *testing.T) {
	teamID := int64(7)
	assert.False(t, Player{}.InTeam(7))
	assert.True(t, Player{TeamID: &teamID}.InTeam(7))
	assert.False(t, Player{TeamID: &teamID}.InTeam(8))
}

func TestErrors(t *testing.T) {
	assert.True(t, errors.Is(ErrPlayerNotFound, apperror.ErrNotFound))
	assert.True(t, errors.Is(ErrInvalidEmail, apperror.ErrInvalid))

	err := EmailExists("ace@clan.gg")
	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)
	assert.EqualError(t, err, "player with email ace@clan.gg already exists")

	err = TagNameExists("Ace")
	assert.EqualError(t, err, "player with tag name Ace already exists")
	assert.Equal(t, "tag_name", apperror.Field(err))
}
