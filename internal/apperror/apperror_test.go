package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	errPlayerNotFound := New(CodeNotFound, "player not found")

	assert.ErrorIs(t, errPlayerNotFound, ErrNotFound)
	assert.ErrorIs(t, fmt.Errorf("get player: %w", errPlayerNotFound), ErrNotFound)
	assert.NotErrorIs(t, errPlayerNotFound, ErrAlreadyExists)
}

func TestAlreadyExists(t *testing.T) {
	err := AlreadyExists("player", "email", "email", "ace@clan.gg")

	assert.EqualError(t, err, "player with email ace@clan.gg already exists")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, "email", Field(err))
	assert.Equal(t, "ace@clan.gg", err.Metadata["value"])
	assert.Equal(t, CodeAlreadyExists, CodeOf(err))
}

func TestNotFound(t *testing.T) {
	err := NotFound("team", 42)

	assert.EqualError(t, err, "team 42 not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "42", err.Metadata["id"])
}

func TestStorage(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, Storage("op", nil))
	})

	t.Run("raw error is wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Storage("update team", cause)

		assert.ErrorIs(t, err, ErrStorage)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "a storage error occurred, please try again", Message(err))
	})

	t.Run("domain error is kept", func(t *testing.T) {
		err := Storage("find player", NotFound("player", 1))

		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrStorage)
	})
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("boom")))
	assert.Equal(t, "name is required", Message(Invalid("name is required")))
	assert.Equal(t, "team 3 not found", Message(fmt.Errorf("save: %w", NotFound("team", 3))))
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := map[Code]int{
		CodeNotFound:       http.StatusNotFound,
		CodeAlreadyExists:  http.StatusConflict,
		CodeInvalid:        http.StatusBadRequest,
		CodeInvalidLogin:   http.StatusUnauthorized,
		CodeMissingContext: http.StatusUnauthorized,
		CodeAuthBackend:    http.StatusServiceUnavailable,
		CodeStorage:        http.StatusInternalServerError,
		CodeInternal:       http.StatusInternalServerError,
	}
	for code, status := range tests {
		assert.Equal(t, status, code.HTTPStatus(), code)
	}
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
