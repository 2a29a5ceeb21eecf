package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/as_manager/internal/apperror"
)

func TestTeam_TableName(t *testing.T) {
	assert.Equal(t, "teams", Team{}.TableName())
}

func TestTeam_HasContact(t *testing.T) {
	contact := int64(3)
	assert.False(t, Team{}.HasContact(3))
	assert.True(t, Team{ContactPersonID: &contact}.HasContact(3))
	assert.False(t, Team{ContactPersonID: &contact}.HasContact(4))
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int64
		wantErr bool
	}{
		{name: "empty", input: "", want: []int64{}},
		{name: "blanks only", input: " , ,", want: []int64{}},
		{name: "single", input: "7", want: []int64{7}},
		{name: "unsorted with spaces", input: "3, 1 ,2", want: []int64{1, 2, 3}},
		{name: "duplicates", input: "2,2,1,2", want: []int64{1, 2}},
		{name: "not a number", input: "1,abc", wantErr: true},
		{name: "negative", input: "-4", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDList(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperror.ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatIDList(t *testing.T) {
	assert.Equal(t, "", FormatIDList(nil))
	assert.Equal(t, "1,20,3", FormatIDList([]int64{1, 20, 3}))
}

func TestPlan_Empty(t *testing.T) {
	assert.True(t, Plan{}.Empty())
	assert.False(t, Plan{Add: []int64{1}}.Empty())
	assert.False(t, Plan{Remove: []int64{1}}.Empty())
}

func TestPlayersNotFound(t *testing.T) {
	err := PlayersNotFound([]int64{4, 9})
	assert.ErrorIs(t, err, apperror.ErrInvalid)
	assert.EqualError(t, err, "unknown players: 4,9")
	assert.Equal(t, "added", apperror.Field(err))
}
