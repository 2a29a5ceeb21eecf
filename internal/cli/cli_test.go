package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/config"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	teamModel "github.com/festy23/as_manager/internal/team/model"
	"github.com/festy23/as_manager/internal/testutil"
)

func run(t *testing.T, db *gorm.DB, args ...string) (string, error) {
	t.Helper()

	rt := &Runtime{
		Config: config.Config{Auth: config.AuthConfig{Hasher: config.HasherSHA3, TokenTTL: time.Hour}},
		Logger: testutil.Logger(t),
		OpenDB: func(context.Context) (*gorm.DB, error) { return db, nil },
	}
	cmd := NewRootCmd(rt)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestPlayerCommands(t *testing.T) {
	db := testutil.NewDB(t)

	out, err := run(t, db, "player", "create", "--email", "ace@clan.gg", "--tag", "Ace")
	require.NoError(t, err)
	assert.Contains(t, out, "created player Ace (id 1)")

	_, err = run(t, db, "player", "create", "--email", "bolt@clan.gg", "--tag", "Bolt", "--password", "hunter22")
	require.NoError(t, err)

	t.Run("list as table", func(t *testing.T) {
		out, err := run(t, db, "player", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "TAG")
		assert.Contains(t, out, "ace@clan.gg")
		assert.Contains(t, out, "bolt@clan.gg")
	})

	t.Run("filtered list as json", func(t *testing.T) {
		out, err := run(t, db, "-o", "json", "player", "list", "-q", "bol")
		require.NoError(t, err)

		var resp playerModel.ListResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "Bolt", resp.Players[0].TagName)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := run(t, db, "player", "create", "--email", "ace@clan.gg", "--tag", "Other")
		require.Error(t, err)
		assert.Equal(t, apperror.CodeAlreadyExists, apperror.CodeOf(err))
	})

	t.Run("missing required flag", func(t *testing.T) {
		_, err := run(t, db, "player", "create", "--email", "x@clan.gg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"tag"`)
	})
}

func TestTeamCommands(t *testing.T) {
	db := testutil.NewDB(t)
	ace := testutil.CreatePlayer(t, db, "ace@clan.gg", "Ace")
	bolt := testutil.CreatePlayer(t, db, "bolt@clan.gg", "Bolt")
	team := testutil.CreateTeam(t, db, "Alpha")

	out, err := run(t, db, "team", "save", "1", "--add", "1,2")
	require.NoError(t, err)
	assert.Contains(t, out, "saved team Alpha: 2 added, 0 removed")
	assert.Contains(t, out, "Contact: none")

	out, err = run(t, db, "team", "save", "1", "--remove", "2", "--contact", "1", "--name", "Alpha Squad")
	require.NoError(t, err)
	assert.Contains(t, out, "saved team Alpha Squad: 0 added, 1 removed")
	assert.Contains(t, out, "contact")

	out, err = run(t, db, "-o", "json", "team", "show", "1")
	require.NoError(t, err)
	var details teamModel.Details
	require.NoError(t, json.Unmarshal([]byte(out), &details))
	assert.Equal(t, team.ID, details.Team.ID)
	assert.Equal(t, "Alpha Squad", details.Team.Name)
	require.Len(t, details.Members, 1)
	assert.Equal(t, ace.ID, details.Members[0].ID)
	assert.True(t, details.Team.HasContact(ace.ID))
	assert.NotEqual(t, bolt.ID, details.Members[0].ID)

	t.Run("unknown team", func(t *testing.T) {
		_, err := run(t, db, "team", "show", "99")
		require.Error(t, err)
		assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
	})

	t.Run("invalid team id", func(t *testing.T) {
		_, err := run(t, db, "team", "show", "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid team id")
	})

	t.Run("invalid add list", func(t *testing.T) {
		_, err := run(t, db, "team", "save", "1", "--add", "1,x")
		require.Error(t, err)
		assert.Equal(t, apperror.CodeInvalid, apperror.CodeOf(err))
	})
}

func TestStatsCommand(t *testing.T) {
	db := testutil.NewDB(t)
	p := testutil.CreatePlayer(t, db, "ace@clan.gg", "Ace")
	team := testutil.CreateTeam(t, db, "Alpha")
	testutil.AssignTeam(t, db, team.ID, p.ID)

	out, err := run(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "players without team")
	assert.Contains(t, out, "Alpha")

	out, err = run(t, db, "--output", "json", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_players": 1`)
	assert.Contains(t, out, `"players_without_team": 0`)
}

func TestRootCommand(t *testing.T) {
	t.Run("invalid output format", func(t *testing.T) {
		_, err := run(t, testutil.NewDB(t), "--output", "yaml", "stats")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --output")
	})

	t.Run("database unavailable", func(t *testing.T) {
		cmd := NewRootCmd(&Runtime{
			Logger: testutil.Logger(t),
			OpenDB: func(context.Context) (*gorm.DB, error) { return nil, errors.New("connection refused") },
		})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"stats"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open database")
	})
}
