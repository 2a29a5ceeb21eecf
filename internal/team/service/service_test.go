package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/festy23/as_manager/internal/apperror"
	platoonModel "github.com/festy23/as_manager/internal/platoon/model"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	teamModel "github.com/festy23/as_manager/internal/team/model"
	"github.com/festy23/as_manager/internal/team/repository"
	"github.com/festy23/as_manager/internal/testutil"
)

func newService(t *testing.T, db *gorm.DB) Service {
	logger := testutil.Logger(t)
	return New(repository.New(db, logger), db, logger)
}

func teamOf(t *testing.T, db *gorm.DB, playerID int64) *int64 {
	t.Helper()
	var p playerModel.Player
	require.NoError(t, db.First(&p, playerID).Error)
	return p.TeamID
}

func TestService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("contact person joins the team", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		team := testutil.CreateTeam(t, db, "Alpha")
		contact := testutil.CreatePlayer(t, db, "p@clan.gg", "P")

		result, err := svc.Save(ctx, team.ID, &teamModel.SaveTeamRequest{
			Name:            "Alpha",
			ContactPersonID: testutil.Int64(contact.ID),
		})

		require.NoError(t, err)
		assert.Equal(t, []int64{contact.ID}, result.Added)
		assert.Empty(t, result.Removed)
		require.NotNil(t, teamOf(t, db, contact.ID))
		assert.Equal(t, team.ID, *teamOf(t, db, contact.ID))
		require.Len(t, result.Members, 1)
		assert.Equal(t, contact.ID, result.Members[0].ID)
	})

	t.Run("contact person in remove set stays a member", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		team := testutil.CreateTeam(t, db, "Alpha")
		contact := testutil.CreatePlayer(t, db, "p@clan.gg", "P")
		testutil.AssignTeam(t, db, team.ID, contact.ID)

		result, err := svc.Save(ctx, team.ID, &teamModel.SaveTeamRequest{
			Name:            "Alpha",
			ContactPersonID: testutil.Int64(contact.ID),
			Removed:         []int64{contact.ID},
		})

		require.NoError(t, err)
		assert.Empty(t, result.Removed)
		require.NotNil(t, teamOf(t, db, contact.ID))
		assert.Equal(t, team.ID, *teamOf(t, db, contact.ID))
	})

	t.Run("empty sets only update scalar fields", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		platoon := testutil.CreatePlatoon(t, db, "First")
		team := testutil.CreateTeam(t, db, "Alpha")
		member := testutil.CreatePlayer(t, db, "m@clan.gg", "M")
		outsider := testutil.CreatePlayer(t, db, "o@clan.gg", "O")
		testutil.AssignTeam(t, db, team.ID, member.ID)

		result, err := svc.Save(ctx, team.ID, &teamModel.SaveTeamRequest{
			Name:      "  Bravo ",
			PlatoonID: testutil.Int64(platoon.ID),
		})

		require.NoError(t, err)
		assert.Equal(t, "Bravo", result.Team.Name)
		require.NotNil(t, result.Team.PlatoonID)
		assert.Equal(t, platoon.ID, *result.Team.PlatoonID)
		assert.Empty(t, result.Added)
		assert.Empty(t, result.Removed)
		assert.Equal(t, team.ID, *teamOf(t, db, member.ID))
		assert.Nil(t, teamOf(t, db, outsider.ID))
	})

	t.Run("adds and removes", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		team := testutil.CreateTeam(t, db, "Alpha")
		stay := testutil.CreatePlayer(t, db, "s@clan.gg", "Stay")
		leave := testutil.CreatePlayer(t, db, "l@clan.gg", "Leave")
		join := testutil.CreatePlayer(t, db, "j@clan.gg", "Join")
		testutil.AssignTeam(t, db, team.ID, stay.ID, leave.ID)

		result, err := svc.Save(ctx, team.ID, &teamModel.SaveTeamRequest{
			Name:    "Alpha",
			Added:   []int64{join.ID, stay.ID},
			Removed: []int64{leave.ID},
		})

		require.NoError(t, err)
		assert.Equal(t, []int64{join.ID}, result.Added)
		assert.Equal(t, []int64{leave.ID}, result.Removed)
		assert.Nil(t, teamOf(t, db, leave.ID))
		assert.Equal(t, team.ID, *teamOf(t, db, join.ID))
		assert.Len(t, result.Members, 2)
	})

	t.Run("removing a player of another team does not touch it", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		alpha := testutil.CreateTeam(t, db, "Alpha")
		bravo := testutil.CreateTeam(t, db, "Bravo")
		other := testutil.CreatePlayer(t, db, "x@clan.gg", "X")
		testutil.AssignTeam(t, db, bravo.ID, other.ID)

		result, err := svc.Save(ctx, alpha.ID, &teamModel.SaveTeamRequest{
			Name:    "Alpha",
			Removed: []int64{other.ID},
		})

		require.NoError(t, err)
		assert.Empty(t, result.Removed)
		assert.Equal(t, bravo.ID, *teamOf(t, db, other.ID))
	})

	t.Run("joining a team detaches from platoon", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		platoon := testutil.CreatePlatoon(t, db, "First")
		team := testutil.CreateTeam(t, db, "Alpha")
		loose := testutil.CreatePlayer(t, db, "l@clan.gg", "Loose")
		require.NoError(t, db.Create(&platoonModel.PlatoonPlayer{PlatoonID: platoon.ID, PlayerID: loose.ID}).Error)

		_, err := svc.Save(ctx, team.ID, &teamModel.SaveTeamRequest{Name: "Alpha", Added: []int64{loose.ID}})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&platoonModel.PlatoonPlayer{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown team", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)

		_, err := svc.Save(ctx, 42, &teamModel.SaveTeamRequest{Name: "Ghost"})
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("validation errors write nothing", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		team := testutil.CreateTeam(t, db, "Alpha")
		p := testutil.CreatePlayer(t, db, "p@clan.gg", "P")

		tests := []struct {
			name    string
			req     teamModel.SaveTeamRequest
			wantErr error
		}{
			{name: "empty name", req: teamModel.SaveTeamRequest{Name: " "}, wantErr: teamModel.ErrInvalidTeamName},
			{name: "unknown contact", req: teamModel.SaveTeamRequest{Name: "New", ContactPersonID: testutil.Int64(999)}, wantErr: teamModel.ErrContactNotFound},
			{name: "unknown platoon", req: teamModel.SaveTeamRequest{Name: "New", PlatoonID: testutil.Int64(999)}, wantErr: teamModel.ErrPlatoonNotFound},
			{name: "unknown player", req: teamModel.SaveTeamRequest{Name: "New", Added: []int64{p.ID, 999}}, wantErr: apperror.ErrInvalid},
			{name: "bad id", req: teamModel.SaveTeamRequest{Name: "New", Removed: []int64{0}}, wantErr: apperror.ErrInvalid},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Save(ctx, team.ID, &tt.req)
				assert.ErrorIs(t, err, tt.wantErr)

				var stored teamModel.Team
				require.NoError(t, db.First(&stored, team.ID).Error)
				assert.Equal(t, "Alpha", stored.Name)
				assert.Nil(t, teamOf(t, db, p.ID))
			})
		}
	})

	t.Run("storage failure mid-reconciliation changes nothing", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		team := testutil.CreateTeam(t, db, "Alpha")
		leave := testutil.CreatePlayer(t, db, "l@clan.gg", "Leave")
		join := testutil.CreatePlayer(t, db, "j@clan.gg", "Join")
		testutil.AssignTeam(t, db, team.ID, leave.ID)

		playerUpdates := 0
		err := db.Callback().Update().Before("gorm:update").Register("test:fail_release", func(tx *gorm.DB) {
			if tx.Statement.Table != "players" {
				return
			}
			playerUpdates++
			if playerUpdates == 2 {
				_ = tx.AddError(errors.New("injected write failure"))
			}
		})
		require.NoError(t, err)

		_, err = svc.Save(ctx, team.ID, &teamModel.SaveTeamRequest{
			Name:    "Renamed",
			Added:   []int64{join.ID},
			Removed: []int64{leave.ID},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrStorage)
		assert.Equal(t, 2, playerUpdates)

		require.NoError(t, db.Callback().Update().Remove("test:fail_release"))
		assert.Nil(t, teamOf(t, db, join.ID))
		assert.Equal(t, team.ID, *teamOf(t, db, leave.ID))
		var stored teamModel.Team
		require.NoError(t, db.First(&stored, team.ID).Error)
		assert.Equal(t, "Alpha", stored.Name)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("create then fetch returns equal scalar fields", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		platoon := testutil.CreatePlatoon(t, db, "First")
		contact := testutil.CreatePlayer(t, db, "c@clan.gg", "C")
		member := testutil.CreatePlayer(t, db, "m@clan.gg", "M")

		created, err := svc.Create(ctx, &teamModel.CreateTeamRequest{
			Name:            "Alpha",
			ContactPersonID: testutil.Int64(contact.ID),
			PlatoonID:       testutil.Int64(platoon.ID),
			Members:         []int64{member.ID},
		})
		require.NoError(t, err)
		assert.NotZero(t, created.Team.ID)
		assert.Equal(t, []int64{contact.ID, member.ID}, created.Added)

		fetched, err := svc.Get(ctx, created.Team.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Team.ID, fetched.ID)
		assert.Equal(t, created.Team.Name, fetched.Name)
		assert.Equal(t, created.Team.ContactPersonID, fetched.ContactPersonID)
		assert.Equal(t, created.Team.PlatoonID, fetched.PlatoonID)

		details, err := svc.Details(ctx, created.Team.ID)
		require.NoError(t, err)
		assert.Len(t, details.Members, 2)
	})

	t.Run("unknown member rolls back the insert", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)

		_, err := svc.Create(ctx, &teamModel.CreateTeamRequest{Name: "Alpha", Members: []int64{77}})
		assert.ErrorIs(t, err, apperror.ErrInvalid)

		var count int64
		require.NoError(t, db.Model(&teamModel.Team{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("invalid name", func(t *testing.T) {
		db := testutil.NewDB(t)
		svc := newService(t, db)
		_, err := svc.Create(ctx, &teamModel.CreateTeamRequest{Name: ""})
		assert.ErrorIs(t, err, teamModel.ErrInvalidTeamName)
	})
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := newService(t, db)
	platoon := testutil.CreatePlatoon(t, db, "First")
	testutil.CreateTeam(t, db, "Bravo")
	alpha := testutil.CreateTeam(t, db, "Alpha")
	require.NoError(t, db.Model(alpha).Update("platoon_id", platoon.ID).Error)

	all, err := svc.Filter(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alpha", all[0].Name)

	filtered, err := svc.Filter(ctx, "rav", 0)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Bravo", filtered[0].Name)

	byPlatoon, err := svc.ListByPlatoon(ctx, platoon.ID)
	require.NoError(t, err)
	require.Len(t, byPlatoon, 1)
	assert.Equal(t, alpha.ID, byPlatoon[0].ID)

	_, err = svc.Get(ctx, 0)
	assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
}
