// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/as_manager/internal/database/database"
	eventModel "github.com/festy23/as_manager/internal/event/model"
	platoonModel "github.com/festy23/as_manager/internal/platoon/model"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	teamModel "github.com/festy23/as_manager/internal/team/model"
	"github.com/festy23/as_manager/internal/web"
	"github.com/festy23/as_manager/pkg/retry"
)

// Models lists every persisted model in migration order.
func Models() []interface{} {
	return []interface{}{
		&platoonModel.Platoon{},
		&teamModel.Team{},
		&playerModel.Player{},
		&platoonModel.PlatoonPlayer{},
		&eventModel.Event{},
		&eventModel.EventMember{},
	}
}

// NewDB opens an in-memory sqlite database with the full schema.
// A single connection is used so every query sees the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(context.Background(), sqlite.Open(":memory:"), retry.Config{MaxAttempts: 1}, Logger(t))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

// Logger returns a sugared logger that writes to the test log.
func Logger(t *testing.T) *zap.SugaredLogger {
	return zaptest.NewLogger(t).Sugar()
}

// CreatePlayer inserts an active player and returns it.
func CreatePlayer(t *testing.T, db *gorm.DB, email, tag string) *playerModel.Player {
	t.Helper()
	p := &playerModel.Player{Email: email, TagName: tag, Active: true}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateTeam inserts a team and returns it.
func CreateTeam(t *testing.T, db *gorm.DB, name string) *teamModel.Team {
	t.Helper()
	team := &teamModel.Team{Name: name}
	require.NoError(t, db.Create(team).Error)
	return team
}

// CreatePlatoon inserts a platoon and returns it.
func CreatePlatoon(t *testing.T, db *gorm.DB, name string) *platoonModel.Platoon {
	t.Helper()
	platoon := &platoonModel.Platoon{Name: name}
	require.NoError(t, db.Create(platoon).Error)
	return platoon
}

// AssignTeam sets the team of the given players.
func AssignTeam(t *testing.T, db *gorm.DB, teamID int64, playerIDs ...int64) {
	t.Helper()
	require.NoError(t, db.Model(&playerModel.Player{}).
		Where("id IN ?", playerIDs).
		Update("team_id", teamID).Error)
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}

// Engine returns a gin engine in test mode with the page templates loaded.
func Engine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	r.Use(web.FlashMiddleware())
	return r
}

// Get performs a GET request against h.
func Get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

// PostForm performs a form POST against h.
func PostForm(h http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// ParseHTML parses a response body for goquery assertions.
func ParseHTML(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}
