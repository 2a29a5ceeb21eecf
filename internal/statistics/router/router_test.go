package router

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/as_manager/internal/statistics/handler"
	"github.com/festy23/as_manager/internal/statistics/repository"
	"github.com/festy23/as_manager/internal/statistics/service"
	"github.com/festy23/as_manager/internal/testutil"
)

func TestRegisterRoutes(t *testing.T) {
	db := testutil.NewDB(t)
	logger := testutil.Logger(t)
	testutil.CreatePlayer(t, db, "a@clan.gg", "A")

	r := testutil.Engine(t)
	RegisterRoutes(r, r.Group("/api"), handler.New(service.New(repository.New(db, logger), logger), logger))

	w := testutil.Get(r, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_players":1`)
	assert.Contains(t, w.Body.String(), `"team_sizes":[]`)

	w = testutil.Get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", testutil.ParseHTML(t, w).Find("#total-players").Text())
}
