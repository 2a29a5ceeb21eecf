// Package handler provides HTTP handlers for player pages and API endpoints.
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	"github.com/festy23/as_manager/internal/player/service"
	teamModel "github.com/festy23/as_manager/internal/team/model"
	"github.com/festy23/as_manager/internal/web"
)

// Teams provides the team lookups shown on player pages.
type Teams interface {
	Get(ctx context.Context, id int64) (*teamModel.Team, error)
	List(ctx context.Context) ([]teamModel.Team, error)
}

// Handler handles HTTP requests for player endpoints.
type Handler struct {
	service service.Service
	teams   Teams
	logger  *zap.SugaredLogger
}

// New creates a new player handler instance.
func New(svc service.Service, teams Teams, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, teams: teams, logger: logger}
}

type listPage struct {
	Query   string
	Players []playerModel.Player
}

type showPage struct {
	Player playerModel.Player
	Team   *teamModel.Team
}

type playerForm struct {
	ID      int64  `form:"-"`
	Email   string `form:"email"    binding:"required,email,max=255"`
	TagName string `form:"tag_name" binding:"required,max=255"`
	Active  bool   `form:"active"`
	TeamID  string `form:"team_id"`
}

type formData struct {
	Teams []teamModel.Team
}

// List handles GET /players.
func (h *Handler) List(c *gin.Context) {
	query := c.Query("q")
	players, err := h.service.Filter(c.Request.Context(), query, web.QueryLimit(c))
	if err != nil {
		h.logger.Errorw("error listing players", "query", query, "error", err)
		web.RenderError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "players/list", web.Page{
		Title: "Players",
		Data:  listPage{Query: query, Players: players},
	})
}

// Show handles GET /players/:id.
func (h *Handler) Show(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	view := web.Load(h.load(c.Request.Context(), id))
	web.Render(c, view.HTTPStatus(), "players/show", web.Page{Title: "Player", Data: view})
}

func (h *Handler) load(ctx context.Context, id int64) (showPage, error) {
	player, err := h.service.Get(ctx, id)
	if err != nil {
		return showPage{}, err
	}
	page := showPage{Player: *player}
	if player.TeamID != nil {
		if page.Team, err = h.teams.Get(ctx, *player.TeamID); err != nil {
			return showPage{}, err
		}
	}
	return page, nil
}

// New handles GET /players/new.
func (h *Handler) New(c *gin.Context) {
	web.Render(c, http.StatusOK, "players/form", web.Page{Title: "New player", Form: playerForm{}})
}

// Create handles POST /players. Players created here have no password.
func (h *Handler) Create(c *gin.Context) {
	var form playerForm
	if err := c.ShouldBind(&form); err != nil {
		page := web.Page{Title: "New player", Form: form}
		page.SetBindError(err)
		web.Render(c, http.StatusBadRequest, "players/form", page)
		return
	}
	player, err := h.service.Create(c.Request.Context(), &playerModel.CreatePlayerRequest{
		Email:   form.Email,
		TagName: form.TagName,
	})
	if err != nil {
		web.RenderForm(c, "players/form", web.Page{Title: "New player", Form: form}, err)
		return
	}
	web.SetFlash(c, web.FlashSuccess, fmt.Sprintf("Player %s created", player.TagName))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/players/%d", player.ID))
}

// Edit handles GET /players/:id/edit.
func (h *Handler) Edit(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	player, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		web.RenderError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "players/form", web.Page{
		Title: "Edit player",
		Data:  formData{Teams: teams},
		Form: playerForm{
			ID:      player.ID,
			Email:   player.Email,
			TagName: player.TagName,
			Active:  player.Active,
			TeamID:  web.FormatOptionalID(player.TeamID),
		},
	})
}

// Update handles POST /players/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	var form playerForm
	bindErr := c.ShouldBind(&form)
	form.ID = id

	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		web.RenderError(c, err)
		return
	}
	page := web.Page{Title: "Edit player", Data: formData{Teams: teams}, Form: form}
	if bindErr != nil {
		page.SetBindError(bindErr)
		web.Render(c, http.StatusBadRequest, "players/form", page)
		return
	}

	teamID, err := web.ParseOptionalID(form.TeamID)
	if err != nil {
		page.Errors = map[string]string{"team_id": apperror.Message(err)}
		web.Render(c, http.StatusBadRequest, "players/form", page)
		return
	}

	player, err := h.service.Update(c.Request.Context(), id, &playerModel.UpdatePlayerRequest{
		Email:   form.Email,
		TagName: form.TagName,
		Active:  form.Active,
		TeamID:  teamID,
	})
	if err != nil {
		web.RenderForm(c, "players/form", page, err)
		return
	}
	web.SetFlash(c, web.FlashSuccess, fmt.Sprintf("Player %s saved", player.TagName))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/players/%d", player.ID))
}
