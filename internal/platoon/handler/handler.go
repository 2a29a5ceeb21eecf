// Package handler provides HTTP handlers for platoon pages and API endpoints.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	platoonModel "github.com/festy23/as_manager/internal/platoon/model"
	"github.com/festy23/as_manager/internal/platoon/service"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	"github.com/festy23/as_manager/internal/web"
)

// Players provides the player choices of the platoon pages.
type Players interface {
	List(ctx context.Context) ([]playerModel.Player, error)
	ListWithoutTeam(ctx context.Context) ([]playerModel.Player, error)
}

// Handler handles HTTP requests for platoon endpoints.
type Handler struct {
	service service.Service
	players Players
	logger  *zap.SugaredLogger
}

// New creates a new platoon handler instance.
func New(svc service.Service, players Players, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, players: players, logger: logger}
}

type listPage struct {
	Query    string
	Platoons []platoonModel.Platoon
}

type showPage struct {
	Details *platoonModel.Details
	// Available are the players without team not yet attached.
	Available []playerModel.Player
}

type platoonForm struct {
	ID             int64  `form:"-"`
	Team           string `form:"team"`
	Name           string `form:"name"             binding:"required,max=255"`
	Motto          string `form:"motto"`
	LeaderID       string `form:"leader_id"`
	DeputyLeaderID string `form:"deputy_leader_id"`
}

type formData struct {
	Players []playerModel.Player
}

// List handles GET /platoons.
func (h *Handler) List(c *gin.Context) {
	query := c.Query("q")
	platoons, err := h.service.Filter(c.Request.Context(), query, web.QueryLimit(c))
	if err != nil {
		h.logger.Errorw("error listing platoons", "query", query, "error", err)
		web.RenderError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "platoons/list", web.Page{
		Title: "Platoons",
		Data:  listPage{Query: query, Platoons: platoons},
	})
}

// Show handles GET /platoons/:id.
func (h *Handler) Show(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	view := web.Load(h.load(c.Request.Context(), id))
	web.Render(c, view.HTTPStatus(), "platoons/show", web.Page{Title: "Platoon", Data: view})
}

func (h *Handler) load(ctx context.Context, id int64) (showPage, error) {
	details, err := h.service.Details(ctx, id)
	if err != nil {
		return showPage{}, err
	}
	teamless, err := h.players.ListWithoutTeam(ctx)
	if err != nil {
		return showPage{}, err
	}
	attached := make(map[int64]bool, len(details.Players))
	for _, p := range details.Players {
		attached[p.ID] = true
	}
	page := showPage{Details: details}
	for _, p := range teamless {
		if !attached[p.ID] {
			page.Available = append(page.Available, p)
		}
	}
	return page, nil
}

// New handles GET /platoons/new.
func (h *Handler) New(c *gin.Context) {
	players, err := h.players.List(c.Request.Context())
	if err != nil {
		web.RenderError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "platoons/form", web.Page{
		Title: "New platoon",
		Data:  formData{Players: players},
		Form:  platoonForm{},
	})
}

// Create handles POST /platoons.
func (h *Handler) Create(c *gin.Context) {
	h.save(c, 0)
}

// Edit handles GET /platoons/:id/edit.
func (h *Handler) Edit(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	platoon, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	players, err := h.players.List(c.Request.Context())
	if err != nil {
		web.RenderError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "platoons/form", web.Page{
		Title: "Edit platoon",
		Data:  formData{Players: players},
		Form: platoonForm{
			ID:             platoon.ID,
			Team:           platoon.Team,
			Name:           platoon.Name,
			Motto:          platoon.Motto,
			LeaderID:       web.FormatOptionalID(platoon.LeaderID),
			DeputyLeaderID: web.FormatOptionalID(platoon.DeputyLeaderID),
		},
	})
}

// Update handles POST /platoons/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	h.save(c, id)
}

func (h *Handler) save(c *gin.Context, id int64) {
	ctx := c.Request.Context()
	var form platoonForm
	bindErr := c.ShouldBind(&form)
	form.ID = id
	form.Team = strings.TrimSpace(form.Team)
	form.Name = strings.TrimSpace(form.Name)
	form.Motto = strings.TrimSpace(form.Motto)
	form.LeaderID = strings.TrimSpace(form.LeaderID)
	form.DeputyLeaderID = strings.TrimSpace(form.DeputyLeaderID)

	players, err := h.players.List(ctx)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	title := "New platoon"
	if id > 0 {
		title = "Edit platoon"
	}
	page := web.Page{Title: title, Data: formData{Players: players}, Form: form}
	if bindErr != nil {
		page.SetBindError(bindErr)
		web.Render(c, http.StatusBadRequest, "platoons/form", page)
		return
	}

	req := &platoonModel.SavePlatoonRequest{Team: form.Team, Name: form.Name, Motto: form.Motto}
	errs := map[string]string{}
	if req.LeaderID, err = web.ParseOptionalID(form.LeaderID); err != nil {
		errs["leader_id"] = apperror.Message(err)
	}
	if req.DeputyLeaderID, err = web.ParseOptionalID(form.DeputyLeaderID); err != nil {
		errs["deputy_leader_id"] = apperror.Message(err)
	}
	if len(errs) > 0 {
		page.Errors = errs
		web.Render(c, http.StatusBadRequest, "platoons/form", page)
		return
	}

	var platoon *platoonModel.Platoon
	if id > 0 {
		platoon, err = h.service.Update(ctx, id, req)
	} else {
		platoon, err = h.service.Create(ctx, req)
	}
	if err != nil {
		web.RenderForm(c, "platoons/form", page, err)
		return
	}
	web.SetFlash(c, web.FlashSuccess, fmt.Sprintf("Platoon %s saved", platoon.Name))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/platoons/%d", platoon.ID))
}

// AddPlayer handles POST /platoons/:id/players.
func (h *Handler) AddPlayer(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	var form struct {
		PlayerID int64 `form:"player_id" binding:"required,gt=0"`
	}
	if err := c.ShouldBind(&form); err != nil {
		web.SetFlash(c, web.FlashError, "select a player")
	} else if err := h.service.AddPlayer(c.Request.Context(), id, form.PlayerID); err != nil {
		if apperror.CodeOf(err) == apperror.CodeStorage {
			h.logger.Errorw("error adding platoon player", "platoon_id", id, "error", err)
		}
		web.SetFlash(c, web.FlashError, apperror.Message(err))
	} else {
		web.SetFlash(c, web.FlashSuccess, "Player added")
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/platoons/%d", id))
}

// RemovePlayer handles POST /platoons/:id/players/:playerID/remove.
func (h *Handler) RemovePlayer(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	playerID, err := web.ParseID(c, "playerID")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	if err := h.service.RemovePlayer(c.Request.Context(), id, playerID); err != nil {
		web.SetFlash(c, web.FlashError, apperror.Message(err))
	} else {
		web.SetFlash(c, web.FlashSuccess, "Player removed")
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/platoons/%d", id))
}
