// Package handler provides HTTP handlers for team pages and API endpoints.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	platoonModel "github.com/festy23/as_manager/internal/platoon/model"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	teamModel "github.com/festy23/as_manager/internal/team/model"
	"github.com/festy23/as_manager/internal/team/service"
	"github.com/festy23/as_manager/internal/web"
)

// Players provides the player lists shown on the team form.
type Players interface {
	ListByTeam(ctx context.Context, teamID int64) ([]playerModel.Player, error)
	ListWithoutTeam(ctx context.Context) ([]playerModel.Player, error)
}

// Platoons provides the platoon choices of the team form.
type Platoons interface {
	List(ctx context.Context) ([]platoonModel.Platoon, error)
}

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service  service.Service
	players  Players
	platoons Platoons
	logger   *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, players Players, platoons Platoons, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, players: players, platoons: platoons, logger: logger}
}

type listPage struct {
	Query string
	Teams []teamModel.Team
}

// teamForm holds the raw form values so invalid input can be shown again.
type teamForm struct {
	ID              int64  `form:"id"`
	Name            string `form:"name"              binding:"required,max=255"`
	ContactPersonID string `form:"contact_person_id"`
	PlatoonID       string `form:"platoon_id"`
	Added           string `form:"added"`
	Removed         string `form:"removed"`
	Members         string `form:"members"`
}

// errIDMismatch is returned when the id posted with an edit form names
// another team than the URL.
var errIDMismatch = apperror.Invalid("form was submitted for another team")

type formData struct {
	Members   []playerModel.Player
	Available []playerModel.Player
	Platoons  []platoonModel.Platoon
}

// List handles GET /teams.
func (h *Handler) List(c *gin.Context) {
	query := c.Query("q")
	teams, err := h.service.Filter(c.Request.Context(), query, web.QueryLimit(c))
	if err != nil {
		h.logger.Errorw("error listing teams", "query", query, "error", err)
		web.RenderError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "teams/list", web.Page{
		Title: "Teams",
		Data:  listPage{Query: query, Teams: teams},
	})
}

// Show handles GET /teams/:id.
func (h *Handler) Show(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	view := web.Load(h.service.Details(c.Request.Context(), id))
	web.Render(c, view.HTTPStatus(), "teams/show", web.Page{Title: "Team", Data: view})
}

// New handles GET /teams/new.
func (h *Handler) New(c *gin.Context) {
	data, err := h.formData(c.Request.Context(), 0)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "teams/form", web.Page{Title: "New team", Data: data, Form: teamForm{}})
}

// Create handles POST /teams.
func (h *Handler) Create(c *gin.Context) {
	form, bindErr := bindForm(c, 0)
	data, err := h.formData(c.Request.Context(), 0)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	page := web.Page{Title: "New team", Data: data, Form: form}
	if bindErr != nil {
		page.SetBindError(bindErr)
		web.Render(c, http.StatusBadRequest, "teams/form", page)
		return
	}

	req := &teamModel.CreateTeamRequest{Name: form.Name}
	errs := map[string]string{}
	req.ContactPersonID = parseID(errs, "contact_person_id", form.ContactPersonID)
	req.PlatoonID = parseID(errs, "platoon_id", form.PlatoonID)
	req.Members = parseIDs(errs, "members", form.Members)
	if len(errs) > 0 {
		page.Errors = errs
		web.Render(c, http.StatusBadRequest, "teams/form", page)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		// The initial members are the add set of the first save.
		if apperror.Field(err) == "added" {
			page.Errors = map[string]string{"members": apperror.Message(err)}
			web.Render(c, apperror.CodeOf(err).HTTPStatus(), "teams/form", page)
			return
		}
		web.RenderForm(c, "teams/form", page, err)
		return
	}
	web.SetFlash(c, web.FlashSuccess, fmt.Sprintf("Team %s created with %d members", result.Team.Name, len(result.Members)))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/teams/%d", result.Team.ID))
}

// Edit handles GET /teams/:id/edit.
func (h *Handler) Edit(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	team, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	data, err := h.formData(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "teams/form", web.Page{
		Title: "Edit team",
		Data:  data,
		Form: teamForm{
			ID:              team.ID,
			Name:            team.Name,
			ContactPersonID: web.FormatOptionalID(team.ContactPersonID),
			PlatoonID:       web.FormatOptionalID(team.PlatoonID),
		},
	})
}

// Update handles POST /teams/:id: the scalar fields are saved and the
// added and removed id lists are reconciled against the membership.
func (h *Handler) Update(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	form, bindErr := bindForm(c, id)

	errs := map[string]string{}
	req := &teamModel.SaveTeamRequest{Name: form.Name}
	req.ContactPersonID = parseID(errs, "contact_person_id", form.ContactPersonID)
	req.PlatoonID = parseID(errs, "platoon_id", form.PlatoonID)
	req.Added = parseIDs(errs, "added", form.Added)
	req.Removed = parseIDs(errs, "removed", form.Removed)

	var result *teamModel.SaveResult
	if bindErr == nil && len(errs) == 0 {
		result, err = h.service.Save(c.Request.Context(), id, req)
	}
	if bindErr != nil || len(errs) > 0 || err != nil {
		data, dataErr := h.formData(c.Request.Context(), id)
		if dataErr != nil {
			web.RenderError(c, dataErr)
			return
		}
		page := web.Page{Title: "Edit team", Data: data, Form: form}
		switch {
		case errors.Is(bindErr, errIDMismatch):
			web.RenderForm(c, "teams/form", page, bindErr)
		case bindErr != nil:
			page.SetBindError(bindErr)
			web.Render(c, http.StatusBadRequest, "teams/form", page)
		case len(errs) > 0:
			page.Errors = errs
			web.Render(c, http.StatusBadRequest, "teams/form", page)
		default:
			web.RenderForm(c, "teams/form", page, err)
		}
		return
	}

	web.SetFlash(c, web.FlashSuccess, fmt.Sprintf("Team %s saved: %d added, %d removed",
		result.Team.Name, len(result.Added), len(result.Removed)))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/teams/%d", id))
}

func (h *Handler) formData(ctx context.Context, teamID int64) (formData, error) {
	var (
		data formData
		err  error
	)
	if teamID > 0 {
		if data.Members, err = h.players.ListByTeam(ctx, teamID); err != nil {
			return formData{}, err
		}
	}
	if data.Available, err = h.players.ListWithoutTeam(ctx); err != nil {
		return formData{}, err
	}
	if data.Platoons, err = h.platoons.List(ctx); err != nil {
		return formData{}, err
	}
	return data, nil
}

// bindForm binds the posted team form. A posted id must match the team
// being edited; the returned form always carries the URL id.
func bindForm(c *gin.Context, id int64) (teamForm, error) {
	var form teamForm
	err := c.ShouldBind(&form)
	posted := form.ID
	form.ID = id
	form.Name = strings.TrimSpace(form.Name)
	form.ContactPersonID = strings.TrimSpace(form.ContactPersonID)
	form.PlatoonID = strings.TrimSpace(form.PlatoonID)
	form.Added = strings.TrimSpace(form.Added)
	form.Removed = strings.TrimSpace(form.Removed)
	form.Members = strings.TrimSpace(form.Members)
	if err != nil {
		return form, err
	}
	if posted != 0 && posted != id {
		return form, errIDMismatch
	}
	return form, nil
}

func parseID(errs map[string]string, field, raw string) *int64 {
	id, err := web.ParseOptionalID(raw)
	if err != nil {
		errs[field] = apperror.Message(err)
	}
	return id
}

func parseIDs(errs map[string]string, field, raw string) []int64 {
	ids, err := teamModel.ParseIDList(raw)
	if err != nil {
		errs[field] = apperror.Message(err)
	}
	return ids
}
