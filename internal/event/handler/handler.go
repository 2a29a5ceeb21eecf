// Package handler provides HTTP handlers for event pages and API endpoints.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/auth/session"
	eventModel "github.com/festy23/as_manager/internal/event/model"
	"github.com/festy23/as_manager/internal/event/service"
	"github.com/festy23/as_manager/internal/web"
)

// Handler handles HTTP requests for event endpoints.
type Handler struct {
	service service.Service
	now     func() time.Time
	logger  *zap.SugaredLogger
}

// New creates a new event handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, now: time.Now, logger: logger}
}

type listPage struct {
	Now    time.Time
	Events []eventModel.Event
}

type showPage struct {
	Details *eventModel.Details
	// Joined reports whether the current player takes part.
	Joined bool
}

type eventForm struct {
	ID          int64  `form:"-"`
	Name        string `form:"name"        binding:"required,max=255"`
	Description string `form:"description"`
	StartTime   string `form:"start_time"  binding:"required"`
	EndTime     string `form:"end_time"`
}

// List handles GET /events.
func (h *Handler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing events", "error", err)
		web.RenderError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "events/list", web.Page{
		Title: "Events",
		Data:  listPage{Now: h.now(), Events: events},
	})
}

// Show handles GET /events/:id.
func (h *Handler) Show(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	view := web.Load(h.load(c.Request.Context(), id))
	web.Render(c, view.HTTPStatus(), "events/show", web.Page{Title: "Event", Data: view})
}

func (h *Handler) load(ctx context.Context, id int64) (showPage, error) {
	details, err := h.service.Details(ctx, id)
	if err != nil {
		return showPage{}, err
	}
	page := showPage{Details: details}
	if sess, err := session.FromContext(ctx); err == nil {
		page.Joined = details.HasMember(sess.PlayerID)
	}
	return page, nil
}

// New handles GET /events/new.
func (h *Handler) New(c *gin.Context) {
	web.Render(c, http.StatusOK, "events/form", web.Page{Title: "New event", Form: eventForm{}})
}

// Create handles POST /events. The current player becomes the creator.
func (h *Handler) Create(c *gin.Context) {
	sess, err := session.FromContext(c.Request.Context())
	if err != nil {
		web.RenderError(c, err)
		return
	}
	form, bindErr := bindForm(c, 0)
	page := web.Page{Title: "New event", Form: form}
	req, ok := parseForm(c, &page, form, bindErr)
	if !ok {
		return
	}
	event, err := h.service.Create(c.Request.Context(), sess.PlayerID, req)
	if err != nil {
		web.RenderForm(c, "events/form", page, err)
		return
	}
	web.SetFlash(c, web.FlashSuccess, fmt.Sprintf("Event %s created", event.Name))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/events/%d", event.ID))
}

// Edit handles GET /events/:id/edit.
func (h *Handler) Edit(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		web.RenderError(c, err)
		return
	}
	form := eventForm{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		StartTime:   event.StartTime.UTC().Format(web.InputTimeLayout),
	}
	if event.EndTime != nil {
		form.EndTime = event.EndTime.UTC().Format(web.InputTimeLayout)
	}
	web.Render(c, http.StatusOK, "events/form", web.Page{Title: "Edit event", Form: form})
}

// Update handles POST /events/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	form, bindErr := bindForm(c, id)
	page := web.Page{Title: "Edit event", Form: form}
	req, ok := parseForm(c, &page, form, bindErr)
	if !ok {
		return
	}
	event, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		web.RenderForm(c, "events/form", page, err)
		return
	}
	web.SetFlash(c, web.FlashSuccess, fmt.Sprintf("Event %s saved", event.Name))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/events/%d", id))
}

// Join handles POST /events/:id/join.
func (h *Handler) Join(c *gin.Context) {
	h.membership(c, "joined", h.service.Join)
}

// Leave handles POST /events/:id/leave.
func (h *Handler) Leave(c *gin.Context) {
	h.membership(c, "left", h.service.Leave)
}

func (h *Handler) membership(c *gin.Context, verb string, apply func(ctx context.Context, eventID, playerID int64) error) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.RenderError(c, err)
		return
	}
	sess, err := session.FromContext(c.Request.Context())
	if err != nil {
		web.RenderError(c, err)
		return
	}
	if err := apply(c.Request.Context(), id, sess.PlayerID); err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			web.RenderError(c, err)
			return
		}
		web.SetFlash(c, web.FlashError, apperror.Message(err))
	} else {
		web.SetFlash(c, web.FlashSuccess, "You "+verb+" the event")
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/events/%d", id))
}

func bindForm(c *gin.Context, id int64) (eventForm, error) {
	var form eventForm
	err := c.ShouldBind(&form)
	form.ID = id
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	form.StartTime = strings.TrimSpace(form.StartTime)
	form.EndTime = strings.TrimSpace(form.EndTime)
	return form, err
}

// parseForm converts the submitted times. On a binding or parse failure
// it renders the form and returns false.
func parseForm(c *gin.Context, page *web.Page, form eventForm, bindErr error) (*eventModel.SaveEventRequest, bool) {
	if bindErr != nil {
		page.SetBindError(bindErr)
		web.Render(c, http.StatusBadRequest, "events/form", *page)
		return nil, false
	}

	req := &eventModel.SaveEventRequest{Name: form.Name, Description: form.Description}
	errs := map[string]string{}

	if form.StartTime != "" {
		start, err := web.ParseTime(form.StartTime)
		if err != nil {
			errs["start_time"] = apperror.Message(err)
		}
		req.StartTime = start
	}
	end, err := web.ParseOptionalTime(form.EndTime)
	if err != nil {
		errs["end_time"] = apperror.Message(err)
	}
	req.EndTime = end

	if len(errs) > 0 {
		page.Errors = errs
		web.Render(c, http.StatusBadRequest, "events/form", *page)
		return nil, false
	}
	return req, true
}
