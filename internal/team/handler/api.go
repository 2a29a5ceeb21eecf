package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	teamModel "github.com/festy23/as_manager/internal/team/model"
	"github.com/festy23/as_manager/internal/web"
)

// ListAPI handles GET /api/teams.
func (h *Handler) ListAPI(c *gin.Context) {
	teams, err := h.service.Filter(c.Request.Context(), c.Query("q"), web.QueryLimit(c))
	if err != nil {
		h.logger.Errorw("error listing teams", "error", err)
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, teamModel.ListResponse{Teams: teams, Total: len(teams)})
}

// GetAPI handles GET /api/teams/:id.
func (h *Handler) GetAPI(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.JSONError(c, err)
		return
	}
	details, err := h.service.Details(c.Request.Context(), id)
	if err != nil {
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// CreateAPI handles POST /api/teams.
func (h *Handler) CreateAPI(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.JSONError(c, err)
		return
	}
	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// SaveAPI handles PUT /api/teams/:id.
func (h *Handler) SaveAPI(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.JSONError(c, err)
		return
	}
	var req teamModel.SaveTeamRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.JSONError(c, err)
		return
	}
	result, err := h.service.Save(c.Request.Context(), id, &req)
	if err != nil {
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
