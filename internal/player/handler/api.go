package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	playerModel "github.com/festy23/as_manager/internal/player/model"
	"github.com/festy23/as_manager/internal/web"
)

// ListAPI handles GET /api/players.
func (h *Handler) ListAPI(c *gin.Context) {
	players, err := h.service.Filter(c.Request.Context(), c.Query("q"), web.QueryLimit(c))
	if err != nil {
		h.logger.Errorw("error listing players", "error", err)
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, playerModel.ListResponse{Players: players, Total: len(players)})
}

// GetAPI handles GET /api/players/:id.
func (h *Handler) GetAPI(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.JSONError(c, err)
		return
	}
	player, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

// CreateAPI handles POST /api/players.
func (h *Handler) CreateAPI(c *gin.Context) {
	var req playerModel.CreatePlayerRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.JSONError(c, err)
		return
	}
	player, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

// UpdateAPI handles PUT /api/players/:id.
func (h *Handler) UpdateAPI(c *gin.Context) {
	id, err := web.ParseID(c, "id")
	if err != nil {
		web.JSONError(c, err)
		return
	}
	var req playerModel.UpdatePlayerRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.JSONError(c, err)
		return
	}
	player, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}
