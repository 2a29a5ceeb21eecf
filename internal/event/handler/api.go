package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	eventModel "github.com/festy23/as_manager/internal/event/model"
	"github.com/festy23/as_manager/internal/web"
)

// ListAPI handles GET /api/events.
func (h *Handler) ListAPI(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing events", "error", err)
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, eventModel.ListResponse{Events: events, Total: len(events)})
}

// GetAPI handles GET /api/events/:id.
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
