package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	platoonModel "github.com/festy23/as_manager/internal/platoon/model"
	"github.com/festy23/as_manager/internal/web"
)

// ListAPI handles GET /api/platoons.
func (h *Handler) ListAPI(c *gin.Context) {
	platoons, err := h.service.Filter(c.Request.Context(), c.Query("q"), web.QueryLimit(c))
	if err != nil {
		h.logger.Errorw("error listing platoons", "error", err)
		web.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, platoonModel.ListResponse{Platoons: platoons, Total: len(platoons)})
}

// GetAPI handles GET /api/platoons/:id.
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
