package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireboard/api/internal/services"
)

type BoardHandler struct {
	svc services.BoardService
}

func NewBoardHandler(svc services.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

func (h *BoardHandler) Snapshot(c *gin.Context) {
	board, err := h.svc.Snapshot(c.Request.Context(), c.Query("job_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}
