package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireboard/api/internal/services"
	"github.com/hireboard/api/internal/utils"
)

type AlertHandler struct {
	svc services.AlertService
}

func NewAlertHandler(svc services.AlertService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

type subscribeRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Keyword string `json:"keyword"`
}

func (h *AlertHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AlertHandler.Subscribe", "invalid request body", err))
		return
	}
	a, err := h.svc.Subscribe(c.Request.Context(), req.Email, req.Keyword)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AlertHandler) Unsubscribe(c *gin.Context) {
	if err := h.svc.Unsubscribe(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
