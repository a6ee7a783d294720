package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireboard/api/internal/services"
	"github.com/hireboard/api/internal/utils"
)

type TagHandler struct {
	svc services.TagService
}

func NewTagHandler(svc services.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

type tagRequest struct {
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color" binding:"required"`
	Description string `json:"description"`
}

func (h *TagHandler) Create(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TagHandler.Create", "invalid request body", err))
		return
	}
	t, err := h.svc.Create(c.Request.Context(), req.Name, req.Color, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TagHandler) Update(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TagHandler.Update", "invalid request body", err))
		return
	}
	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Color, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TagHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type attachRequest struct {
	TagID string `json:"tag_id" binding:"required"`
}

func (h *TagHandler) Attach(c *gin.Context) {
	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TagHandler.Attach", "invalid request body", err))
		return
	}
	at, err := h.svc.Attach(c.Request.Context(), c.Param("id"), req.TagID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, at)
}

// Detach always answers 204; removing a non-attached tag is a no-op.
func (h *TagHandler) Detach(c *gin.Context) {
	if err := h.svc.Detach(c.Request.Context(), c.Param("id"), c.Param("tag_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TagHandler) ListForApplication(c *gin.Context) {
	rows, err := h.svc.ListForApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
