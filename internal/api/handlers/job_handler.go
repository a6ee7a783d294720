package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireboard/api/internal/models"
	"github.com/hireboard/api/internal/services"
	"github.com/hireboard/api/internal/utils"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

type jobRequest struct {
	Title       string          `json:"title" binding:"required"`
	Department  string          `json:"department"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	FormSchema  json.RawMessage `json:"form_schema"`
}

func (r *jobRequest) input() services.JobInput {
	return services.JobInput{
		Title:       r.Title,
		Department:  r.Department,
		Location:    r.Location,
		Description: r.Description,
		Status:      models.JobStatus(r.Status),
		FormSchema:  r.FormSchema,
	}
}

// ListOpen is the public listing: open postings only.
func (h *JobHandler) ListOpen(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), true)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *JobHandler) ListAll(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), false)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *JobHandler) Get(c *gin.Context) {
	j, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Create", "invalid request body", err))
		return
	}
	j, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

func (h *JobHandler) Update(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Update", "invalid request body", err))
		return
	}
	j, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
