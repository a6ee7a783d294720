package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hireboard/api/internal/models"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/services"
	"github.com/hireboard/api/internal/utils"
)

type ApplicationHandler struct {
	apps      services.ApplicationService
	screening services.ScreeningService
}

func NewApplicationHandler(apps services.ApplicationService, screening services.ScreeningService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, screening: screening}
}

func (h *ApplicationHandler) List(c *gin.Context) {
	f := pgrepo.ApplicationFilter{
		JobID:  c.Query("job_id"),
		Status: models.ApplicationStatus(c.Query("status")),
		TagID:  c.Query("tag_id"),
	}
	rows, err := h.apps.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.apps.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.UpdateStatus", "invalid request body", err))
		return
	}

	app, err := h.apps.Transition(c.Request.Context(), c.Param("id"), models.ApplicationStatus(req.Status), userID, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) History(c *gin.Context) {
	evs, err := h.apps.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if evs == nil {
		evs = []models.StatusEvent{}
	}
	c.JSON(http.StatusOK, evs)
}

func (h *ApplicationHandler) Similar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	rows, err := h.apps.Similar(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if rows == nil {
		rows = []pgrepo.SimilarApplication{}
	}
	c.JSON(http.StatusOK, rows)
}

// Reanalyze runs a synchronous fresh screening pass. Upstream failures
// surface as a 502-class response; the stored score is untouched.
func (h *ApplicationHandler) Reanalyze(c *gin.Context) {
	app, err := h.screening.Analyze(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
