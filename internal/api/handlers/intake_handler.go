package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hireboard/api/internal/services"
	"github.com/hireboard/api/internal/storage"
	"github.com/hireboard/api/internal/utils"
)

// IntakeHandler is the public application-submission surface: multipart
// form with candidate fields, optional PDF resume, optional job-form
// answers as a JSON string.
type IntakeHandler struct {
	apps     services.ApplicationService
	uploader storage.Uploader
}

func NewIntakeHandler(apps services.ApplicationService, uploader storage.Uploader) *IntakeHandler {
	return &IntakeHandler{apps: apps, uploader: uploader}
}

func (h *IntakeHandler) Submit(c *gin.Context) {
	const op = "IntakeHandler.Submit"

	in := services.SubmitInput{
		JobID:          c.PostForm("job_id"),
		CandidateName:  c.PostForm("candidate_name"),
		CandidateEmail: c.PostForm("candidate_email"),
		CandidatePhone: c.PostForm("candidate_phone"),
		CoverLetter:    c.PostForm("cover_letter"),
		ResumeText:     c.PostForm("resume_text"),
	}

	if raw := c.PostForm("answers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Answers); err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "answers must be a JSON object", err))
			return
		}
	}

	if fh, err := c.FormFile("resume"); err == nil {
		key, err := h.storeResume(c, fh.Filename, fh.Size)
		if err != nil {
			writeError(c, err)
			return
		}
		in.ResumeURL = key
	}

	app, err := h.apps.Submit(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *IntakeHandler) storeResume(c *gin.Context, filename string, size int64) (string, error) {
	const op = "IntakeHandler.Submit"

	if h.uploader == nil {
		return "", utils.E(utils.CodeUnavailable, op, "resume storage is not configured", nil)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		return "", utils.E(utils.CodeInvalidArgument, op, "only .pdf resumes are allowed", nil)
	}
	if size <= 0 || size > 10<<20 {
		return "", utils.E(utils.CodeInvalidArgument, op, "resume too large (max 10MB)", nil)
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		return "", utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'resume'", err)
	}
	file, err := fh.Open()
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to open upload", err)
	}
	defer file.Close()

	// sniff content type (first 512 bytes)
	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	if http.DetectContentType(head) != "application/pdf" {
		return "", utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be pdf)", nil)
	}

	r := &readJoin{a: bytes.NewReader(head), b: file}
	objectName := "resumes/" + uuid.NewString() + ".pdf"

	key, err := h.uploader.Upload(c.Request.Context(), objectName, "application/pdf", r)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to store resume", err)
	}
	return key, nil
}

// readJoin re-composes the sniffed head with the remaining stream.
type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
