package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hireboard/api/internal/forms"
	"github.com/hireboard/api/internal/models"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/utils"
	"gorm.io/datatypes"
)

type JobInput struct {
	Title       string
	Department  string
	Location    string
	Description string
	Status      models.JobStatus
	FormSchema  []byte
}

type JobService interface {
	Create(ctx context.Context, in JobInput) (*models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, id string, in JobInput) (*models.Job, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyOpen bool) ([]models.Job, error)
}

type jobService struct {
	jobs   pgrepo.JobRepository
	alerts AlertService
}

func NewJobService(jobs pgrepo.JobRepository, alerts AlertService) JobService {
	return &jobService{jobs: jobs, alerts: alerts}
}

func validateJobInput(op string, in *JobInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	}
	if in.Status == "" {
		in.Status = models.JobOpen
	}
	if in.Status != models.JobOpen && in.Status != models.JobClosed {
		return utils.E(utils.CodeInvalidArgument, op, "unknown job status", nil)
	}
	// Reject malformed schemas at write time so intake never sees one.
	if _, err := forms.ParseSchema(in.FormSchema); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}
	return nil
}

func (s *jobService) Create(ctx context.Context, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	if err := validateJobInput(op, &in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	j := &models.Job{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Department:  strings.TrimSpace(in.Department),
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		Status:      in.Status,
		FormSchema:  datatypes.JSON(in.FormSchema),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.jobs.Insert(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}

	if s.alerts != nil && j.Status == models.JobOpen {
		s.alerts.NotifyJobPosted(ctx, j)
	}
	return j, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	const op = "JobService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	return j, nil
}

func (s *jobService) Update(ctx context.Context, id string, in JobInput) (*models.Job, error) {
	const op = "JobService.Update"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if err := validateJobInput(op, &in); err != nil {
		return nil, err
	}

	j := &models.Job{
		ID:          id,
		Title:       in.Title,
		Department:  strings.TrimSpace(in.Department),
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		Status:      in.Status,
		FormSchema:  datatypes.JSON(in.FormSchema),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.jobs.Update(ctx, j); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	return s.jobs.GetByID(ctx, id)
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	const op = "JobService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	return nil
}

func (s *jobService) List(ctx context.Context, onlyOpen bool) ([]models.Job, error) {
	const op = "JobService.List"

	rows, err := s.jobs.List(ctx, onlyOpen)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return rows, nil
}
