package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hireboard/api/internal/cache"
	"github.com/hireboard/api/internal/events"
	"github.com/hireboard/api/internal/forms"
	"github.com/hireboard/api/internal/models"
	mongorepo "github.com/hireboard/api/internal/repositories/mongo"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/notify"
	"github.com/hireboard/api/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// SubmitInput is the public intake payload. Resume upload happens in
// the handler; the service only sees the stored object key.
type SubmitInput struct {
	JobID          string
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	CoverLetter    string
	ResumeURL      string
	ResumeText     string
	Answers        map[string]any
}

type ApplicationService interface {
	Submit(ctx context.Context, in SubmitInput) (*models.Application, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	List(ctx context.Context, f pgrepo.ApplicationFilter) ([]models.Application, error)
	Transition(ctx context.Context, id string, target models.ApplicationStatus, actorID, note string) (*models.Application, error)
	History(ctx context.Context, id string) ([]models.StatusEvent, error)
	Similar(ctx context.Context, id string, limit int) ([]pgrepo.SimilarApplication, error)
}

type applicationService struct {
	apps     pgrepo.ApplicationRepository
	jobs     pgrepo.JobRepository
	history  mongorepo.StatusEventRepository
	notifier notify.Notifier
	cache    cache.Cache
	pub      events.Publisher
	queue    events.ScreeningQueue
	log      *logrus.Logger
}

func NewApplicationService(
	apps pgrepo.ApplicationRepository,
	jobs pgrepo.JobRepository,
	history mongorepo.StatusEventRepository,
	notifier notify.Notifier,
	c cache.Cache,
	pub events.Publisher,
	queue events.ScreeningQueue,
	log *logrus.Logger,
) ApplicationService {
	return &applicationService{
		apps:     apps,
		jobs:     jobs,
		history:  history,
		notifier: notifier,
		cache:    c,
		pub:      pub,
		queue:    queue,
		log:      log,
	}
}

func (s *applicationService) Submit(ctx context.Context, in SubmitInput) (*models.Application, error) {
	const op = "ApplicationService.Submit"

	in.CandidateName = strings.TrimSpace(in.CandidateName)
	in.CandidateEmail = strings.TrimSpace(in.CandidateEmail)
	if in.CandidateName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_name is required", nil)
	}
	if _, err := mail.ParseAddress(in.CandidateEmail); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_email is not a valid email", err)
	}

	if in.JobID == "" {
		in.JobID = models.GeneralJobID
	}

	var schema *forms.Schema
	if in.JobID != models.GeneralJobID {
		job, err := s.jobs.GetByID(ctx, in.JobID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
		}
		if job.Status != models.JobOpen {
			return nil, utils.E(utils.CodeConflict, op, "job is not accepting applications", nil)
		}
		schema, err = forms.ParseSchema(job.FormSchema)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "job has a malformed form schema", err)
		}
	} else {
		schema = &forms.Schema{}
	}

	if err := schema.Validate(in.Answers); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	var answers datatypes.JSON
	if len(in.Answers) > 0 {
		b, err := json.Marshal(in.Answers)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to encode form answers", err)
		}
		answers = datatypes.JSON(b)
	}

	now := time.Now().UTC()
	app := &models.Application{
		ID:             uuid.NewString(),
		JobID:          in.JobID,
		CandidateName:  in.CandidateName,
		CandidateEmail: in.CandidateEmail,
		CandidatePhone: strings.TrimSpace(in.CandidatePhone),
		ResumeURL:      in.ResumeURL,
		ResumeText:     in.ResumeText,
		CoverLetter:    in.CoverLetter,
		Status:         models.StatusApplied,
		Answers:        answers,
		AppliedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.apps.Insert(ctx, app); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist application", err)
	}

	if s.queue != nil && app.ResumeText != "" {
		if err := s.queue.Enqueue(ctx, app.ID); err != nil {
			s.log.WithError(err).WithField("application_id", app.ID).
				Warn("failed to enqueue screening job")
		}
	}

	s.boardChanged(ctx, app.JobID, app.ID)
	return app, nil
}

func (s *applicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	const op = "ApplicationService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	return app, nil
}

func (s *applicationService) List(ctx context.Context, f pgrepo.ApplicationFilter) ([]models.Application, error) {
	const op = "ApplicationService.List"

	if f.Status != "" && !f.Status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status filter", nil)
	}
	rows, err := s.apps.List(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return rows, nil
}

// Transition moves an application to target. Any non-terminal stage may
// move to any other stage (skip-ahead is allowed), terminal stages are
// absorbing, and a same-status drop is an ordinary write. Concurrent
// transitions race last-write-wins; there is no row versioning.
func (s *applicationService) Transition(ctx context.Context, id string, target models.ApplicationStatus, actorID, note string) (*models.Application, error) {
	const op = "ApplicationService.Transition"

	if !target.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status "+string(target), nil)
	}

	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}

	if app.Status.Terminal() && target != app.Status {
		return nil, utils.E(utils.CodeConflict, op, "application is in terminal status "+string(app.Status), nil)
	}

	from := app.Status
	app.Status = target
	app.UpdatedAt = time.Now().UTC()

	if err := s.apps.Update(ctx, app); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}

	// Audit trail and candidate mail are best-effort; the status change
	// already landed and is not rolled back on their failure.
	if s.history != nil {
		ev := &models.StatusEvent{
			ApplicationID: app.ID,
			From:          from,
			To:            target,
			ActorID:       actorID,
			Note:          note,
			OccurredAt:    app.UpdatedAt,
		}
		if err := s.history.Insert(ctx, ev); err != nil {
			s.log.WithError(err).WithField("application_id", app.ID).
				Warn("failed to record status event")
		}
	}
	if s.notifier != nil && from != target {
		if err := s.notifier.StatusChanged(ctx, app, from, target); err != nil {
			s.log.WithError(err).WithField("application_id", app.ID).
				Warn("failed to notify candidate")
		}
	}

	s.boardChanged(ctx, app.JobID, app.ID)
	return app, nil
}

func (s *applicationService) History(ctx context.Context, id string) ([]models.StatusEvent, error) {
	const op = "ApplicationService.History"

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if s.history == nil {
		return nil, nil
	}
	evs, err := s.history.ListByApplication(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list status events", err)
	}
	return evs, nil
}

func (s *applicationService) Similar(ctx context.Context, id string, limit int) ([]pgrepo.SimilarApplication, error) {
	const op = "ApplicationService.Similar"

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.apps.SimilarByEmbedding(ctx, id, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to query similar applications", err)
	}
	return rows, nil
}

// boardChanged drops the cached lane projection and pings dashboards.
func (s *applicationService) boardChanged(ctx context.Context, jobID, appID string) {
	if s.cache != nil {
		if err := s.cache.Del(ctx, BoardCacheKey(""), BoardCacheKey(jobID)); err != nil {
			s.log.WithError(err).Warn("failed to invalidate board cache")
		}
	}
	if s.pub != nil {
		ev := events.BoardEvent{Type: "pipeline.changed", JobID: jobID, ApplicationID: appID}
		if err := s.pub.Publish(ctx, events.ChannelBoard, ev); err != nil {
			s.log.WithError(err).Warn("failed to publish board event")
		}
	}
}
