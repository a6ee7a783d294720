package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hireboard/api/internal/models"
	"github.com/hireboard/api/internal/notify"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/utils"
	"github.com/sirupsen/logrus"
)

type AlertService interface {
	// Subscribe is idempotent per (email, keyword) pair.
	Subscribe(ctx context.Context, email, keyword string) (*models.JobAlert, error)
	Unsubscribe(ctx context.Context, id string) error
	// NotifyJobPosted fans a new open posting out to matching alerts.
	// Delivery is best-effort; failures are logged.
	NotifyJobPosted(ctx context.Context, job *models.Job)
}

type alertService struct {
	alerts   pgrepo.JobAlertRepository
	notifier notify.Notifier
	log      *logrus.Logger
}

func NewAlertService(alerts pgrepo.JobAlertRepository, notifier notify.Notifier, log *logrus.Logger) AlertService {
	return &alertService{alerts: alerts, notifier: notifier, log: log}
}

func (s *alertService) Subscribe(ctx context.Context, email, keyword string) (*models.JobAlert, error) {
	const op = "AlertService.Subscribe"

	email = strings.ToLower(strings.TrimSpace(email))
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is not valid", err)
	}

	if existing, err := s.alerts.GetByEmailKeyword(ctx, email, keyword); err == nil {
		return existing, nil
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up alert", err)
	}

	a := &models.JobAlert{
		ID:        uuid.NewString(),
		Email:     email,
		Keyword:   keyword,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.alerts.Insert(ctx, a); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create alert", err)
	}
	return a, nil
}

func (s *alertService) Unsubscribe(ctx context.Context, id string) error {
	const op = "AlertService.Unsubscribe"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if err := s.alerts.Delete(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete alert", err)
	}
	return nil
}

func (s *alertService) NotifyJobPosted(ctx context.Context, job *models.Job) {
	if s.notifier == nil {
		return
	}
	alerts, err := s.alerts.List(ctx)
	if err != nil {
		s.log.WithError(err).Warn("failed to list job alerts")
		return
	}

	title := strings.ToLower(job.Title)
	for i := range alerts {
		a := &alerts[i]
		if a.Keyword != "" && !strings.Contains(title, a.Keyword) {
			continue
		}
		if err := s.notifier.JobPosted(ctx, a, job); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"alert_id": a.ID,
				"job_id":   job.ID,
			}).Warn("failed to send job alert")
		}
	}
}
