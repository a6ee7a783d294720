package notify

import (
	"context"

	"github.com/hireboard/api/internal/models"
	"github.com/sirupsen/logrus"
)

// Notifier tells a candidate their application moved. Callers treat the
// signal as best-effort: a failed notification never fails the mutation.
type Notifier interface {
	StatusChanged(ctx context.Context, app *models.Application, from, to models.ApplicationStatus) error
	JobPosted(ctx context.Context, alert *models.JobAlert, job *models.Job) error
}

// LogNotifier is the fallback when no mail transport is configured.
type LogNotifier struct {
	Log *logrus.Logger
}

func (n *LogNotifier) StatusChanged(_ context.Context, app *models.Application, from, to models.ApplicationStatus) error {
	if n.Log != nil {
		n.Log.WithFields(logrus.Fields{
			"application_id": app.ID,
			"candidate":      app.CandidateEmail,
			"from":           from,
			"to":             to,
		}).Info("candidate notification (log only)")
	}
	return nil
}

func (n *LogNotifier) JobPosted(_ context.Context, alert *models.JobAlert, job *models.Job) error {
	if n.Log != nil {
		n.Log.WithFields(logrus.Fields{
			"alert_id": alert.ID,
			"email":    alert.Email,
			"job_id":   job.ID,
		}).Info("job alert notification (log only)")
	}
	return nil
}
