package services

import (
	"context"
	"testing"

	"github.com/hireboard/api/internal/models"
	"github.com/hireboard/api/internal/utils"
)

func TestJobCreateDefaultsToOpenAndFansOutAlerts(t *testing.T) {
	jobs := newFakeJobRepo()
	alertSvc, _, notifier := newAlertFixture()
	svc := NewJobService(jobs, alertSvc)

	if _, err := alertSvc.Subscribe(context.Background(), "dev@example.com", "backend"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	j, err := svc.Create(context.Background(), JobInput{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if j.Status != models.JobOpen {
		t.Fatalf("status = %q, want open by default", j.Status)
	}
	if len(notifier.posted) != 1 {
		t.Fatalf("alert fan-out = %v, want one delivery", notifier.posted)
	}
}

func TestJobCreateClosedSkipsAlerts(t *testing.T) {
	jobs := newFakeJobRepo()
	alertSvc, _, notifier := newAlertFixture()
	svc := NewJobService(jobs, alertSvc)

	if _, err := alertSvc.Subscribe(context.Background(), "dev@example.com", ""); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if _, err := svc.Create(context.Background(), JobInput{Title: "Archived Role", Status: models.JobClosed}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(notifier.posted) != 0 {
		t.Fatalf("closed posting should not notify, got %v", notifier.posted)
	}
}

func TestJobCreateRejectsMalformedFormSchema(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), nil)

	_, err := svc.Create(context.Background(), JobInput{
		Title:      "Backend Engineer",
		FormSchema: []byte(`{"fields":[{"key":"a","kind":"rating"}]}`),
	})
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestJobUpdateUnknownID(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), nil)

	_, err := svc.Update(context.Background(), "missing", JobInput{Title: "Backend"})
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestJobListOnlyOpen(t *testing.T) {
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, nil)

	if _, err := svc.Create(context.Background(), JobInput{Title: "Open Role"}); err != nil {
		t.Fatalf("create open: %v", err)
	}
	if _, err := svc.Create(context.Background(), JobInput{Title: "Closed Role", Status: models.JobClosed}); err != nil {
		t.Fatalf("create closed: %v", err)
	}

	open, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(open) != 1 || open[0].Title != "Open Role" {
		t.Fatalf("open listing = %+v, want only the open role", open)
	}
}
