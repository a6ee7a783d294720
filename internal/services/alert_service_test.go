package services

import (
	"context"
	"testing"

	"github.com/hireboard/api/internal/models"
	"github.com/hireboard/api/internal/utils"
)

func newAlertFixture() (AlertService, *fakeAlertRepo, *fakeNotifier) {
	alerts := newFakeAlertRepo()
	notifier := &fakeNotifier{}
	return NewAlertService(alerts, notifier, quietLogger()), alerts, notifier
}

func TestSubscribeIsIdempotentPerPair(t *testing.T) {
	svc, alerts, _ := newAlertFixture()

	first, err := svc.Subscribe(context.Background(), "Dev@Example.com", "Backend")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if first.Email != "dev@example.com" || first.Keyword != "backend" {
		t.Fatalf("alert not normalized: %+v", first)
	}

	second, err := svc.Subscribe(context.Background(), "dev@example.com", "backend")
	if err != nil {
		t.Fatalf("repeat Subscribe: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("repeat subscribe created a second alert")
	}

	rows, _ := alerts.List(context.Background())
	if len(rows) != 1 {
		t.Fatalf("alerts = %d, want 1", len(rows))
	}
}

func TestSubscribeRejectsBadEmail(t *testing.T) {
	svc, _, _ := newAlertFixture()

	_, err := svc.Subscribe(context.Background(), "not-an-email", "go")
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	svc, _, _ := newAlertFixture()
	a, err := svc.Subscribe(context.Background(), "dev@example.com", "go")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := svc.Unsubscribe(context.Background(), a.ID); err != nil {
		t.Fatalf("first Unsubscribe: %v", err)
	}
	if err := svc.Unsubscribe(context.Background(), a.ID); err != nil {
		t.Fatalf("repeat Unsubscribe should be a no-op, got %v", err)
	}
}

func TestNotifyJobPostedMatchesKeyword(t *testing.T) {
	svc, _, notifier := newAlertFixture()

	subs := []struct{ email, keyword string }{
		{"go-dev@example.com", "backend"},
		{"fe-dev@example.com", "react"},
		{"any@example.com", ""}, // empty keyword matches every posting
	}
	for _, s := range subs {
		if _, err := svc.Subscribe(context.Background(), s.email, s.keyword); err != nil {
			t.Fatalf("subscribe %s: %v", s.email, err)
		}
	}

	svc.NotifyJobPosted(context.Background(), &models.Job{
		ID:     "job1",
		Title:  "Senior Backend Engineer",
		Status: models.JobOpen,
	})

	got := map[string]bool{}
	for _, email := range notifier.posted {
		got[email] = true
	}
	if !got["go-dev@example.com"] || !got["any@example.com"] {
		t.Fatalf("matching alerts skipped: %v", notifier.posted)
	}
	if got["fe-dev@example.com"] {
		t.Fatalf("non-matching keyword notified: %v", notifier.posted)
	}
}
