package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hireboard/api/internal/models"
)

func seedBoardApp(t *testing.T, repo *fakeAppRepo, id, jobID string, status models.ApplicationStatus) {
	t.Helper()
	now := time.Now().UTC()
	err := repo.Insert(context.Background(), &models.Application{
		ID:             id,
		JobID:          jobID,
		CandidateName:  "Candidate " + id,
		CandidateEmail: id + "@example.com",
		Status:         status,
		AppliedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestSnapshotEmitsEveryLaneInOrder(t *testing.T) {
	apps := newFakeAppRepo()
	svc := NewBoardService(apps, nil)

	board, err := svc.Snapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(board.Lanes) != len(models.PipelineStatuses) {
		t.Fatalf("lanes = %d, want %d", len(board.Lanes), len(models.PipelineStatuses))
	}
	for i, st := range models.PipelineStatuses {
		lane := board.Lanes[i]
		if lane.Status != st {
			t.Fatalf("lane[%d] = %q, want %q", i, lane.Status, st)
		}
		if lane.Applications == nil {
			t.Fatalf("lane %q applications is nil, want empty slice", st)
		}
		if len(lane.Applications) != 0 {
			t.Fatalf("lane %q holds %d cards on an empty board", st, len(lane.Applications))
		}
	}
}

func TestSnapshotPartitionsByStatus(t *testing.T) {
	apps := newFakeAppRepo()
	svc := NewBoardService(apps, nil)

	seedBoardApp(t, apps, "a1", models.GeneralJobID, models.StatusApplied)
	seedBoardApp(t, apps, "a2", models.GeneralJobID, models.StatusApplied)
	seedBoardApp(t, apps, "a3", models.GeneralJobID, models.StatusInterviewed)
	seedBoardApp(t, apps, "a4", models.GeneralJobID, models.StatusHired)

	board, err := svc.Snapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	counts := map[models.ApplicationStatus]int{}
	for _, lane := range board.Lanes {
		counts[lane.Status] = len(lane.Applications)
	}
	want := map[models.ApplicationStatus]int{
		models.StatusApplied:     2,
		models.StatusScreened:    0,
		models.StatusInterviewed: 1,
		models.StatusOffer:       0,
		models.StatusHired:       1,
		models.StatusRejected:    0,
	}
	for st, n := range want {
		if counts[st] != n {
			t.Fatalf("lane %q = %d cards, want %d", st, counts[st], n)
		}
	}
}

func TestSnapshotFiltersByJob(t *testing.T) {
	apps := newFakeAppRepo()
	svc := NewBoardService(apps, nil)

	seedBoardApp(t, apps, "a1", "job1", models.StatusApplied)
	seedBoardApp(t, apps, "a2", "job2", models.StatusApplied)

	board, err := svc.Snapshot(context.Background(), "job1")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	total := 0
	for _, lane := range board.Lanes {
		total += len(lane.Applications)
	}
	if total != 1 {
		t.Fatalf("cards = %d, want only job1's card", total)
	}
	if board.Lanes[0].Applications[0].ID != "a1" {
		t.Fatalf("applied lane holds %q, want a1", board.Lanes[0].Applications[0].ID)
	}
}

func TestSnapshotReflectsSkipAheadMove(t *testing.T) {
	f := newAppServiceFixture()
	boards := NewBoardService(f.apps, nil)
	seedApplication(t, f, "app1", models.StatusApplied)

	if _, err := f.svc.Transition(context.Background(), "app1", models.StatusHired, "hr1", ""); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	board, err := boards.Snapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	for _, lane := range board.Lanes {
		switch lane.Status {
		case models.StatusHired:
			if len(lane.Applications) != 1 {
				t.Fatalf("hired lane = %d cards, want 1", len(lane.Applications))
			}
		default:
			if len(lane.Applications) != 0 {
				t.Fatalf("lane %q = %d cards, want 0 after the move", lane.Status, len(lane.Applications))
			}
		}
	}
}

func TestSnapshotUsesCacheOnSecondRead(t *testing.T) {
	apps := newFakeAppRepo()
	c := &replayCache{stored: map[string][]byte{}}
	svc := NewBoardService(apps, c)

	seedBoardApp(t, apps, "a1", models.GeneralJobID, models.StatusApplied)

	first, err := svc.Snapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("first Snapshot: %v", err)
	}

	// A new row lands, but the cached projection is still live.
	seedBoardApp(t, apps, "a2", models.GeneralJobID, models.StatusApplied)

	second, err := svc.Snapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("second Snapshot: %v", err)
	}
	if !second.GeneratedAt.Equal(first.GeneratedAt) {
		t.Fatalf("second read rebuilt the board instead of serving the cache")
	}
	if got := len(second.Lanes[0].Applications); got != 1 {
		t.Fatalf("cached applied lane = %d cards, want the snapshot taken before a2", got)
	}
}

// replayCache actually round-trips stored JSON, unlike fakeCache which
// always misses.
type replayCache struct {
	stored map[string][]byte
}

func (c *replayCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.stored[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *replayCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.stored[key] = b
	return nil
}

func (c *replayCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.stored, k)
	}
	return nil
}
