package services

import (
	"context"
	"time"

	"github.com/hireboard/api/internal/cache"
	"github.com/hireboard/api/internal/models"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/utils"
)

// Lane is one board column; every pipeline stage gets a lane even when
// it holds no cards.
type Lane struct {
	Status       models.ApplicationStatus `json:"status"`
	Applications []models.Application     `json:"applications"`
}

type Board struct {
	JobID       string    `json:"job_id,omitempty"`
	Lanes       []Lane    `json:"lanes"`
	GeneratedAt time.Time `json:"generated_at"`
}

type BoardService interface {
	Snapshot(ctx context.Context, jobID string) (*Board, error)
}

// BoardCacheKey is shared with the mutation paths that invalidate it.
func BoardCacheKey(jobID string) string {
	if jobID == "" {
		return cache.Key("board", "all")
	}
	return cache.Key("board", jobID)
}

const boardCacheTTL = 15 * time.Second

type boardService struct {
	apps  pgrepo.ApplicationRepository
	cache cache.Cache
}

func NewBoardService(apps pgrepo.ApplicationRepository, c cache.Cache) BoardService {
	return &boardService{apps: apps, cache: c}
}

// Snapshot rebuilds the full partition from one query; there is no
// incremental diffing. Mutations drop the cache entry, so dashboards
// see at most boardCacheTTL of staleness after a quiet period.
func (s *boardService) Snapshot(ctx context.Context, jobID string) (*Board, error) {
	const op = "BoardService.Snapshot"

	key := BoardCacheKey(jobID)
	if s.cache != nil {
		var cached Board
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.apps.List(ctx, pgrepo.ApplicationFilter{JobID: jobID})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load applications", err)
	}

	byStatus := make(map[models.ApplicationStatus][]models.Application, len(models.PipelineStatuses))
	for _, a := range rows {
		byStatus[a.Status] = append(byStatus[a.Status], a)
	}

	board := &Board{JobID: jobID, GeneratedAt: time.Now().UTC()}
	for _, st := range models.PipelineStatuses {
		apps := byStatus[st]
		if apps == nil {
			apps = []models.Application{}
		}
		board.Lanes = append(board.Lanes, Lane{Status: st, Applications: apps})
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, board, boardCacheTTL)
	}
	return board, nil
}
