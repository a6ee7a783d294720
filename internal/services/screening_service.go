package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hireboard/api/internal/cache"
	"github.com/hireboard/api/internal/models"
	"github.com/hireboard/api/internal/providers/llm"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/utils"
	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ResumeProfile is the structured record the analysis model returns.
// Experience is expected most-recent-first; callers treating the first
// entry as the current role rely on that ordering as a heuristic, the
// model is asked for it but it is not verified.
type ResumeProfile struct {
	Personal struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Location string `json:"location"`
	} `json:"personal"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
	Summary    string            `json:"summary"`
	Score      int               `json:"score"`
}

type ExperienceEntry struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Summary   string `json:"summary"`
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// CurrentRole returns the first experience entry, the best-effort
// "current role" mapping used to pre-fill forms.
func (p *ResumeProfile) CurrentRole() *ExperienceEntry {
	if len(p.Experience) == 0 {
		return nil
	}
	return &p.Experience[0]
}

const screeningPrompt = `You are a resume screening assistant for a hiring team.
Analyze the resume below against the job description and produce structured data.

### INSTRUCTIONS:
1. Extract the candidate's details strictly from the resume text.
2. Order the experience list most recent first.
3. Score the candidate 0-100 for fit against the job description (use 50 if no description is given).
4. Output valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
  "personal": {"full_name": "", "email": "", "phone": "", "location": ""},
  "experience": [{"title": "", "company": "", "start_date": "", "end_date": "", "summary": ""}],
  "education": [{"institution": "", "degree": "", "year": ""}],
  "skills": ["Go", "SQL"],
  "summary": "Two or three sentences on the candidate.",
  "score": 0
}

### CONSTRAINT:
If a piece of information is missing, use an empty string. Do not guess.

### JOB DESCRIPTION:
%s

### RESUME:
%s
`

type ScreeningService interface {
	// Analyze runs a fresh analysis and persists the result. Upstream
	// or unparseable model output surfaces as UNAVAILABLE; the record
	// keeps its previous score.
	Analyze(ctx context.Context, applicationID string) (*models.Application, error)
}

type screeningService struct {
	apps     pgrepo.ApplicationRepository
	jobs     pgrepo.JobRepository
	provider llm.Provider
	embedder llm.Embedder
	cache    cache.Cache
	log      *logrus.Logger
}

func NewScreeningService(
	apps pgrepo.ApplicationRepository,
	jobs pgrepo.JobRepository,
	provider llm.Provider,
	embedder llm.Embedder,
	c cache.Cache,
	log *logrus.Logger,
) ScreeningService {
	return &screeningService{apps: apps, jobs: jobs, provider: provider, embedder: embedder, cache: c, log: log}
}

func (s *screeningService) Analyze(ctx context.Context, applicationID string) (*models.Application, error) {
	const op = "ScreeningService.Analyze"

	if applicationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application id is required", nil)
	}
	if s.provider == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "analysis provider is not configured", nil)
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}

	text := strings.TrimSpace(app.ResumeText)
	if text == "" {
		text = strings.TrimSpace(app.CoverLetter)
	}
	if text == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application has no resume text to analyze", nil)
	}

	jobDesc := "(general application, no specific posting)"
	if app.JobID != models.GeneralJobID {
		if job, err := s.jobs.GetByID(ctx, app.JobID); err == nil {
			jobDesc = job.Title + "\n" + job.Description
		}
	}

	raw, err := s.provider.Generate(ctx, fmt.Sprintf(screeningPrompt, jobDesc, text))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "resume analysis call failed", err)
	}

	profile, err := parseProfile(raw)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "resume analysis returned unparseable output", err)
	}

	score := profile.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	app.AIScore = &score
	app.AISummary = profile.Summary
	app.Skills = profile.Skills
	if b, err := json.Marshal(profile.Experience); err == nil {
		app.Experience = datatypes.JSON(b)
	}
	if b, err := json.Marshal(profile.Education); err == nil {
		app.Education = datatypes.JSON(b)
	}

	// Embedding failures degrade similar-candidate search only.
	if s.embedder != nil {
		if vec, err := s.embedder.Embed(ctx, text); err != nil {
			s.log.WithError(err).WithField("application_id", app.ID).
				Warn("failed to embed resume text")
		} else {
			app.ResumeEmbedding = pgvector.NewVector(vec)
		}
	}

	if err := s.apps.Update(ctx, app); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist analysis", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, BoardCacheKey(""), BoardCacheKey(app.JobID))
	}
	return app, nil
}

// parseProfile tolerates a markdown fence around the JSON but nothing
// else; anything unparseable is the caller's UNAVAILABLE case.
func parseProfile(raw string) (*ResumeProfile, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
		raw = strings.TrimSpace(raw)
	}
	var p ResumeProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
