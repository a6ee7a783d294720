package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hireboard/api/internal/models"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/utils"
)

type TagService interface {
	Create(ctx context.Context, name, color, description string) (*models.CandidateTag, error)
	Update(ctx context.Context, id, name, color, description string) (*models.CandidateTag, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.CandidateTag, error)

	Attach(ctx context.Context, applicationID, tagID string) (*models.ApplicationTag, error)
	Detach(ctx context.Context, applicationID, tagID string) error
	ListForApplication(ctx context.Context, applicationID string) ([]models.CandidateTag, error)
}

type tagService struct {
	tags pgrepo.TagRepository
	apps pgrepo.ApplicationRepository
}

func NewTagService(tags pgrepo.TagRepository, apps pgrepo.ApplicationRepository) TagService {
	return &tagService{tags: tags, apps: apps}
}

// Off-palette colors are rejected, not default-substituted, so every
// tag the UI renders comes from the fixed swatch set.
func validateTagInput(op, name, color string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "tag name is required", nil)
	}
	if !models.ValidTagColor(color) {
		return "", utils.E(utils.CodeInvalidArgument, op, "color is not in the tag palette", nil)
	}
	return name, nil
}

func (s *tagService) Create(ctx context.Context, name, color, description string) (*models.CandidateTag, error) {
	const op = "TagService.Create"

	name, err := validateTagInput(op, name, color)
	if err != nil {
		return nil, err
	}

	t := &models.CandidateTag{
		ID:          uuid.NewString(),
		Name:        name,
		Color:       color,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.tags.Insert(ctx, t); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "a tag with that name already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create tag", err)
	}
	return t, nil
}

func (s *tagService) Update(ctx context.Context, id, name, color, description string) (*models.CandidateTag, error) {
	const op = "TagService.Update"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "tag id is required", nil)
	}
	name, err := validateTagInput(op, name, color)
	if err != nil {
		return nil, err
	}

	t := &models.CandidateTag{
		ID:          id,
		Name:        name,
		Color:       color,
		Description: strings.TrimSpace(description),
	}
	if err := s.tags.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeNotFound, op, "tag not found", err)
		case errors.Is(err, utils.ErrDuplicate):
			return nil, utils.E(utils.CodeConflict, op, "a tag with that name already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update tag", err)
	}
	return s.tags.GetByID(ctx, id)
}

// Delete cascades the tag's attachments. A repeat delete reports not
// found; callers treat that as a non-fatal no-op.
func (s *tagService) Delete(ctx context.Context, id string) error {
	const op = "TagService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "tag id is required", nil)
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "tag not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete tag", err)
	}
	return nil
}

func (s *tagService) List(ctx context.Context) ([]models.CandidateTag, error) {
	const op = "TagService.List"

	rows, err := s.tags.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list tags", err)
	}
	return rows, nil
}

func (s *tagService) Attach(ctx context.Context, applicationID, tagID string) (*models.ApplicationTag, error) {
	const op = "TagService.Attach"

	if applicationID == "" || tagID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application id and tag id are required", nil)
	}
	if _, err := s.apps.GetByID(ctx, applicationID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "tag not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load tag", err)
	}

	at := &models.ApplicationTag{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		TagID:         tagID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.tags.Attach(ctx, at); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "tag already attached", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to attach tag", err)
	}
	return at, nil
}

// Detach is idempotent: a missing pair is success, not an error.
func (s *tagService) Detach(ctx context.Context, applicationID, tagID string) error {
	const op = "TagService.Detach"

	if applicationID == "" || tagID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "application id and tag id are required", nil)
	}
	if err := s.tags.Detach(ctx, applicationID, tagID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to detach tag", err)
	}
	return nil
}

func (s *tagService) ListForApplication(ctx context.Context, applicationID string) ([]models.CandidateTag, error) {
	const op = "TagService.ListForApplication"

	if applicationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application id is required", nil)
	}
	if _, err := s.apps.GetByID(ctx, applicationID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	rows, err := s.tags.ListForApplication(ctx, applicationID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list tags", err)
	}
	return rows, nil
}
