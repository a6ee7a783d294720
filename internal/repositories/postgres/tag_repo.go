package postgres

import (
	"context"
	"errors"

	"github.com/hireboard/api/internal/models"
	"github.com/hireboard/api/internal/utils"
	"gorm.io/gorm"
)

type TagRepository interface {
	Insert(ctx context.Context, t *models.CandidateTag) error
	GetByID(ctx context.Context, id string) (*models.CandidateTag, error)
	Update(ctx context.Context, t *models.CandidateTag) error
	// Delete removes the tag and cascades its join rows in one transaction.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.CandidateTag, error)

	Attach(ctx context.Context, at *models.ApplicationTag) error
	Detach(ctx context.Context, applicationID, tagID string) error
	ListForApplication(ctx context.Context, applicationID string) ([]models.CandidateTag, error)
}

type tagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) Insert(ctx context.Context, t *models.CandidateTag) error {
	err := r.db.WithContext(ctx).Create(t).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

func (r *tagRepo) GetByID(ctx context.Context, id string) (*models.CandidateTag, error) {
	var t models.CandidateTag
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &t, err
}

func (r *tagRepo) Update(ctx context.Context, t *models.CandidateTag) error {
	res := r.db.WithContext(ctx).
		Model(&models.CandidateTag{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"name":        t.Name,
			"color":       t.Color,
			"description": t.Description,
		})
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *tagRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.ApplicationTag{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.CandidateTag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}

func (r *tagRepo) List(ctx context.Context) ([]models.CandidateTag, error) {
	var rows []models.CandidateTag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *tagRepo) Attach(ctx context.Context, at *models.ApplicationTag) error {
	err := r.db.WithContext(ctx).Create(at).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

// Detach is a no-op when the pair does not exist.
func (r *tagRepo) Detach(ctx context.Context, applicationID, tagID string) error {
	return r.db.WithContext(ctx).
		Where("application_id = ? AND tag_id = ?", applicationID, tagID).
		Delete(&models.ApplicationTag{}).Error
}

func (r *tagRepo) ListForApplication(ctx context.Context, applicationID string) ([]models.CandidateTag, error) {
	var rows []models.CandidateTag
	err := r.db.WithContext(ctx).
		Model(&models.CandidateTag{}).
		Joins("JOIN application_tags ON application_tags.tag_id = candidate_tags.id").
		Where("application_tags.application_id = ?", applicationID).
		Order("candidate_tags.name ASC").
		Find(&rows).Error
	return rows, err
}
