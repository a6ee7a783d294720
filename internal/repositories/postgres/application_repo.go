package postgres

import (
	"context"
	"errors"

	"github.com/hireboard/api/internal/models"
	"github.com/hireboard/api/internal/utils"
	"gorm.io/gorm"
)

// ApplicationFilter narrows List; zero values mean "any".
type ApplicationFilter struct {
	JobID  string
	Status models.ApplicationStatus
	TagID  string
}

// SimilarApplication pairs a candidate row with its embedding distance
// to the reference application (smaller is closer).
type SimilarApplication struct {
	models.Application
	Distance float64 `json:"distance"`
}

type ApplicationRepository interface {
	Insert(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Update(ctx context.Context, a *models.Application) error
	List(ctx context.Context, f ApplicationFilter) ([]models.Application, error)
	SimilarByEmbedding(ctx context.Context, id string, limit int) ([]SimilarApplication, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Insert(ctx context.Context, a *models.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

// Update saves the whole row. Concurrent writers race; the last save
// wins, which is the accepted semantics for pipeline mutations.
func (r *applicationRepo) Update(ctx context.Context, a *models.Application) error {
	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", a.ID).
		Select("*").
		Omit("id", "applied_at").
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) List(ctx context.Context, f ApplicationFilter) ([]models.Application, error) {
	q := r.db.WithContext(ctx).Model(&models.Application{})
	if f.JobID != "" {
		q = q.Where("applications.job_id = ?", f.JobID)
	}
	if f.Status != "" {
		q = q.Where("applications.status = ?", f.Status)
	}
	if f.TagID != "" {
		q = q.Joins("JOIN application_tags ON application_tags.application_id = applications.id").
			Where("application_tags.tag_id = ?", f.TagID)
	}

	var rows []models.Application
	err := q.Order("applications.applied_at DESC").Find(&rows).Error
	return rows, err
}

func (r *applicationRepo) SimilarByEmbedding(ctx context.Context, id string, limit int) ([]SimilarApplication, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []SimilarApplication
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.*, a.resume_embedding <=> ref.resume_embedding AS distance
		FROM applications a,
		     (SELECT resume_embedding FROM applications WHERE id = ?) ref
		WHERE a.id <> ?
		  AND a.resume_embedding IS NOT NULL
		  AND ref.resume_embedding IS NOT NULL
		ORDER BY distance ASC
		LIMIT ?`, id, id, limit).
		Scan(&rows).Error
	return rows, err
}
