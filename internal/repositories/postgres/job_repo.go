package postgres

import (
	"context"
	"errors"

	"github.com/hireboard/api/internal/models"
	"github.com/hireboard/api/internal/utils"
	"gorm.io/gorm"
)

type JobRepository interface {
	Insert(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyOpen bool) ([]models.Job, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Insert(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}

func (r *jobRepo) Update(ctx context.Context, j *models.Job) error {
	res := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", j.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(j)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) List(ctx context.Context, onlyOpen bool) ([]models.Job, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{})
	if onlyOpen {
		q = q.Where("status = ?", models.JobOpen)
	}
	var rows []models.Job
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}
