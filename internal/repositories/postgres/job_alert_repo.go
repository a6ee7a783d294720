package postgres

import (
	"context"
	"errors"

	"github.com/hireboard/api/internal/models"
	"github.com/hireboard/api/internal/utils"
	"gorm.io/gorm"
)

type JobAlertRepository interface {
	Insert(ctx context.Context, a *models.JobAlert) error
	// Delete is idempotent: removing an unknown alert is not an error.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.JobAlert, error)
	GetByEmailKeyword(ctx context.Context, email, keyword string) (*models.JobAlert, error)
}

type jobAlertRepo struct {
	db *gorm.DB
}

func NewJobAlertRepo(db *gorm.DB) JobAlertRepository {
	return &jobAlertRepo{db: db}
}

func (r *jobAlertRepo) Insert(ctx context.Context, a *models.JobAlert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *jobAlertRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.JobAlert{}).Error
}

func (r *jobAlertRepo) List(ctx context.Context) ([]models.JobAlert, error) {
	var rows []models.JobAlert
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *jobAlertRepo) GetByEmailKeyword(ctx context.Context, email, keyword string) (*models.JobAlert, error) {
	var a models.JobAlert
	err := r.db.WithContext(ctx).
		Where("email = ? AND keyword = ?", email, keyword).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}
