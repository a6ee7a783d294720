package mongo

import (
	"context"

	"github.com/hireboard/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StatusEventRepository interface {
	Insert(ctx context.Context, e *models.StatusEvent) error
	ListByApplication(ctx context.Context, applicationID string) ([]models.StatusEvent, error)
}

type statusEventRepo struct {
	col *mongo.Collection
}

func NewStatusEventRepo(db *mongo.Database) StatusEventRepository {
	return &statusEventRepo{col: db.Collection("status_events")}
}

func (r *statusEventRepo) Insert(ctx context.Context, e *models.StatusEvent) error {
	_, err := r.col.InsertOne(ctx, e)
	return err
}

// ListByApplication returns events newest-first.
func (r *statusEventRepo) ListByApplication(ctx context.Context, applicationID string) ([]models.StatusEvent, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"application_id": applicationID},
		options.Find().SetSort(bson.D{{Key: "occurred_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.StatusEvent
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
