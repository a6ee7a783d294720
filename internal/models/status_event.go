package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusEvent is an append-only audit record of a pipeline transition.
// Events live in Mongo; the relational row only keeps the current status.
type StatusEvent struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ApplicationID string             `bson:"application_id" json:"application_id"`
	From          ApplicationStatus  `bson:"from" json:"from"`
	To            ApplicationStatus  `bson:"to" json:"to"`
	ActorID       string             `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	OccurredAt    time.Time          `bson:"occurred_at" json:"occurred_at"`
}
