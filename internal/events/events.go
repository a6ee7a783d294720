package events

import "context"

// ChannelBoard carries pipeline-changed notifications consumed by the
// admin board WebSocket feed.
const ChannelBoard = "board:events"

// StreamScreening is the redis stream holding queued screening jobs.
const StreamScreening = "screening:stream"

type Publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// ScreeningQueue enqueues an application for background resume analysis.
type ScreeningQueue interface {
	Enqueue(ctx context.Context, applicationID string) error
}

// BoardEvent is the payload pushed to dashboards. Clients refetch the
// board on receipt; the event itself carries no application data.
type BoardEvent struct {
	Type          string `json:"type"`
	JobID         string `json:"job_id,omitempty"`
	ApplicationID string `json:"application_id,omitempty"`
}
