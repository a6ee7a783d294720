package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, channel, b).Err()
}

type RedisScreeningQueue struct {
	rdb *redis.Client
}

func NewRedisScreeningQueue(rdb *redis.Client) *RedisScreeningQueue {
	return &RedisScreeningQueue{rdb: rdb}
}

func (q *RedisScreeningQueue) Enqueue(ctx context.Context, applicationID string) error {
	return q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamScreening,
		Values: map[string]any{"application_id": applicationID},
	}).Err()
}
