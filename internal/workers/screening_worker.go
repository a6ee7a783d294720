package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/hireboard/api/internal/events"
	"github.com/hireboard/api/internal/services"
	"github.com/hireboard/api/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ScreeningWorkerPool drains the screening stream and runs the resume
// analysis for each queued application. Intake enqueues; the reanalyze
// endpoint bypasses the queue and calls the service directly.
type ScreeningWorkerPool struct {
	Redis      *redis.Client
	Screening  services.ScreeningService
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *ScreeningWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Screening == nil {
		return errors.New("ScreeningWorkerPool missing dependency: Redis/Screening must be set")
	}
	if p.Stream == "" {
		p.Stream = events.StreamScreening
	}
	if p.Group == "" {
		p.Group = "screening-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 3
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *ScreeningWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *ScreeningWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	appID, _ := msg.Values["application_id"].(string)
	if appID == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":       msg.ID,
		"application_id": appID,
	})

	start := time.Now()
	app, err := p.Screening.Analyze(ctx, appID)
	if err != nil {
		// Screening is best-effort; the application stays scoreless and
		// HR falls back to manual review (or hits reanalyze later).
		if utils.IsCode(err, utils.CodeUnavailable) {
			log.WithError(err).Warn("screening upstream failed")
		} else {
			log.WithError(err).Error("screening failed")
		}
		return
	}

	fields := logrus.Fields{"latency_ms": time.Since(start).Milliseconds()}
	if app.AIScore != nil {
		fields["score"] = *app.AIScore
	}
	log.WithFields(fields).Info("screening done")
}
