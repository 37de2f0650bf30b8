package cron

import (
	"context"
	"time"

	"citizenhub/config"
	"citizenhub/services/tasks"
	"citizenhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RatingRecomputer refreshes the review statistics of one service.
type RatingRecomputer interface {
	RecomputeRating(ctx context.Context, serviceID string) error
}

// QueueRedisOpt is the asynq connection shared by the client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitRatingWorker runs the async worker in background and returns the
// server so the caller can shut it down.
func InitRatingWorker(recomputer RatingRecomputer) *asynq.Server {
	logger := utils.GetLogger()
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRecomputeRating, handleRatingTask(recomputer))

	go func() {
		logger.Info("starting rating worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("rating worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("rating worker gave up; ratings will not refresh")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleRatingTask(recomputer RatingRecomputer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseRatingPayload(task)
		if err != nil {
			utils.GetLogger().Warn("dropping rating task", zap.Error(err))
			return asynq.SkipRetry
		}
		if err := recomputer.RecomputeRating(ctx, p.ServiceID); err != nil {
			utils.GetLogger().Error("rating recompute failed", zap.String("serviceId", p.ServiceID), zap.Error(err))
			return err
		}
		return nil
	}
}
