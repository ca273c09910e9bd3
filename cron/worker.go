package cron

import (
	"context"
	"fmt"
	"time"

	"queuedesk/config"
	"queuedesk/models"
	"queuedesk/services/tasks"
	"queuedesk/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingJobs are the booking operations run on a schedule.
type BookingJobs interface {
	ProcessBookings(ctx context.Context, date string) (models.BatchResult, error)
	ConfirmNotifyBookings(ctx context.Context, daysBefore int) (models.BatchResult, error)
	CancelBookings(ctx context.Context) (models.BatchResult, error)
}

// AttentionJobs are the attention operations run on a schedule.
type AttentionJobs interface {
	SurveyPostAttention(ctx context.Context, date string) (models.BatchResult, error)
	CancelAttentions(ctx context.Context) (models.BatchResult, error)
}

// Handlers turn job tasks into service calls.
type Handlers struct {
	Bookings   BookingJobs
	Attentions AttentionJobs
	Timezone   string
	Now        func() time.Time
}

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
	}
}

// NewServeMux routes every job type to its handler.
func NewServeMux(h *Handlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeProcessBookings, h.job(func(ctx context.Context, p tasks.JobPayload) (models.BatchResult, error) {
		return h.Bookings.ProcessBookings(ctx, h.date(p))
	}))
	mux.HandleFunc(tasks.TypeConfirmNotify, h.job(func(ctx context.Context, p tasks.JobPayload) (models.BatchResult, error) {
		days := p.DaysBefore
		if days <= 0 {
			days = 1
		}
		return h.Bookings.ConfirmNotifyBookings(ctx, days)
	}))
	mux.HandleFunc(tasks.TypeCancelBookings, h.job(func(ctx context.Context, _ tasks.JobPayload) (models.BatchResult, error) {
		return h.Bookings.CancelBookings(ctx)
	}))
	mux.HandleFunc(tasks.TypeSurveys, h.job(func(ctx context.Context, p tasks.JobPayload) (models.BatchResult, error) {
		return h.Attentions.SurveyPostAttention(ctx, h.date(p))
	}))
	mux.HandleFunc(tasks.TypeCancelAttentions, h.job(func(ctx context.Context, _ tasks.JobPayload) (models.BatchResult, error) {
		return h.Attentions.CancelAttentions(ctx)
	}))
	return mux
}

func (h *Handlers) date(p tasks.JobPayload) string {
	if p.Date != "" {
		return p.Date
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return utils.TodayIn(h.Timezone, now())
}

// job decodes the payload and logs the batch outcome. Bad payloads and bad
// requests are not retried.
func (h *Handlers) job(run func(context.Context, tasks.JobPayload) (models.BatchResult, error)) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		log := utils.GetLogger().With(zap.String("task", task.Type()))
		p, err := tasks.ParsePayload(task)
		if err != nil {
			log.Error("invalid job payload", zap.Error(err))
			return fmt.Errorf("invalid payload for %s: %v: %w", task.Type(), err, asynq.SkipRetry)
		}

		result, err := run(ctx, p)
		if err != nil {
			log.Error("job failed", zap.Error(err))
			if utils.KindOf(err) == utils.KindBadRequest {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			return err
		}
		log.Info("job done",
			zap.Int("toProcess", result.ToProcess),
			zap.Int("processed", result.Processed),
			zap.Int("errors", result.Errors))
		return nil
	}
}

// InitJobWorker starts the job server in the background. The returned
// server must be shut down by the caller.
func InitJobWorker(h *Handlers) *asynq.Server {
	srv := asynq.NewServer(
		redisOpt(),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: utils.GetLogger().Sugar(),
		},
	)
	mux := NewServeMux(h)

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting job worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("failed to start job worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("job worker gave up, scheduled jobs are disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}
