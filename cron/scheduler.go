package cron

import (
	"queuedesk/config"
	"queuedesk/services/tasks"
	"queuedesk/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Entry is one periodic job.
type Entry struct {
	Spec    string
	Type    string
	Payload tasks.JobPayload
}

// Schedule lists the configured periodic jobs. Jobs with an empty cron
// spec are left out.
func Schedule(cfg config.Config) []Entry {
	all := []Entry{
		{Spec: cfg.CronProcessBookings, Type: tasks.TypeProcessBookings},
		{Spec: cfg.CronConfirmNotify, Type: tasks.TypeConfirmNotify, Payload: tasks.JobPayload{DaysBefore: 1}},
		{Spec: cfg.CronCancelBookings, Type: tasks.TypeCancelBookings},
		{Spec: cfg.CronSurveys, Type: tasks.TypeSurveys},
		{Spec: cfg.CronCancelAttentions, Type: tasks.TypeCancelAttentions},
	}
	entries := make([]Entry, 0, len(all))
	for _, e := range all {
		if e.Spec != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

// InitJobScheduler registers the periodic jobs and starts enqueueing them
// in the jobs timezone.
func InitJobScheduler() (*asynq.Scheduler, error) {
	logger := utils.GetLogger()
	scheduler := asynq.NewScheduler(redisOpt(), &asynq.SchedulerOpts{
		Location: utils.Location(config.AppConfig.JobsTimezone),
		Logger:   logger.Sugar(),
	})

	for _, e := range Schedule(config.AppConfig) {
		task, err := tasks.NewJobTask(e.Type, e.Payload)
		if err != nil {
			return nil, err
		}
		id, err := scheduler.Register(e.Spec, task, asynq.MaxRetry(3))
		if err != nil {
			return nil, err
		}
		logger.Info("job scheduled", zap.String("task", e.Type), zap.String("spec", e.Spec), zap.String("entryId", id))
	}

	if err := scheduler.Start(); err != nil {
		return nil, err
	}
	return scheduler, nil
}
