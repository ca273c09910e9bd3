package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"queuedesk/config"
	"queuedesk/models"
	"queuedesk/services/tasks"
	"queuedesk/utils"

	"github.com/hibiken/asynq"
)

type fakeJobs struct {
	calls []string
	dates []string
	days  int
	err   error
}

func (f *fakeJobs) ProcessBookings(_ context.Context, date string) (models.BatchResult, error) {
	f.calls = append(f.calls, "process")
	f.dates = append(f.dates, date)
	return models.BatchResult{ToProcess: 1, Processed: 1}, f.err
}

func (f *fakeJobs) ConfirmNotifyBookings(_ context.Context, daysBefore int) (models.BatchResult, error) {
	f.calls = append(f.calls, "confirm-notify")
	f.days = daysBefore
	return models.BatchResult{}, f.err
}

func (f *fakeJobs) CancelBookings(context.Context) (models.BatchResult, error) {
	f.calls = append(f.calls, "cancel-bookings")
	return models.BatchResult{}, f.err
}

func (f *fakeJobs) SurveyPostAttention(_ context.Context, date string) (models.BatchResult, error) {
	f.calls = append(f.calls, "survey")
	f.dates = append(f.dates, date)
	return models.BatchResult{}, f.err
}

func (f *fakeJobs) CancelAttentions(context.Context) (models.BatchResult, error) {
	f.calls = append(f.calls, "cancel-attentions")
	return models.BatchResult{}, f.err
}

func newHandlers(jobs *fakeJobs) *Handlers {
	return &Handlers{
		Bookings:   jobs,
		Attentions: jobs,
		Timezone:   "UTC",
		Now:        func() time.Time { return time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC) },
	}
}

func run(t *testing.T, mux *asynq.ServeMux, taskType string, p tasks.JobPayload) error {
	t.Helper()
	task, err := tasks.NewJobTask(taskType, p)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return mux.ProcessTask(context.Background(), task)
}

func TestJobsRouteToServices(t *testing.T) {
	tests := []struct {
		taskType string
		payload  tasks.JobPayload
		call     string
	}{
		{tasks.TypeProcessBookings, tasks.JobPayload{}, "process"},
		{tasks.TypeConfirmNotify, tasks.JobPayload{}, "confirm-notify"},
		{tasks.TypeCancelBookings, tasks.JobPayload{}, "cancel-bookings"},
		{tasks.TypeSurveys, tasks.JobPayload{Date: "2026-03-01"}, "survey"},
		{tasks.TypeCancelAttentions, tasks.JobPayload{}, "cancel-attentions"},
	}
	for _, tt := range tests {
		t.Run(tt.taskType, func(t *testing.T) {
			jobs := &fakeJobs{}
			if err := run(t, NewServeMux(newHandlers(jobs)), tt.taskType, tt.payload); err != nil {
				t.Fatalf("process task: %v", err)
			}
			if len(jobs.calls) != 1 || jobs.calls[0] != tt.call {
				t.Fatalf("calls = %v, want [%s]", jobs.calls, tt.call)
			}
		})
	}
}

func TestJobDefaults(t *testing.T) {
	jobs := &fakeJobs{}
	mux := NewServeMux(newHandlers(jobs))
	if err := run(t, mux, tasks.TypeProcessBookings, tasks.JobPayload{}); err != nil {
		t.Fatalf("process: %v", err)
	}
	if err := run(t, mux, tasks.TypeSurveys, tasks.JobPayload{Date: "2026-03-01"}); err != nil {
		t.Fatalf("survey: %v", err)
	}
	if err := run(t, mux, tasks.TypeConfirmNotify, tasks.JobPayload{}); err != nil {
		t.Fatalf("confirm notify: %v", err)
	}
	if jobs.dates[0] != "2026-03-10" || jobs.dates[1] != "2026-03-01" {
		t.Fatalf("dates = %v", jobs.dates)
	}
	if jobs.days != 1 {
		t.Fatalf("daysBefore = %d, want 1", jobs.days)
	}
}

func TestBadRequestIsNotRetried(t *testing.T) {
	mux := NewServeMux(newHandlers(&fakeJobs{err: utils.BadRequest("no date")}))
	if err := run(t, mux, tasks.TypeProcessBookings, tasks.JobPayload{}); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}

	mux = NewServeMux(newHandlers(&fakeJobs{err: utils.Internal("db down")}))
	err := run(t, mux, tasks.TypeCancelBookings, tasks.JobPayload{})
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("internal failures should be retried, got %v", err)
	}

	bad := asynq.NewTask(tasks.TypeSurveys, []byte("{"))
	if err := NewServeMux(newHandlers(&fakeJobs{})).ProcessTask(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for a broken payload, got %v", err)
	}
}

func TestScheduleSkipsEmptySpecs(t *testing.T) {
	cfg := config.Config{
		CronProcessBookings:  "0 6 * * *",
		CronConfirmNotify:    "0 9 * * *",
		CronCancelBookings:   "",
		CronSurveys:          "0 10 * * *",
		CronCancelAttentions: "0 1 * * *",
	}
	entries := Schedule(cfg)
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	for _, e := range entries {
		if e.Type == tasks.TypeCancelBookings {
			t.Fatalf("job without a spec was scheduled")
		}
		if e.Type == tasks.TypeConfirmNotify && e.Payload.DaysBefore != 1 {
			t.Fatalf("confirm notify should remind one day ahead")
		}
	}
}
