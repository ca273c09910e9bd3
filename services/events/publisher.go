// Package events publishes domain events after successful writes.
// Publish failures are logged and returned; callers never roll back a write
// because an event could not be delivered.
package events

import (
	"context"
	"sync"
	"time"

	"queuedesk/models"
	"queuedesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// New stamps an event with an id and the current time.
func New(name, user string, data interface{}) models.Event {
	return models.Event{
		ID:         uuid.New().String(),
		Name:       name,
		OccurredOn: time.Now().UTC(),
		Metadata:   models.EventMeta{User: user},
		Data:       data,
	}
}

// Emit publishes and swallows the error after logging it.
func Emit(ctx context.Context, p Publisher, name, user string, data interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, New(name, user, data)); err != nil {
		utils.GetLogger().Warn("event publish failed", zap.String("event", name), zap.Error(err))
	}
}

// LogPublisher writes events to the structured log only.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event models.Event) error {
	utils.GetLogger().Debug("domain event",
		zap.String("event", event.Name),
		zap.String("id", event.ID),
		zap.String("user", event.Metadata.User))
	return nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []models.Event
}

func (r *Recorder) Publish(_ context.Context, event models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
	return nil
}

// Names lists recorded event names in publish order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.Events))
	for i, e := range r.Events {
		names[i] = e.Name
	}
	return names
}
