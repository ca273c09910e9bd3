package queue

import (
	"context"
	"errors"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/events"
	"queuedesk/utils"

	"go.uber.org/zap"
)

const maxPointerRetries = 5

// QueueService owns the queue pointer.
type QueueService interface {
	GetQueueByID(ctx context.Context, id string) (*models.Queue, error)
	// IssueNumber atomically reserves the next sequence number.
	IssueNumber(ctx context.Context, queueID string) (int, error)
	// UpdatePointer applies fn to a fresh copy of the queue and saves the
	// pointer with a version check, retrying fn on conflicts.
	UpdatePointer(ctx context.Context, user, queueID string, fn func(q *models.Queue) error) (*models.Queue, error)
	// Serialize runs fn while holding the queue's in-process lock.
	Serialize(queueID string, fn func() error) error
}

type DefaultQueueService struct {
	Repo   repository.QueueRepository
	Events events.Publisher

	locks keyedMutex
}

func (s *DefaultQueueService) GetQueueByID(ctx context.Context, id string) (*models.Queue, error) {
	q, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load queue %s", id)
	}
	if q == nil {
		return nil, utils.NotFound("queue %s not found", id)
	}
	return q, nil
}

func (s *DefaultQueueService) IssueNumber(ctx context.Context, queueID string) (int, error) {
	n, err := s.Repo.IncrementCurrentNumber(ctx, queueID)
	if err != nil {
		return 0, utils.Wrap(utils.KindInternal, err, "failed to issue number on queue %s", queueID)
	}
	return n, nil
}

func (s *DefaultQueueService) UpdatePointer(ctx context.Context, user, queueID string, fn func(q *models.Queue) error) (*models.Queue, error) {
	for attempt := 1; attempt <= maxPointerRetries; attempt++ {
		q, err := s.GetQueueByID(ctx, queueID)
		if err != nil {
			return nil, err
		}
		if err := fn(q); err != nil {
			return nil, err
		}
		err = s.Repo.UpdatePointer(ctx, q)
		if err == nil {
			events.Emit(ctx, s.Events, models.EventQueueUpdated, user, q)
			return q, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, utils.Wrap(utils.KindInternal, err, "failed to save pointer of queue %s", queueID)
		}
		utils.GetLogger().Debug("queue pointer conflict, retrying",
			zap.String("queueId", queueID), zap.Int("attempt", attempt))
	}
	return nil, utils.Internal("queue %s pointer kept changing, gave up after %d attempts", queueID, maxPointerRetries)
}

func (s *DefaultQueueService) Serialize(queueID string, fn func() error) error {
	unlock := s.locks.lock(queueID)
	defer unlock()
	return fn()
}
