package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	queueRepo "queuedesk/database/repository/queue"
	"queuedesk/models"
)

type QueueRepo struct{ s *Store }

var _ queueRepo.QueueRepository = (*QueueRepo)(nil)

func (r *QueueRepo) GetByID(_ context.Context, id string) (*models.Queue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.queues[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *QueueRepo) Create(_ context.Context, queue *models.Queue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.queues[queue.ID]; ok {
		return fmt.Errorf("queue %s already exists", queue.ID)
	}
	if queue.CreatedAt.IsZero() {
		queue.CreatedAt = time.Now()
	}
	r.s.queues[queue.ID] = *queue
	return nil
}

func (r *QueueRepo) ListByCommerce(_ context.Context, commerceID string) ([]models.Queue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Queue
	for _, q := range r.s.queues {
		if q.CommerceID == commerceID && q.Active {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *QueueRepo) IncrementCurrentNumber(_ context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.queues[id]
	if !ok {
		return 0, fmt.Errorf("queue %s not found", id)
	}
	q.CurrentNumber++
	r.s.queues[id] = q
	return q.CurrentNumber, nil
}

func (r *QueueRepo) UpdatePointer(_ context.Context, queue *models.Queue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.queues[queue.ID]
	if !ok || stored.Version != queue.Version {
		return queueRepo.ErrVersionConflict
	}
	if queue.CurrentNumber > stored.CurrentNumber {
		stored.CurrentNumber = queue.CurrentNumber
	}
	stored.CurrentAttentionNumber = queue.CurrentAttentionNumber
	stored.CurrentAttentionID = queue.CurrentAttentionID
	stored.Version++
	r.s.queues[queue.ID] = stored
	queue.Version = stored.Version
	return nil
}
