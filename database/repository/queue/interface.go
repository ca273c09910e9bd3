package queueRepo

import (
	"context"
	"errors"

	"queuedesk/database"
	"queuedesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrVersionConflict is returned when a pointer write loses the version race.
var ErrVersionConflict = errors.New("queue pointer version conflict")

type QueueRepository interface {
	// GetByID returns nil, nil when the queue does not exist.
	GetByID(ctx context.Context, id string) (*models.Queue, error)
	Create(ctx context.Context, queue *models.Queue) error
	ListByCommerce(ctx context.Context, commerceID string) ([]models.Queue, error)
	// IncrementCurrentNumber atomically bumps currentNumber and returns the new value.
	IncrementCurrentNumber(ctx context.Context, id string) (int, error)
	// UpdatePointer writes the pointer fields if queue.Version still matches
	// the stored version, then bumps queue.Version.
	UpdatePointer(ctx context.Context, queue *models.Queue) error
}

type mongoQueueRepo struct {
	coll *mongo.Collection
}

// NewMongoQueueRepo constructs a MongoDB backed QueueRepository.
func NewMongoQueueRepo() QueueRepository {
	repo := &mongoQueueRepo{coll: database.Collection("queue")}
	if err := repo.ensureIndexes(); err != nil {
		logIndexError("queue", err)
	}
	return repo
}
