package queueRepo

import (
	"context"
	"fmt"
	"time"

	"queuedesk/models"
	"queuedesk/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func logIndexError(coll string, err error) {
	utils.GetLogger().Warn("failed to create indexes", zap.String("collection", coll), zap.Error(err))
}

func (r *mongoQueueRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "commerceId", Value: 1}, {Key: "order", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create queue indexes: %w", err)
	}
	return nil
}

func (r *mongoQueueRepo) GetByID(ctx context.Context, id string) (*models.Queue, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var queue models.Queue
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&queue); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch queue %s: %w", id, err)
	}
	return &queue, nil
}

func (r *mongoQueueRepo) Create(ctx context.Context, queue *models.Queue) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if queue.CreatedAt.IsZero() {
		queue.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, queue); err != nil {
		return fmt.Errorf("failed to create queue: %w", err)
	}
	return nil
}

func (r *mongoQueueRepo) ListByCommerce(ctx context.Context, commerceID string) ([]models.Queue, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"commerceId": commerceID, "active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch queues for commerce %s: %w", commerceID, err)
	}
	defer cursor.Close(ctx)

	var queues []models.Queue
	if err := cursor.All(ctx, &queues); err != nil {
		return nil, fmt.Errorf("error decoding queues: %w", err)
	}
	return queues, nil
}

func (r *mongoQueueRepo) IncrementCurrentNumber(ctx context.Context, id string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"currentNumber": 1})

	var out struct {
		CurrentNumber int `bson:"currentNumber"`
	}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"currentNumber": 1}}, opts).Decode(&out)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, fmt.Errorf("queue %s not found", id)
		}
		return 0, fmt.Errorf("failed to increment number for queue %s: %w", id, err)
	}
	return out.CurrentNumber, nil
}

func (r *mongoQueueRepo) UpdatePointer(ctx context.Context, queue *models.Queue) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":      queue.ID,
		"version": queue.Version,
	}
	// currentNumber goes through $max so a concurrent $inc is never undone.
	update := bson.M{
		"$set": bson.M{
			"currentAttentionNumber": queue.CurrentAttentionNumber,
			"currentAttentionId":     queue.CurrentAttentionID,
		},
		"$max": bson.M{"currentNumber": queue.CurrentNumber},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update queue pointer: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	queue.Version++
	return nil
}
