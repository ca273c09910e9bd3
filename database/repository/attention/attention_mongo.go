package attentionRepo

import (
	"context"
	"fmt"
	"time"

	"queuedesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAttentionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "queueId", Value: 1}, {Key: "number", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "surveyPostAttentionDateScheduled", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create attention indexes: %w", err)
	}
	return nil
}

func (r *mongoAttentionRepo) GetByID(ctx context.Context, id string) (*models.Attention, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var attention models.Attention
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&attention); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch attention %s: %w", id, err)
	}
	return &attention, nil
}

func (r *mongoAttentionRepo) Create(ctx context.Context, attention *models.Attention) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, attention); err != nil {
		return fmt.Errorf("failed to create attention: %w", err)
	}
	return nil
}

func (r *mongoAttentionRepo) Update(ctx context.Context, attention *models.Attention) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": attention.ID}, attention)
	if err != nil {
		return fmt.Errorf("failed to update attention %s: %w", attention.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("attention with id %s not found", attention.ID)
	}
	return nil
}

func (r *mongoAttentionRepo) Find(ctx context.Context, filter AttentionFilter) ([]models.Attention, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find()
	if filter.LatestFirst {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "createdAt", Value: 1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attentions: %w", err)
	}
	defer cursor.Close(ctx)

	var attentions []models.Attention
	if err := cursor.All(ctx, &attentions); err != nil {
		return nil, fmt.Errorf("error decoding attentions: %w", err)
	}
	return attentions, nil
}

func buildFilter(f AttentionFilter) bson.M {
	filter := bson.M{}
	if f.ID != "" {
		filter["id"] = f.ID
	}
	if f.CommerceID != "" {
		filter["commerceId"] = f.CommerceID
	}
	if f.QueueID != "" {
		filter["queueId"] = f.QueueID
	}
	if f.Number != nil {
		filter["number"] = *f.Number
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	if f.CreatedFrom != nil || f.CreatedTo != nil {
		created := bson.M{}
		if f.CreatedFrom != nil {
			created["$gte"] = *f.CreatedFrom
		}
		if f.CreatedTo != nil {
			created["$lt"] = *f.CreatedTo
		}
		filter["createdAt"] = created
	}
	if f.SurveyDate != "" {
		filter["surveyPostAttentionDateScheduled"] = f.SurveyDate
	}
	if f.SurveySent != nil {
		filter["notificationSurveySent"] = *f.SurveySent
	}
	return filter
}
