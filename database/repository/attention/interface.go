package attentionRepo

import (
	"context"
	"time"

	"queuedesk/database"
	"queuedesk/models"
	"queuedesk/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AttentionFilter selects attentions. Zero fields are ignored.
type AttentionFilter struct {
	ID          string
	CommerceID  string
	QueueID     string
	Number      *int
	Statuses    []models.AttentionStatus
	CreatedFrom *time.Time // inclusive
	CreatedTo   *time.Time // exclusive
	SurveyDate  string
	SurveySent  *bool
	Limit       int
	LatestFirst bool
}

type AttentionRepository interface {
	// GetByID returns nil, nil when no attention has that id.
	GetByID(ctx context.Context, id string) (*models.Attention, error)
	Create(ctx context.Context, attention *models.Attention) error
	Update(ctx context.Context, attention *models.Attention) error
	Find(ctx context.Context, filter AttentionFilter) ([]models.Attention, error)
}

type mongoAttentionRepo struct {
	coll *mongo.Collection
}

// NewMongoAttentionRepo constructs a MongoDB backed AttentionRepository.
func NewMongoAttentionRepo() AttentionRepository {
	repo := &mongoAttentionRepo{coll: database.Collection("attention")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create indexes", zap.String("collection", "attention"), zap.Error(err))
	}
	return repo
}
