package featureRepo

import (
	"context"
	"fmt"
	"time"

	"queuedesk/database"
	"queuedesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type FeatureRepository interface {
	// GetByName returns nil, nil when the toggle was never defined.
	GetByName(ctx context.Context, commerceID, name string) (*models.FeatureToggle, error)
}

type mongoFeatureRepo struct {
	coll *mongo.Collection
}

func NewMongoFeatureRepo() FeatureRepository {
	return &mongoFeatureRepo{coll: database.Collection("feature-toggle")}
}

func (r *mongoFeatureRepo) GetByName(ctx context.Context, commerceID, name string) (*models.FeatureToggle, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var toggle models.FeatureToggle
	if err := r.coll.FindOne(ctx, bson.M{"commerceId": commerceID, "name": name}).Decode(&toggle); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch feature toggle %s: %w", name, err)
	}
	return &toggle, nil
}
