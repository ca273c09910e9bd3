package packRepo

import (
	"context"
	"fmt"
	"time"

	"queuedesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoPackageRepo) GetByID(ctx context.Context, id string) (*models.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pack models.Package
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&pack); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch package %s: %w", id, err)
	}
	return &pack, nil
}

func (r *mongoPackageRepo) FindByClient(ctx context.Context, commerceID, clientID string) ([]models.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"commerceId": commerceID, "clientId": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch packages for client %s: %w", clientID, err)
	}
	defer cursor.Close(ctx)

	var packs []models.Package
	if err := cursor.All(ctx, &packs); err != nil {
		return nil, fmt.Errorf("error decoding packages: %w", err)
	}
	return packs, nil
}

func (r *mongoPackageRepo) Create(ctx context.Context, pack *models.Package) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, pack); err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *mongoPackageRepo) Update(ctx context.Context, pack *models.Package) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": pack.ID}, pack)
	if err != nil {
		return fmt.Errorf("failed to update package %s: %w", pack.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("package with id %s not found", pack.ID)
	}
	return nil
}

func (r *mongoIncomeRepo) GetByID(ctx context.Context, id string) (*models.Income, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var income models.Income
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&income); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch income %s: %w", id, err)
	}
	return &income, nil
}

func (r *mongoIncomeRepo) Create(ctx context.Context, income *models.Income) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, income); err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

func (r *mongoIncomeRepo) Update(ctx context.Context, income *models.Income) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": income.ID}, income)
	if err != nil {
		return fmt.Errorf("failed to update income %s: %w", income.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("income with id %s not found", income.ID)
	}
	return nil
}
