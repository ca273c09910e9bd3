package packRepo

import (
	"context"

	"queuedesk/database"
	"queuedesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type PackageRepository interface {
	GetByID(ctx context.Context, id string) (*models.Package, error)
	FindByClient(ctx context.Context, commerceID, clientID string) ([]models.Package, error)
	Create(ctx context.Context, pack *models.Package) error
	Update(ctx context.Context, pack *models.Package) error
}

type IncomeRepository interface {
	GetByID(ctx context.Context, id string) (*models.Income, error)
	Create(ctx context.Context, income *models.Income) error
	Update(ctx context.Context, income *models.Income) error
}

type mongoPackageRepo struct {
	coll *mongo.Collection
}

type mongoIncomeRepo struct {
	coll *mongo.Collection
}

func NewMongoPackageRepo() PackageRepository {
	return &mongoPackageRepo{coll: database.Collection("package")}
}

func NewMongoIncomeRepo() IncomeRepository {
	return &mongoIncomeRepo{coll: database.Collection("income")}
}
