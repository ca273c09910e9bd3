package clientRepo

import (
	"context"

	"queuedesk/database"
	"queuedesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ClientRepository interface {
	// GetByID returns nil, nil when the client does not exist.
	GetByID(ctx context.Context, id string) (*models.Client, error)
	// FindByContact looks a client up by email or id number within a commerce.
	FindByContact(ctx context.Context, commerceID, email, idNumber string) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type mongoClientRepo struct {
	coll *mongo.Collection
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a MongoDB backed ClientRepository.
func NewMongoClientRepo() ClientRepository {
	return &mongoClientRepo{coll: database.Collection("client")}
}

// NewMongoUserRepo constructs a MongoDB backed UserRepository.
func NewMongoUserRepo() UserRepository {
	return &mongoUserRepo{coll: database.Collection("user")}
}
