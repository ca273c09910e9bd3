package commerceRepo

import (
	"context"
	"fmt"
	"time"

	"queuedesk/database"
	"queuedesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommerceRepository reads commerce configuration and staff. Commerce
// administration lives outside this service, so it is read only.
type CommerceRepository interface {
	GetCommerce(ctx context.Context, id string) (*models.Commerce, error)
	GetCollaborator(ctx context.Context, id string) (*models.Collaborator, error)
	// GetCollaboratorBot returns the commerce's bot collaborator, or nil.
	GetCollaboratorBot(ctx context.Context, commerceID string) (*models.Collaborator, error)
	GetModule(ctx context.Context, id string) (*models.Module, error)
	GetServices(ctx context.Context, ids []string) ([]models.Service, error)
}

type mongoCommerceRepo struct {
	commerces     *mongo.Collection
	collaborators *mongo.Collection
	modules       *mongo.Collection
	services      *mongo.Collection
}

func NewMongoCommerceRepo() CommerceRepository {
	return &mongoCommerceRepo{
		commerces:     database.Collection("commerce"),
		collaborators: database.Collection("collaborator"),
		modules:       database.Collection("module"),
		services:      database.Collection("service"),
	}
}

// findOne decodes the first match of filter into out; found is false on no match.
func findOne(ctx context.Context, coll *mongo.Collection, filter bson.M, out interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := coll.FindOne(ctx, filter).Decode(out); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch from %s: %w", coll.Name(), err)
	}
	return true, nil
}

func (r *mongoCommerceRepo) GetCommerce(ctx context.Context, id string) (*models.Commerce, error) {
	var commerce models.Commerce
	found, err := findOne(ctx, r.commerces, bson.M{"id": id}, &commerce)
	if err != nil || !found {
		return nil, err
	}
	return &commerce, nil
}

func (r *mongoCommerceRepo) GetCollaborator(ctx context.Context, id string) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	found, err := findOne(ctx, r.collaborators, bson.M{"id": id}, &collaborator)
	if err != nil || !found {
		return nil, err
	}
	return &collaborator, nil
}

func (r *mongoCommerceRepo) GetCollaboratorBot(ctx context.Context, commerceID string) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	found, err := findOne(ctx, r.collaborators, bson.M{"commerceId": commerceID, "bot": true}, &collaborator)
	if err != nil || !found {
		return nil, err
	}
	return &collaborator, nil
}

func (r *mongoCommerceRepo) GetModule(ctx context.Context, id string) (*models.Module, error) {
	var module models.Module
	found, err := findOne(ctx, r.modules, bson.M{"id": id}, &module)
	if err != nil || !found {
		return nil, err
	}
	return &module, nil
}

func (r *mongoCommerceRepo) GetServices(ctx context.Context, ids []string) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}
