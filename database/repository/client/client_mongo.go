package clientRepo

import (
	"context"
	"fmt"
	"time"

	"queuedesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch client %s: %w", id, err)
	}
	return &client, nil
}

func (r *mongoClientRepo) FindByContact(ctx context.Context, commerceID, email, idNumber string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var or []bson.M
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if idNumber != "" {
		or = append(or, bson.M{"idNumber": idNumber})
	}
	if len(or) == 0 {
		return nil, nil
	}

	var client models.Client
	err := r.coll.FindOne(ctx, bson.M{"commerceId": commerceID, "$or": or}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up client: %w", err)
	}
	return &client, nil
}

func (r *mongoClientRepo) Create(ctx context.Context, client *models.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *mongoClientRepo) Update(ctx context.Context, client *models.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": client.ID}, bson.M{"$set": client})
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("client with id %s not found", client.ID)
	}
	return nil
}

func (r *mongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	return &user, nil
}

func (r *mongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *mongoUserRepo) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": user.ID}, bson.M{"$set": user})
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", user.ID)
	}
	return nil
}
