package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"queuedesk/database"
	"queuedesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{coll: database.Collection("notification")}
}

func (r *mongoNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}
