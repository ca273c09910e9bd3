package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"queuedesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "queueId", Value: 1}, {Key: "date", Value: 1}, {Key: "number", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "commerceId", Value: 1}, {Key: "clientId", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", booking.ID)
	}
	return nil
}

func (r *mongoBookingRepo) Find(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "number", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) Count(ctx context.Context, filter BookingFilter) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return int(n), nil
}

func buildFilter(f BookingFilter) bson.M {
	filter := bson.M{}
	if f.CommerceID != "" {
		filter["commerceId"] = f.CommerceID
	}
	if f.QueueID != "" {
		filter["queueId"] = f.QueueID
	}
	if f.ClientID != "" {
		filter["clientId"] = f.ClientID
	}
	if f.Date != "" {
		filter["date"] = f.Date
	} else if f.DateFrom != "" || f.DateTo != "" {
		dates := bson.M{}
		if f.DateFrom != "" {
			dates["$gte"] = f.DateFrom
		}
		if f.DateTo != "" {
			dates["$lte"] = f.DateTo
		}
		filter["date"] = dates
	}
	switch {
	case f.Number != nil:
		filter["number"] = *f.Number
	case f.NumberBelow != nil:
		filter["number"] = bson.M{"$lt": *f.NumberBelow}
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	if f.FormattedBefore != nil {
		filter["dateFormatted"] = bson.M{"$lt": *f.FormattedBefore}
	}
	if f.ConfirmNotified != nil {
		filter["confirmNotified"] = *f.ConfirmNotified
	}
	return filter
}
