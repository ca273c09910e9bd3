package bookingRepo

import (
	"context"
	"time"

	"queuedesk/database"
	"queuedesk/models"
	"queuedesk/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BookingFilter selects bookings. Zero fields are ignored.
type BookingFilter struct {
	CommerceID      string
	QueueID         string
	ClientID        string
	Date            string
	DateFrom        string // inclusive, YYYY-MM-DD
	DateTo          string // inclusive, YYYY-MM-DD
	Number          *int
	NumberBelow     *int
	Statuses        []models.BookingStatus
	FormattedBefore *time.Time
	ConfirmNotified *bool
	Limit           int
}

type BookingRepository interface {
	// GetByID returns nil, nil when no booking has that id.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
	// Find returns matches ordered by date then number.
	Find(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB backed BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	repo := &mongoBookingRepo{coll: database.Collection("booking")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create indexes", zap.String("collection", "booking"), zap.Error(err))
	}
	return repo
}
