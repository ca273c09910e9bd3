package booking

import (
	"context"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/attention"
	"queuedesk/services/batch"
	"queuedesk/services/client"
	"queuedesk/services/events"
	"queuedesk/services/feature"
	"queuedesk/services/notification"
	"queuedesk/services/pack"
	"queuedesk/services/queue"
)

const (
	processBatchLimit = 25
	migrationUser     = "ETT-MIGRATION"
	migrationComment  = "MIGRATION"
)

type CreateBookingInput struct {
	QueueID         string                 `json:"queueId"`
	Channel         string                 `json:"channel,omitempty"`
	Date            string                 `json:"date"`
	User            *models.User           `json:"user,omitempty"`
	Block           *models.Block          `json:"block,omitempty"`
	Status          models.BookingStatus   `json:"status,omitempty"`
	ServicesID      []string               `json:"servicesId,omitempty"`
	ServicesDetails []models.ServiceDetail `json:"servicesDetails,omitempty"`
	ClientID        string                 `json:"clientId,omitempty"`
}

// PastBookingResult holds every step of a past booking migration. Steps
// that did not run are nil.
type PastBookingResult struct {
	Booking        *models.Booking   `json:"booking"`
	Attention      *models.Attention `json:"attention"`
	ProcessBooking *models.Booking   `json:"processBooking"`
	Attend         *models.Attention `json:"attend"`
	Finish         *models.Attention `json:"finish"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)

	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	GetBookingDetails(ctx context.Context, id string) (*models.BookingDetails, error)
	GetPendingBookingsByQueueAndDate(ctx context.Context, queueID, date string) ([]models.Booking, error)
	GetPendingBookingsBetweenDates(ctx context.Context, queueID, from, to string) ([]models.Booking, error)
	GetPendingBookingsByClient(ctx context.Context, commerceID, idNumber, clientID string) ([]models.Booking, error)

	CancelBooking(ctx context.Context, user, id string) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, user, id string, data *models.PaymentConfirmation) (*models.Booking, error)
	TransferBookingToQueue(ctx context.Context, user, id, queueID string) (*models.Booking, error)
	EditBookingDateAndBlock(ctx context.Context, user, id, date string, block *models.Block) (*models.Booking, error)

	ProcessBookings(ctx context.Context, date string) (models.BatchResult, error)
	ProcessBookingByID(ctx context.Context, user, id string) (models.BatchResult, error)
	ProcessPastBooking(ctx context.Context, bookingID, collaboratorID, language string) PastBookingResult
	ConfirmNotifyBookings(ctx context.Context, daysBefore int) (models.BatchResult, error)
	CancelBookings(ctx context.Context) (models.BatchResult, error)
}

// DefaultBookingService implements BookingService. Bookings are turned into
// tickets through Attentions, never by writing attentions directly.
type DefaultBookingService struct {
	Repo          repository.BookingRepository
	Queues        queue.QueueService
	Commerces     repository.CommerceRepository
	Users         client.UserService
	Clients       client.Service
	Attentions    attention.AttentionService
	Ledger        pack.Ledger
	Features      feature.Service
	Notifications notification.NotificationService
	Events        events.Publisher
	Runner        batch.Runner
	BackendURL    string
}
