package attention

import (
	"context"
	"time"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/batch"
	"queuedesk/services/client"
	"queuedesk/services/documents"
	"queuedesk/services/events"
	"queuedesk/services/feature"
	"queuedesk/services/notification"
	"queuedesk/services/pack"
	"queuedesk/services/queue"
)

// SystemUser acts for scheduled jobs and automatic records.
const SystemUser = "ett"

// CreateAttentionInput carries everything a ticket can be created with.
type CreateAttentionInput struct {
	QueueID                     string                      `json:"queueId"`
	CollaboratorID              string                      `json:"collaboratorId,omitempty"`
	Channel                     string                      `json:"channel,omitempty"`
	User                        *models.User                `json:"user,omitempty"`
	Type                        models.AttentionType        `json:"type,omitempty"`
	Block                       *models.Block               `json:"block,omitempty"`
	Date                        *time.Time                  `json:"date,omitempty"`
	PaymentConfirmationData     *models.PaymentConfirmation `json:"paymentConfirmationData,omitempty"`
	BookingID                   string                      `json:"bookingId,omitempty"`
	ServicesID                  []string                    `json:"servicesId,omitempty"`
	ServicesDetails             []models.ServiceDetail      `json:"servicesDetails,omitempty"`
	ClientID                    string                      `json:"clientId,omitempty"`
	TermsConditionsToAcceptCode string                      `json:"termsConditionsToAcceptCode,omitempty"`
	TermsConditionsAcceptedCode string                      `json:"termsConditionsAcceptedCode,omitempty"`
	TermsConditionsToAcceptedAt *time.Time                  `json:"termsConditionsToAcceptedAt,omitempty"`
}

// ContactData is the notification contact captured after a ticket exists.
type ContactData struct {
	Name                string              `json:"name,omitempty"`
	LastName            string              `json:"lastName,omitempty"`
	Phone               string              `json:"phone,omitempty"`
	Email               string              `json:"email,omitempty"`
	IDNumber            string              `json:"idNumber,omitempty"`
	CommerceID          string              `json:"commerceId,omitempty"`
	QueueID             string              `json:"queueId,omitempty"`
	NotificationOn      bool                `json:"notificationOn"`
	NotificationEmailOn bool                `json:"notificationEmailOn"`
	PersonalInfo        models.PersonalInfo `json:"personalInfo,omitempty"`
}

type AttentionService interface {
	CreateAttention(ctx context.Context, in CreateAttentionInput) (*models.Attention, error)

	GetAttentionByID(ctx context.Context, id string) (*models.Attention, error)
	GetAttentionDetails(ctx context.Context, id string) (*models.AttentionDetails, error)
	GetAvailableAttentionByNumber(ctx context.Context, number int, queueID string) (*models.Attention, error)
	GetNextAvailableAttention(ctx context.Context, queueID string) (*models.Attention, error)
	GetProcessingAttentions(ctx context.Context, queueID string) ([]models.Attention, error)

	Attend(ctx context.Context, user string, number int, queueID, collaboratorID, language string) (*models.Attention, error)
	Skip(ctx context.Context, user string, number int, queueID, collaboratorID string) (*models.Attention, error)
	Reactivate(ctx context.Context, user string, number int, queueID, collaboratorID string) (*models.Attention, error)
	FinishAttention(ctx context.Context, user, id, comment string, date *time.Time) (*models.Attention, error)
	FinishCancelledAttention(ctx context.Context, user, id string) (*models.Attention, error)
	CancelAttention(ctx context.Context, user, id string) (*models.Attention, error)
	CancelAttentions(ctx context.Context) (models.BatchResult, error)
	TransferAttentionToQueue(ctx context.Context, user, id, queueID string) (*models.Attention, error)
	AttentionPaymentConfirm(ctx context.Context, user, id string, data *models.PaymentConfirmation) (*models.Attention, error)
	SetNoDevice(ctx context.Context, user, id, assistingCollaboratorID, name string) (*models.Attention, error)
	SaveDataNotification(ctx context.Context, user, id string, contact ContactData) (*models.Attention, error)
	SurveyPostAttention(ctx context.Context, date string) (models.BatchResult, error)
}

// DefaultAttentionService implements AttentionService. Operations that
// touch a queue run under queue.QueueService.Serialize; the *Locked helpers
// assume the caller already holds that lock.
type DefaultAttentionService struct {
	Repo          repository.AttentionRepository
	Queues        queue.QueueService
	Commerces     repository.CommerceRepository
	Users         client.UserService
	Clients       client.Service
	Ledger        pack.Ledger
	Features      feature.Service
	Notifications notification.NotificationService
	Documents     documents.Store
	Events        events.Publisher
	Runner        batch.Runner
	BackendURL    string
}
