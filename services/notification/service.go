package notification

import (
	"context"
	"errors"
	"time"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errNoEmail = errors.New("receiver has no email address")

// Target identifies who a message is for and what it is about.
type Target struct {
	Type        models.NotificationType
	Receiver    string // user id
	AttentionID string
	BookingID   string
	CommerceID  string
	QueueID     string
}

// Result is the outcome of one send.
type Result struct {
	Notification models.Notification
	Err          error
}

// Task is one unit of a notification fan-out.
type Task func(ctx context.Context) Result

type NotificationService interface {
	SendWhatsapp(ctx context.Context, target Target, phone, text, fromNumber string) Result
	SendEmail(ctx context.Context, target Target, email, template string, data map[string]interface{}) Result
	SendRawEmail(ctx context.Context, target Target, email RawEmail) Result
	// Dispatch runs every task concurrently and waits for all of them.
	Dispatch(ctx context.Context, tasks ...Task) []Result
}

// DefaultNotificationService sends through the configured clients and
// records every attempt. A failed send is stored with the error as comment.
type DefaultNotificationService struct {
	Repo             repository.NotificationRepository
	WhatsApp         WhatsAppClient
	Email            EmailClient
	WhatsappProvider string
	EmailProvider    string
	EmailSource      string
}

func newRecord(target Target, channel models.NotificationChannel, provider string) models.Notification {
	return models.Notification{
		ID:          uuid.New().String(),
		Channel:     channel,
		Type:        target.Type,
		Receiver:    target.Receiver,
		AttentionID: target.AttentionID,
		BookingID:   target.BookingID,
		CommerceID:  target.CommerceID,
		QueueID:     target.QueueID,
		Provider:    provider,
		CreatedAt:   time.Now(),
	}
}

func (s *DefaultNotificationService) finish(ctx context.Context, n models.Notification, providerID string, err error) Result {
	if err != nil {
		n.Comment = err.Error()
	} else {
		n.ProviderID = providerID
	}
	if repoErr := s.Repo.Create(ctx, &n); repoErr != nil {
		utils.GetLogger().Error("failed to record notification", zap.String("id", n.ID), zap.Error(repoErr))
	}
	return Result{Notification: n, Err: err}
}

func (s *DefaultNotificationService) SendWhatsapp(ctx context.Context, target Target, phone, text, fromNumber string) Result {
	n := newRecord(target, models.ChannelWhatsapp, s.WhatsappProvider)
	providerID, err := s.WhatsApp.SendMessage(ctx, text, phone, n.ID, fromNumber)
	return s.finish(ctx, n, providerID, err)
}

func (s *DefaultNotificationService) SendEmail(ctx context.Context, target Target, email, template string, data map[string]interface{}) Result {
	n := newRecord(target, models.ChannelEmail, s.EmailProvider)
	if email == "" {
		return s.finish(ctx, n, "", errNoEmail)
	}
	providerID, err := s.Email.SendEmail(ctx, template, []string{email}, data)
	return s.finish(ctx, n, providerID, err)
}

func (s *DefaultNotificationService) SendRawEmail(ctx context.Context, target Target, email RawEmail) Result {
	n := newRecord(target, models.ChannelEmail, s.EmailProvider)
	if len(email.To) == 0 {
		return s.finish(ctx, n, "", errNoEmail)
	}
	if email.From == "" {
		email.From = s.EmailSource
	}
	providerID, err := s.Email.SendRawEmail(ctx, email)
	return s.finish(ctx, n, providerID, err)
}

func (s *DefaultNotificationService) Dispatch(ctx context.Context, tasks ...Task) []Result {
	results := make([]Result, len(tasks))
	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = task(ctx)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.Err != nil {
			utils.GetLogger().Warn("notification failed",
				zap.String("channel", string(r.Notification.Channel)),
				zap.String("type", string(r.Notification.Type)),
				zap.String("receiver", r.Notification.Receiver),
				zap.Error(r.Err))
		}
	}
	return results
}

// Failed counts failed results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
