package booking

import (
	"context"
	"sync/atomic"
	"time"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/attention"
	"queuedesk/services/batch"
	"queuedesk/services/notification"
	"queuedesk/utils"

	"go.uber.org/zap"
)

// processBooking marks b as materialized into attentionID.
func (s *DefaultBookingService) processBooking(ctx context.Context, user string, b *models.Booking, attentionID string) (*models.Booking, error) {
	processedAt := time.Now()
	b.Processed = true
	b.ProcessedAt = &processedAt
	b.Status = models.BookingProcessed
	b.AttentionID = attentionID
	return s.save(ctx, user, b)
}

// createAttention turns a booking into a ticket with the booking's block,
// payment, services and client, then marks it processed.
func (s *DefaultBookingService) createAttention(ctx context.Context, user string, b *models.Booking) (*models.Attention, error) {
	a, err := s.Attentions.CreateAttention(ctx, attention.CreateAttentionInput{
		QueueID:                 b.QueueID,
		Channel:                 b.Channel,
		User:                    b.User,
		Block:                   b.Block,
		PaymentConfirmationData: b.ConfirmationData,
		BookingID:               b.ID,
		ServicesID:              b.ServicesID,
		ServicesDetails:         b.ServicesDetails,
		ClientID:                b.ClientID,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.processBooking(ctx, user, b, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *DefaultBookingService) ProcessBookings(ctx context.Context, date string) (models.BatchResult, error) {
	if date == "" {
		return models.BatchResult{}, utils.BadRequest("a date is required to process bookings")
	}
	due, err := s.find(ctx, repository.BookingFilter{
		Date:     date,
		Statuses: models.ActiveBookingStatuses,
		Limit:    processBatchLimit,
	})
	if err != nil {
		return models.BatchResult{}, err
	}
	result := batch.Run(ctx, s.Runner, "process-bookings", due, func(ctx context.Context, b models.Booking) error {
		_, err := s.createAttention(ctx, attention.SystemUser, &b)
		return err
	})
	utils.GetLogger().Info("process bookings done",
		zap.String("date", date),
		zap.Int("toProcess", result.ToProcess),
		zap.Int("processed", result.Processed),
		zap.Int("errors", result.Errors))
	return result, nil
}

func (s *DefaultBookingService) ProcessBookingByID(ctx context.Context, user, id string) (models.BatchResult, error) {
	if id == "" {
		return models.BatchResult{}, utils.BadRequest("a booking id is required to process a booking")
	}
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.BatchResult{}, utils.Wrap(utils.KindInternal, err, "failed to load booking %s", id)
	}
	result := models.BatchResult{ToProcess: 1}
	if b == nil {
		return result, nil
	}
	if _, err := s.createAttention(ctx, user, b); err != nil {
		utils.GetLogger().Warn("failed to process booking", zap.String("bookingId", id), zap.Error(err))
		result.Errors++
		return result, nil
	}
	result.Processed++
	return result, nil
}

// ProcessPastBooking replays a booking whose day already passed: the ticket
// is created on the booking date, attended and finished at once. Failures
// stop the replay and are only logged.
func (s *DefaultBookingService) ProcessPastBooking(ctx context.Context, bookingID, collaboratorID, language string) PastBookingResult {
	var result PastBookingResult
	log := utils.GetLogger().With(zap.String("bookingId", bookingID))

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil || b == nil {
		if err != nil {
			log.Error("failed to load past booking", zap.Error(err))
		}
		return result
	}
	snapshot := *b
	result.Booking = &snapshot

	day, err := utils.ParseDate(b.Date)
	if err != nil {
		log.Error("past booking has an invalid date", zap.Error(err))
		return result
	}
	a, err := s.Attentions.CreateAttention(ctx, attention.CreateAttentionInput{
		QueueID:        b.QueueID,
		CollaboratorID: collaboratorID,
		Channel:        b.Channel,
		User:           b.User,
		Type:           models.AttentionTypeStandard,
		Block:          b.Block,
		Date:           &day,
	})
	if err != nil {
		log.Error("failed to create past attention", zap.Error(err))
		return result
	}
	result.Attention = a

	if result.ProcessBooking, err = s.processBooking(ctx, attention.SystemUser, b, a.ID); err != nil {
		log.Error("failed to process past booking", zap.Error(err))
		return result
	}
	if result.Attend, err = s.Attentions.Attend(ctx, migrationUser, a.Number, b.QueueID, collaboratorID, language); err != nil {
		log.Error("failed to attend past attention", zap.Error(err))
		return result
	}
	if result.Finish, err = s.Attentions.FinishAttention(ctx, attention.SystemUser, a.ID, migrationComment, &day); err != nil {
		log.Error("failed to finish past attention", zap.Error(err))
	}
	return result
}

// ConfirmNotifyBookings reminds the bookings due daysBefore days from today
// that were not reminded yet.
func (s *DefaultBookingService) ConfirmNotifyBookings(ctx context.Context, daysBefore int) (models.BatchResult, error) {
	date := utils.AddDays(time.Now(), daysBefore)
	notNotified := false
	due, err := s.find(ctx, repository.BookingFilter{
		Date:            date,
		Statuses:        models.ActiveBookingStatuses,
		ConfirmNotified: &notNotified,
		Limit:           processBatchLimit,
	})
	if err != nil {
		return models.BatchResult{}, err
	}

	var emails, messages int64
	result := batch.Run(ctx, s.Runner, "confirm-notify-bookings", due, func(ctx context.Context, b models.Booking) error {
		if sent(s.Notifications.Dispatch(ctx, s.bookingEmailTasks(ctx, &b, models.ToggleBookingEmailConfirm)...)) {
			b.ConfirmNotifiedEmail = true
			atomic.AddInt64(&emails, 1)
		}
		if sent(s.Notifications.Dispatch(ctx, s.bookingWhatsappTasks(ctx, &b, models.ToggleBookingWhatsappConfirm)...)) {
			b.ConfirmNotifiedWhatsapp = true
			atomic.AddInt64(&messages, 1)
		}
		b.ConfirmNotified = true
		_, err := s.save(ctx, attention.SystemUser, &b)
		return err
	})
	result.Emails = int(emails)
	result.Messages = int(messages)

	utils.GetLogger().Info("confirm notify bookings done",
		zap.String("date", date),
		zap.Int("toProcess", result.ToProcess),
		zap.Int("processed", result.Processed),
		zap.Int("emails", result.Emails),
		zap.Int("messages", result.Messages),
		zap.Int("errors", result.Errors))
	return result, nil
}

// CancelBookings closes every active booking whose day is over.
func (s *DefaultBookingService) CancelBookings(ctx context.Context) (models.BatchResult, error) {
	today, _ := utils.DayBounds(time.Now())
	overdue, err := s.find(ctx, repository.BookingFilter{
		Statuses:        models.ActiveBookingStatuses,
		FormattedBefore: &today,
	})
	if err != nil {
		return models.BatchResult{}, err
	}
	result := batch.Run(ctx, s.Runner, "cancel-bookings", overdue, func(ctx context.Context, b models.Booking) error {
		cancelledAt := time.Now()
		b.Status = models.BookingCancelled
		b.Cancelled = true
		b.CancelledAt = &cancelledAt
		_, err := s.save(ctx, attention.SystemUser, &b)
		return err
	})
	utils.GetLogger().Info("cancel bookings done",
		zap.Int("toProcess", result.ToProcess),
		zap.Int("processed", result.Processed),
		zap.Int("errors", result.Errors))
	return result, nil
}

func sent(results []notification.Result) bool {
	return len(results) > 0 && notification.Failed(results) == 0
}
