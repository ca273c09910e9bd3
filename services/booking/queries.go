package booking

import (
	"context"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/events"
	"queuedesk/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load booking %s", id)
	}
	if b == nil {
		return nil, utils.NotFound("booking %s not found", id)
	}
	return b, nil
}

// GetBookingDetails joins the queue and commerce and counts the active
// bookings ahead of this one on the same day.
func (s *DefaultBookingService) GetBookingDetails(ctx context.Context, id string) (*models.BookingDetails, error) {
	b, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &models.BookingDetails{Booking: *b}
	if b.QueueID != "" {
		q, err := s.Queues.GetQueueByID(ctx, b.QueueID)
		if err != nil {
			return nil, err
		}
		d.Queue = q
		d.Commerce = s.commerce(ctx, q.CommerceID)
	}
	before, err := s.Repo.Count(ctx, repository.BookingFilter{
		QueueID:     b.QueueID,
		Date:        b.Date,
		Statuses:    models.ActiveBookingStatuses,
		NumberBelow: &b.Number,
	})
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to count bookings before %s", id)
	}
	d.BeforeYou = before
	return d, nil
}

func (s *DefaultBookingService) GetPendingBookingsByQueueAndDate(ctx context.Context, queueID, date string) ([]models.Booking, error) {
	return s.find(ctx, repository.BookingFilter{QueueID: queueID, Date: date, Statuses: models.ActiveBookingStatuses})
}

// GetPendingBookingsBetweenDates covers [from, to], both YYYY-MM-DD.
func (s *DefaultBookingService) GetPendingBookingsBetweenDates(ctx context.Context, queueID, from, to string) ([]models.Booking, error) {
	return s.find(ctx, repository.BookingFilter{
		QueueID:  queueID,
		DateFrom: from,
		DateTo:   to,
		Statuses: models.ActiveBookingStatuses,
	})
}

// GetPendingBookingsByClient looks bookings up by client, falling back to
// the id number stored on the booking contact when the client has none.
func (s *DefaultBookingService) GetPendingBookingsByClient(ctx context.Context, commerceID, idNumber, clientID string) ([]models.Booking, error) {
	if clientID == "" {
		return nil, nil
	}
	found, err := s.find(ctx, repository.BookingFilter{
		CommerceID: commerceID,
		ClientID:   clientID,
		Statuses:   models.ActiveBookingStatuses,
	})
	if err != nil || len(found) > 0 || idNumber == "" {
		return found, err
	}
	all, err := s.find(ctx, repository.BookingFilter{CommerceID: commerceID, Statuses: models.ActiveBookingStatuses})
	if err != nil {
		return nil, err
	}
	for _, b := range all {
		if b.User != nil && b.User.IDNumber == idNumber {
			found = append(found, b)
		}
	}
	return found, nil
}

func (s *DefaultBookingService) find(ctx context.Context, f repository.BookingFilter) ([]models.Booking, error) {
	bookings, err := s.Repo.Find(ctx, f)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to query bookings")
	}
	return bookings, nil
}

func (s *DefaultBookingService) commerce(ctx context.Context, id string) *models.Commerce {
	c, err := s.Commerces.GetCommerce(ctx, id)
	if err != nil {
		utils.GetLogger().Warn("failed to load commerce", zap.String("commerceId", id), zap.Error(err))
		return nil
	}
	return c
}

func (s *DefaultBookingService) save(ctx context.Context, user string, b *models.Booking) (*models.Booking, error) {
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to update booking %s", b.ID)
	}
	events.Emit(ctx, s.Events, models.EventBookingUpdated, user, *b)
	return b, nil
}
