package booking

import (
	"context"
	"time"

	"queuedesk/models"
	"queuedesk/services/attention"
	"queuedesk/services/pack"
	"queuedesk/utils"

	"go.uber.org/zap"
)

// CancelBooking is the visitor giving up a reservation. The booking is also
// detached from every package of its client. Bookings already processed or
// closed are returned unchanged.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, user, id string) (*models.Booking, error) {
	b, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return b, nil
	}
	cancelledAt := time.Now()
	b.Status = models.BookingReserveCanceled
	b.Cancelled = true
	b.CancelledAt = &cancelledAt
	if b, err = s.save(ctx, user, b); err != nil {
		return nil, err
	}

	s.Notifications.Dispatch(ctx, s.bookingWhatsappTasks(ctx, b, models.ToggleBookingWhatsappCancel)...)
	if b.ClientID != "" {
		if err := s.Ledger.DetachAll(ctx, user, b.CommerceID, b.ClientID, b.ID, b.AttentionID); err != nil {
			utils.GetLogger().Warn("failed to detach cancelled booking from packages",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	return b, nil
}

// ConfirmBooking confirms a booking when the commerce requires it, records
// the payment under booking-confirm-payment and, for a booking due today,
// creates its ticket right away.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, user, id string, data *models.PaymentConfirmation) (*models.Booking, error) {
	b, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() || !s.Features.IsActive(ctx, b.CommerceID, models.ToggleBookingConfirm) {
		return b, nil
	}

	confirmedAt := time.Now()
	b.Status = models.BookingConfirmed
	b.Confirmed = true
	b.ConfirmedAt = &confirmedAt

	ref := pack.IncomeRef{CommerceID: b.CommerceID, BookingID: b.ID, ClientID: b.ClientID}
	p, err := s.Ledger.ResolvePackage(ctx, user, ref, b.ServicesID, b.ServicesDetails, data)
	if err != nil {
		return nil, err
	}
	if p != nil {
		b.PackageID = p.ID
		b.PackageProceduresTotalNumber = p.ProceduresAmount
		b.PackageProcedureNumber = data.ProcedureNumber
	}

	if s.Features.IsActive(ctx, b.CommerceID, models.ToggleBookingConfirmPayment) && (data == nil || !data.SkipPayment) {
		if data == nil || data.ExplicitlyUnpaid() || data.PaymentDate == nil {
			return nil, utils.Internal("insufficient data to confirm the payment of booking %s", id)
		}
		data.User = firstNonEmpty(user, attention.SystemUser)
		b.ConfirmationData = data
		b.ConfirmedBy = user
		if _, err := s.Ledger.RecordIncome(ctx, user, ref, p, data); err != nil {
			return nil, err
		}
	}

	if b, err = s.save(ctx, user, b); err != nil {
		return nil, err
	}

	commerce := s.commerce(ctx, b.CommerceID)
	if b.Date == utils.TodayIn(commerce.Timezone(), time.Now()) {
		if _, err := s.createAttention(ctx, user, b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// TransferBookingToQueue moves a booking to a collaborator queue.
func (s *DefaultBookingService) TransferBookingToQueue(ctx context.Context, user, id, queueID string) (*models.Booking, error) {
	b, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dest, err := s.Queues.GetQueueByID(ctx, queueID)
	if err != nil {
		return nil, err
	}
	if dest.Type != models.QueueTypeCollaborator {
		return nil, utils.BadRequest("booking %s cannot be transferred to queue %s of type %s", id, queueID, dest.Type)
	}
	transferedAt := time.Now()
	b.Transfered = true
	b.TransferedAt = &transferedAt
	b.TransferedOrigin = b.QueueID
	b.TransferedBy = user
	b.TransferedCount++
	b.QueueID = queueID
	return s.save(ctx, user, b)
}

// EditBookingDateAndBlock moves a booking to another day and block, keeping
// the previous ones.
func (s *DefaultBookingService) EditBookingDateAndBlock(ctx context.Context, user, id, date string, block *models.Block) (*models.Booking, error) {
	b, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if date == "" || block == nil {
		return nil, utils.BadRequest("booking %s needs both a date and a block to be edited", id)
	}
	dateFormatted, err := utils.ParseDate(date)
	if err != nil {
		return nil, utils.Wrap(utils.KindBadRequest, err, "invalid booking date")
	}
	editedAt := time.Now()
	b.Edited = true
	b.EditedAt = &editedAt
	b.EditedDateOrigin = b.Date
	b.EditedBlockOrigin = b.Block
	b.EditedCount++
	b.EditedBy = user
	b.Date = date
	b.DateFormatted = dateFormatted
	b.Block = block
	return s.save(ctx, user, b)
}
