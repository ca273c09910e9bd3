package memory

import (
	"context"
	"fmt"
	"sort"

	bookingRepo "queuedesk/database/repository/booking"
	"queuedesk/models"
)

type BookingRepo struct{ s *Store }

var _ bookingRepo.BookingRepository = (*BookingRepo)(nil)

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[booking.ID]; ok {
		return fmt.Errorf("booking %s already exists", booking.ID)
	}
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepo) Update(_ context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[booking.ID]; !ok {
		return fmt.Errorf("booking with id %s not found", booking.ID)
	}
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepo) Find(_ context.Context, f bookingRepo.BookingFilter) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.s.bookings {
		if matchBooking(b, f) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Number < out[j].Number
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *BookingRepo) Count(ctx context.Context, f bookingRepo.BookingFilter) (int, error) {
	f.Limit = 0
	bookings, err := r.Find(ctx, f)
	return len(bookings), err
}

func matchBooking(b models.Booking, f bookingRepo.BookingFilter) bool {
	switch {
	case f.CommerceID != "" && b.CommerceID != f.CommerceID:
		return false
	case f.QueueID != "" && b.QueueID != f.QueueID:
		return false
	case f.ClientID != "" && b.ClientID != f.ClientID:
		return false
	case f.Date != "" && b.Date != f.Date:
		return false
	case f.Date == "" && f.DateFrom != "" && b.Date < f.DateFrom:
		return false
	case f.Date == "" && f.DateTo != "" && b.Date > f.DateTo:
		return false
	case f.Number != nil && b.Number != *f.Number:
		return false
	case f.Number == nil && f.NumberBelow != nil && b.Number >= *f.NumberBelow:
		return false
	case len(f.Statuses) > 0 && !models.ContainsBookingStatus(f.Statuses, b.Status):
		return false
	case f.FormattedBefore != nil && !b.DateFormatted.Before(*f.FormattedBefore):
		return false
	case f.ConfirmNotified != nil && b.ConfirmNotified != *f.ConfirmNotified:
		return false
	}
	return true
}
