package booking

import (
	"context"
	"strings"
	"time"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/client"
	"queuedesk/services/events"
	"queuedesk/services/pack"
	"queuedesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const termsCodeLength = 6

// CreateBooking reserves a number on a future date. Capacity checks and the
// insert run under the queue lock.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	q, err := s.Queues.GetQueueByID(ctx, in.QueueID)
	if err != nil {
		return nil, err
	}
	dateFormatted, err := utils.ParseDate(in.Date)
	if err != nil {
		return nil, utils.Wrap(utils.KindBadRequest, err, "invalid booking date")
	}

	var created *models.Booking
	err = s.Queues.Serialize(q.ID, func() error {
		number, err := s.nextNumber(ctx, q, in)
		if err != nil {
			return err
		}
		user, clientID, err := s.resolveContact(ctx, q, in)
		if err != nil {
			return err
		}

		b := &models.Booking{
			ID:              uuid.New().String(),
			CommerceID:      q.CommerceID,
			QueueID:         q.ID,
			Number:          number,
			Date:            in.Date,
			DateFormatted:   dateFormatted,
			Block:           in.Block,
			Status:          s.initialStatus(ctx, q.CommerceID, in.Status),
			Type:            models.AttentionTypeStandard,
			Channel:         in.Channel,
			User:            user,
			ClientID:        clientID,
			ServicesID:      in.ServicesID,
			ServicesDetails: in.ServicesDetails,
			CreatedAt:       time.Now(),
		}
		if b.Channel == "" {
			b.Channel = models.ChannelQR
		}
		if s.Features.IsActive(ctx, q.CommerceID, models.ToggleEmailBookingTermsConditions) {
			b.TermsConditionsToAcceptCode = termsCode()
		}
		if err := s.Repo.Create(ctx, b); err != nil {
			return utils.Wrap(utils.KindInternal, err, "failed to create booking number %d in queue %s", number, q.ID)
		}
		s.linkRequestedPackage(ctx, b)
		events.Emit(ctx, s.Events, models.EventBookingCreated, user.ID, *b)
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", created.ID),
		zap.String("queueId", created.QueueID),
		zap.String("date", created.Date),
		zap.Int("number", created.Number))

	tasks := s.bookingEmailTasks(ctx, created, models.ToggleEmailBooking)
	tasks = append(tasks, s.bookingWhatsappTasks(ctx, created, models.ToggleWhatsappBooking)...)
	s.Notifications.Dispatch(ctx, tasks...)
	return created, nil
}

// nextNumber enforces the daily and per-block caps and picks the number.
func (s *DefaultBookingService) nextNumber(ctx context.Context, q *models.Queue, in CreateBookingInput) (int, error) {
	active, err := s.Repo.Count(ctx, repository.BookingFilter{QueueID: q.ID, Date: in.Date, Statuses: models.ActiveBookingStatuses})
	if err != nil {
		return 0, utils.Wrap(utils.KindInternal, err, "failed to count bookings")
	}
	if active >= q.Limit {
		return 0, utils.Internal("queue %s limit (%d) reached for %s", q.ID, q.Limit, in.Date)
	}

	if in.Block.IsSet() {
		number := in.Block.Number
		booked, err := s.Repo.Count(ctx, repository.BookingFilter{
			QueueID:  q.ID,
			Date:     in.Date,
			Number:   &number,
			Statuses: models.ActiveBookingStatuses,
		})
		if err != nil {
			return 0, utils.Wrap(utils.KindInternal, err, "failed to count block bookings")
		}
		if limit := q.ServiceInfo.BlockLimitOrDefault(); booked > limit {
			return 0, utils.Internal("block %d of queue %s is full: %d bookings, limit %d", number, q.ID, booked, limit)
		}
		return number, nil
	}

	all, err := s.Repo.Count(ctx, repository.BookingFilter{QueueID: q.ID, Date: in.Date})
	if err != nil {
		return 0, utils.Wrap(utils.KindInternal, err, "failed to count bookings")
	}
	return all + 1, nil
}

// resolveContact merges an existing client into the supplied contact, or
// registers a new visit contact when no client is given.
func (s *DefaultBookingService) resolveContact(ctx context.Context, q *models.Queue, in CreateBookingInput) (*models.User, string, error) {
	user := models.User{}
	if in.User != nil {
		user = *in.User
	}
	if user.CommerceID == "" {
		user.CommerceID = q.CommerceID
	}

	if in.ClientID != "" {
		c, err := s.Clients.GetClientByID(ctx, in.ClientID)
		if err != nil {
			return nil, "", utils.Wrap(utils.KindInternal, err, "cannot book for client %s", in.ClientID)
		}
		user.Email = firstNonEmpty(c.Email, user.Email)
		user.Phone = firstNonEmpty(c.Phone, user.Phone)
		user.Name = firstNonEmpty(c.Name, user.Name)
		user.LastName = firstNonEmpty(c.LastName, user.LastName)
		user.IDNumber = firstNonEmpty(c.IDNumber, user.IDNumber)
		if len(c.PersonalInfo) > 0 {
			user.PersonalInfo = c.PersonalInfo
		}
		if _, err := s.Clients.SaveClient(ctx, client.ClientInput{
			ClientID:     in.ClientID,
			BusinessID:   user.BusinessID,
			CommerceID:   user.CommerceID,
			Name:         user.Name,
			LastName:     user.LastName,
			Phone:        user.Phone,
			Email:        user.Email,
			IDNumber:     user.IDNumber,
			PersonalInfo: user.PersonalInfo,
		}); err != nil {
			return nil, "", err
		}
		user.ClientID = in.ClientID
		return &user, in.ClientID, nil
	}

	user.QueueID = q.ID
	created, err := s.Users.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return created, created.ClientID, nil
}

func (s *DefaultBookingService) initialStatus(ctx context.Context, commerceID string, requested models.BookingStatus) models.BookingStatus {
	if requested != "" {
		return requested
	}
	if s.Features.IsActive(ctx, commerceID, models.ToggleBookingConfirm) {
		return models.BookingPending
	}
	return models.BookingConfirmed
}

// linkRequestedPackage opens a REQUESTED package for a single multi-session
// service. Failures are logged; the booking already exists.
func (s *DefaultBookingService) linkRequestedPackage(ctx context.Context, b *models.Booking) {
	if len(b.ServicesID) != 1 || b.ClientID == "" {
		return
	}
	log := utils.GetLogger().With(zap.String("bookingId", b.ID))
	services, err := s.Commerces.GetServices(ctx, b.ServicesID)
	if err != nil || len(services) == 0 {
		if err != nil {
			log.Warn("failed to load booking service", zap.Error(err))
		}
		return
	}
	ref := pack.IncomeRef{CommerceID: b.CommerceID, ClientID: b.ClientID, BookingID: b.ID}
	p, err := s.Ledger.EnsureRequestedPackage(ctx, ref, b.ServicesID, &services[0])
	if err != nil {
		log.Warn("failed to open requested package", zap.Error(err))
		return
	}
	if p == nil {
		return
	}
	b.PackageID = p.ID
	if err := s.Repo.Update(ctx, b); err != nil {
		log.Warn("failed to link package to booking", zap.String("packageId", p.ID), zap.Error(err))
	}
}

func termsCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:termsCodeLength]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
