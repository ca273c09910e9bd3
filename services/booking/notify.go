package booking

import (
	"context"
	"fmt"

	"queuedesk/models"
	"queuedesk/services/notification"
	"queuedesk/utils"
)

var (
	emailTemplates = map[string]string{
		models.ToggleEmailBooking:        notification.TemplateYourReserve,
		models.ToggleBookingEmailConfirm: notification.TemplateYourReserveConfirm,
	}
	notificationTypes = map[string]models.NotificationType{
		models.ToggleEmailBooking:           models.NotificationBookingCreated,
		models.ToggleWhatsappBooking:        models.NotificationBookingCreated,
		models.ToggleBookingEmailConfirm:    models.NotificationBookingConfirm,
		models.ToggleBookingWhatsappConfirm: models.NotificationBookingConfirm,
		models.ToggleBookingWhatsappCancel:  models.NotificationBookingCancelled,
	}
)

func (s *DefaultBookingService) bookingLink(b *models.Booking) string {
	return fmt.Sprintf("%s/interno/booking/%s", s.BackendURL, b.ID)
}

func (s *DefaultBookingService) commerceLink(c *models.Commerce) string {
	if c == nil {
		return s.BackendURL
	}
	return fmt.Sprintf("%s/interno/comercio/%s", s.BackendURL, c.KeyName)
}

func target(t models.NotificationType, b *models.Booking) notification.Target {
	receiver := ""
	if b.User != nil {
		receiver = b.User.ID
	}
	return notification.Target{
		Type:       t,
		Receiver:   receiver,
		BookingID:  b.ID,
		CommerceID: b.CommerceID,
		QueueID:    b.QueueID,
	}
}

func blockHours(b *models.Booking) (string, string) {
	if b.Block == nil {
		return "", ""
	}
	return b.Block.HourFrom, b.Block.HourTo
}

// bookingEmailTasks builds the booking email gated by toggle.
func (s *DefaultBookingService) bookingEmailTasks(ctx context.Context, b *models.Booking, toggle string) []notification.Task {
	if b.Type != models.AttentionTypeStandard || b.User == nil || b.User.Email == "" {
		return nil
	}
	if !s.Features.IsActive(ctx, b.CommerceID, toggle) {
		return nil
	}
	commerce := s.commerce(ctx, b.CommerceID)
	name, logo := "", ""
	if commerce != nil {
		name = commerce.Name
		if commerce.Logo != "" {
			logo = fmt.Sprintf("%s/%s", s.BackendURL, commerce.Logo)
		}
	}
	from, to := blockHours(b)
	data := map[string]interface{}{
		"number":   b.Number,
		"date":     b.Date,
		"block":    fmt.Sprintf("%s - %s", from, to),
		"commerce": name,
		"link":     s.bookingLink(b),
		"logo":     logo,
	}
	template := notification.TemplateName(emailTemplates[toggle], commerce.Language())
	t := target(notificationTypes[toggle], b)
	email := b.User.Email
	return []notification.Task{func(ctx context.Context) notification.Result {
		return s.Notifications.SendEmail(ctx, t, email, template, data)
	}}
}

// bookingWhatsappTasks builds the booking WhatsApp gated by toggle. Only
// contacts that opted in are messaged.
func (s *DefaultBookingService) bookingWhatsappTasks(ctx context.Context, b *models.Booking, toggle string) []notification.Task {
	if b.Type != models.AttentionTypeStandard || b.User == nil || !b.User.NotificationOn || b.User.Phone == "" {
		return nil
	}
	if !s.Features.IsActive(ctx, b.CommerceID, toggle) {
		return nil
	}
	commerce := s.commerce(ctx, b.CommerceID)
	name := ""
	if commerce != nil {
		name = commerce.Name
	}
	language := commerce.Language()
	date := utils.FormatDDMMYYYY(b.Date)
	from, to := blockHours(b)

	var text string
	switch toggle {
	case models.ToggleBookingWhatsappConfirm:
		text = notification.BookingConfirmMessage(language, name, date, from, to, s.bookingLink(b))
	case models.ToggleBookingWhatsappCancel:
		text = notification.BookingCancelledMessage(language, name, date, s.commerceLink(commerce))
	default:
		text = notification.BookingCreatedMessage(language, name, date, from, to, s.bookingLink(b))
	}
	t := target(notificationTypes[toggle], b)
	phone, sender := b.User.Phone, commerce.SenderWhatsapp()
	return []notification.Task{func(ctx context.Context) notification.Result {
		return s.Notifications.SendWhatsapp(ctx, t, phone, text, sender)
	}}
}
