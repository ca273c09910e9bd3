package attention

import (
	"context"
	"errors"
	"fmt"

	"queuedesk/models"
	"queuedesk/services/documents"
	"queuedesk/services/notification"
	"queuedesk/utils"

	"go.uber.org/zap"
)

func (s *DefaultAttentionService) attentionLink(a *models.Attention) string {
	return fmt.Sprintf("%s/interno/fila/%s/atencion/%s", s.BackendURL, a.QueueID, a.ID)
}

func (s *DefaultAttentionService) commerceLink(c *models.Commerce) string {
	if c == nil {
		return s.BackendURL
	}
	return fmt.Sprintf("%s/interno/comercio/%s", s.BackendURL, c.KeyName)
}

func (s *DefaultAttentionService) logo(c *models.Commerce) string {
	if c == nil || c.Logo == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", s.BackendURL, c.Logo)
}

func target(t models.NotificationType, receiver string, a *models.Attention) notification.Target {
	return notification.Target{
		Type:        t,
		Receiver:    receiver,
		AttentionID: a.ID,
		BookingID:   a.BookingID,
		CommerceID:  a.CommerceID,
		QueueID:     a.QueueID,
	}
}

func (s *DefaultAttentionService) whatsappTask(t notification.Target, phone, text, from string) notification.Task {
	return func(ctx context.Context) notification.Result {
		return s.Notifications.SendWhatsapp(ctx, t, phone, text, from)
	}
}

func (s *DefaultAttentionService) emailTask(t notification.Target, email, template string, data map[string]interface{}) notification.Task {
	return func(ctx context.Context) notification.Result {
		return s.Notifications.SendEmail(ctx, t, email, template, data)
	}
}

func (s *DefaultAttentionService) user(ctx context.Context, id string) *models.User {
	if id == "" {
		return nil
	}
	u, err := s.Users.GetUserByID(ctx, id)
	if err != nil {
		return nil
	}
	return u
}

func notifiable(a *models.Attention) bool {
	return a.Type == models.AttentionTypeStandard || a.Type == models.AttentionTypeSurveyOnly
}

// notifyTurn tells the called visitor it is their turn and warns the ones
// one and five places behind.
func (s *DefaultAttentionService) notifyTurn(ctx context.Context, attended *models.Attention, moduleID, language string) []notification.Result {
	commerce := s.commerce(ctx, attended.CommerceID)
	if language == "" {
		language = commerce.Language()
	}
	moduleName := ""
	if moduleID != "" {
		if m, err := s.Commerces.GetModule(ctx, moduleID); err == nil && m != nil {
			moduleName = m.Name
		}
	}

	var offsets []int
	if s.Features.IsActive(ctx, attended.CommerceID, models.ToggleWhatsappNotifyNow) {
		offsets = append(offsets, 0)
	}
	if s.Features.IsActive(ctx, attended.CommerceID, models.ToggleWhatsappNotifyOne) {
		offsets = append(offsets, 1)
	}
	if s.Features.IsActive(ctx, attended.CommerceID, models.ToggleWhatsappNotifyFive) {
		offsets = append(offsets, 5)
	}

	var tasks []notification.Task
	for _, offset := range offsets {
		waiting := attended
		if offset > 0 {
			found, err := s.findOne(ctx, pendingAt(attended.QueueID, attended.Number+offset))
			if err != nil || found == nil {
				continue
			}
			waiting = found
		}
		if waiting.Type != models.AttentionTypeStandard {
			continue
		}
		u := s.user(ctx, waiting.UserID)
		if u == nil || !u.NotificationOn || u.Phone == "" {
			continue
		}

		var (
			kind models.NotificationType
			text string
		)
		switch offset {
		case 0:
			kind, text = models.NotificationAttentionNow, notification.ItsYourTurnMessage(language, attended.Number, moduleName)
		case 1:
			kind, text = models.NotificationAttentionOne, notification.OneLeftMessage(language, attended.Number)
		case 5:
			kind, text = models.NotificationAttentionFive, notification.FiveLeftMessage(language, attended.Number)
		}
		tasks = append(tasks, s.whatsappTask(target(kind, waiting.UserID, attended), u.Phone, text, commerce.SenderWhatsapp()))
	}

	if s.Features.IsActive(ctx, attended.CommerceID, models.ToggleEmailNotifyNow) && attended.Type == models.AttentionTypeStandard {
		u := s.user(ctx, attended.UserID)
		if u != nil && u.NotificationEmailOn && u.Email != "" {
			collaboratorName := ""
			if c, err := s.Commerces.GetCollaborator(ctx, attended.CollaboratorID); err == nil && c != nil {
				collaboratorName = c.Name
			}
			data := s.emailData(attended, commerce)
			data["module"] = moduleName
			data["collaborator"] = collaboratorName
			tasks = append(tasks, s.emailTask(target(models.NotificationAttentionNow, attended.UserID, attended),
				u.Email, notification.TemplateName(notification.TemplateItsYourTurn, language), data))
		}
	}
	return s.Notifications.Dispatch(ctx, tasks...)
}

func (s *DefaultAttentionService) emailData(a *models.Attention, commerce *models.Commerce) map[string]interface{} {
	name := ""
	if commerce != nil {
		name = commerce.Name
	}
	return map[string]interface{}{
		"number":   a.Number,
		"commerce": name,
		"link":     s.attentionLink(a),
		"logo":     s.logo(commerce),
	}
}

// attentionEmail sends the "your ticket" email right after check-in.
func (s *DefaultAttentionService) attentionEmail(ctx context.Context, a *models.Attention, u *models.User) []notification.Result {
	if u == nil || u.Email == "" || a.Type != models.AttentionTypeStandard {
		return nil
	}
	if !s.Features.IsActive(ctx, a.CommerceID, models.ToggleEmailAttention) {
		return nil
	}
	commerce := s.commerce(ctx, a.CommerceID)
	template := notification.TemplateName(notification.TemplateYourTurn, commerce.Language())
	return s.Notifications.Dispatch(ctx,
		s.emailTask(target(models.NotificationAttentionTicket, a.UserID, a), u.Email, template, s.emailData(a, commerce)))
}

// surveyTasks builds the CSAT email and WhatsApp for a finished ticket.
func (s *DefaultAttentionService) surveyTasks(ctx context.Context, d *models.AttentionDetails) []notification.Task {
	a := &d.Attention
	if !notifiable(a) || d.User == nil {
		return nil
	}
	language := d.Commerce.Language()
	var tasks []notification.Task
	if d.User.Email != "" && s.Features.IsActive(ctx, a.CommerceID, models.ToggleEmailCsat) {
		tasks = append(tasks, s.emailTask(target(models.NotificationSurvey, a.UserID, a), d.User.Email,
			notification.TemplateName(notification.TemplateCsat, language), s.emailData(a, d.Commerce)))
	}
	if d.User.Phone != "" && s.Features.IsActive(ctx, a.CommerceID, models.ToggleWhatsappCsat) {
		name := ""
		if d.Commerce != nil {
			name = d.Commerce.Name
		}
		text := notification.SurveyMessage(language, name, s.attentionLink(a))
		tasks = append(tasks, s.whatsappTask(target(models.NotificationSurvey, a.UserID, a), d.User.Phone, text, d.Commerce.SenderWhatsapp()))
	}
	return tasks
}

// postAttentionTask mails the commerce's post-attention document, when it
// has one.
func (s *DefaultAttentionService) postAttentionTask(ctx context.Context, d *models.AttentionDetails) notification.Task {
	a := &d.Attention
	if d.User == nil || d.User.Email == "" || d.Commerce == nil {
		return nil
	}
	if !s.Features.IsActive(ctx, a.CommerceID, models.ToggleEmailPostAttention) {
		return nil
	}
	if s.Documents == nil {
		return nil
	}
	doc, err := s.Documents.GetDocument(ctx, d.Commerce.ID+".pdf", "post_attention")
	if err != nil {
		if !errors.Is(err, documents.ErrNoDocument) {
			utils.GetLogger().Warn("failed to load post attention document",
				zap.String("commerceId", d.Commerce.ID), zap.Error(err))
		}
		return nil
	}
	language := d.Commerce.Language()
	email := notification.RawEmail{
		To:      []string{d.User.Email},
		Subject: notification.PostAttentionSubject(language, d.Commerce.Name),
		HTML:    notification.PostAttentionHTML(language, d.Commerce.Name, s.logo(d.Commerce)),
		Attachments: []notification.Attachment{{
			Filename:    "post_attention-" + d.Commerce.Name + ".pdf",
			ContentType: "application/pdf",
			Content:     doc,
		}},
	}
	t := target(models.NotificationPostAttention, a.UserID, a)
	return func(ctx context.Context) notification.Result {
		return s.Notifications.SendRawEmail(ctx, t, email)
	}
}

// afterFinish sends the survey (unless one is scheduled for later) and the
// post-attention email.
func (s *DefaultAttentionService) afterFinish(ctx context.Context, a *models.Attention) []notification.Result {
	d := s.details(ctx, a)
	var tasks []notification.Task
	if a.SurveyPostAttentionDateScheduled == "" {
		tasks = append(tasks, s.surveyTasks(ctx, d)...)
	}
	if t := s.postAttentionTask(ctx, d); t != nil {
		tasks = append(tasks, t)
	}
	return s.Notifications.Dispatch(ctx, tasks...)
}

func (s *DefaultAttentionService) attentionCancelWhatsapp(ctx context.Context, a *models.Attention) []notification.Result {
	if !notifiable(a) || !s.Features.IsActive(ctx, a.CommerceID, models.ToggleAttentionWhatsappCancel) {
		return nil
	}
	u := s.user(ctx, a.UserID)
	if u == nil || u.Phone == "" {
		return nil
	}
	commerce := s.commerce(ctx, a.CommerceID)
	text := notification.AttentionCancelledMessage(commerce.Language(), a.Number, s.commerceLink(commerce))
	return s.Notifications.Dispatch(ctx,
		s.whatsappTask(target(models.NotificationAttentionCancel, a.UserID, a), u.Phone, text, commerce.SenderWhatsapp()))
}
