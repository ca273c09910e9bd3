package attention

import (
	"context"
	"time"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/batch"
	"queuedesk/services/queue"
	"queuedesk/utils"

	"go.uber.org/zap"
)

func (s *DefaultAttentionService) collaborator(ctx context.Context, id string) (*models.Collaborator, error) {
	c, err := s.Commerces.GetCollaborator(ctx, id)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load collaborator %s", id)
	}
	if c == nil {
		return nil, utils.NotFound("collaborator %s not found", id)
	}
	return c, nil
}

// advanceCursor moves the queue cursor past a ticket that just left the
// waiting line.
func (s *DefaultAttentionService) advanceCursor(ctx context.Context, user string, left *models.Attention) error {
	_, err := s.Queues.UpdatePointer(ctx, user, left.QueueID, func(q *models.Queue) error {
		next, err := s.availableAt(ctx, q.ID, q.CurrentAttentionNumber+1)
		if err != nil {
			return err
		}
		nextID := ""
		if next != nil && next.ID != left.ID {
			nextID = next.ID
		}
		queue.AdvanceCursor(q, nextID)
		return nil
	})
	return err
}

// Attend calls the ticket holding number. A PENDING ticket starts being
// served; a USER_CANCELLED one is closed and skipped over.
func (s *DefaultAttentionService) Attend(ctx context.Context, user string, number int, queueID, collaboratorID, language string) (*models.Attention, error) {
	var (
		result   *models.Attention
		moduleID string
		attended bool
	)
	err := s.Queues.Serialize(queueID, func() error {
		a, err := s.findOne(ctx, repository.AttentionFilter{
			QueueID:  queueID,
			Number:   intPtr(number),
			Statuses: transitionMap[ActionAttend],
		})
		if err != nil {
			return err
		}
		if a == nil {
			return utils.NotFound("no attention to attend with number %d in queue %s", number, queueID)
		}

		if a.Status == models.AttentionUserCancelled {
			result, err = s.finishCancelledLocked(ctx, user, a)
			return err
		}

		c, err := s.collaborator(ctx, collaboratorID)
		if err != nil {
			return err
		}
		processedAt := time.Now()
		a.CollaboratorID = c.ID
		a.ModuleID = c.ModuleID
		a.Status = models.AttentionProcessing
		a.ProcessedAt = &processedAt

		if err := s.advanceCursor(ctx, user, a); err != nil {
			return err
		}
		result, err = s.save(ctx, user, a)
		attended = err == nil
		moduleID = c.ModuleID
		return err
	})
	if err != nil {
		return nil, err
	}
	if attended {
		s.notifyTurn(ctx, result, moduleID, language)
	}
	return result, nil
}

func (s *DefaultAttentionService) Skip(ctx context.Context, user string, number int, queueID, collaboratorID string) (*models.Attention, error) {
	var result *models.Attention
	err := s.Queues.Serialize(queueID, func() error {
		a, err := s.findOne(ctx, repository.AttentionFilter{
			QueueID:  queueID,
			Number:   intPtr(number),
			Statuses: transitionMap[ActionSkip],
		})
		if err != nil {
			return err
		}
		if a == nil {
			return utils.NotFound("no attention in process with number %d in queue %s", number, queueID)
		}
		c, err := s.collaborator(ctx, collaboratorID)
		if err != nil {
			return err
		}
		a.Status = models.AttentionSkipped
		a.CollaboratorID = c.ID

		_, err = s.Queues.UpdatePointer(ctx, user, queueID, func(q *models.Queue) error {
			current, err := s.findOne(ctx, pendingAt(queueID, q.CurrentAttentionNumber))
			if err != nil {
				return err
			}
			currentID := ""
			if current != nil {
				currentID = current.ID
			}
			queue.RecomputeCurrent(q, currentID)
			return nil
		})
		if err != nil {
			return err
		}
		result, err = s.save(ctx, user, a)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reactivate brings back a ticket skipped earlier today.
func (s *DefaultAttentionService) Reactivate(ctx context.Context, user string, number int, queueID, collaboratorID string) (*models.Attention, error) {
	var result *models.Attention
	err := s.Queues.Serialize(queueID, func() error {
		from, to := utils.DayBounds(time.Now())
		a, err := s.findOne(ctx, repository.AttentionFilter{
			QueueID:     queueID,
			Number:      intPtr(number),
			Statuses:    transitionMap[ActionReactivate],
			CreatedFrom: &from,
			CreatedTo:   &to,
		})
		if err != nil {
			return err
		}
		if a == nil {
			return utils.NotFound("no skipped attention with number %d in queue %s today", number, queueID)
		}
		c, err := s.collaborator(ctx, collaboratorID)
		if err != nil {
			return err
		}
		reactivatedAt := time.Now()
		a.Status = models.AttentionReactivated
		a.CollaboratorID = c.ID
		a.Reactivated = true
		a.ReactivatedAt = &reactivatedAt
		result, err = s.save(ctx, user, a)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *DefaultAttentionService) FinishAttention(ctx context.Context, user, id, comment string, date *time.Time) (*models.Attention, error) {
	a, err := s.GetAttentionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var (
		result   *models.Attention
		finished bool
	)
	err = s.Queues.Serialize(a.QueueID, func() error {
		result, finished, err = s.finishLocked(ctx, user, id, comment, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	if finished {
		s.afterFinish(ctx, result)
	}
	return result, nil
}

// finishLocked closes a ticket in service. Tickets in any other status are
// returned unchanged with finished == false.
func (s *DefaultAttentionService) finishLocked(ctx context.Context, user, id, comment string, date *time.Time) (*models.Attention, bool, error) {
	a, err := s.GetAttentionByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !ValidTransition(ActionFinish, a.Status) {
		return a, false, nil
	}

	endAt := time.Now()
	if date != nil {
		endAt = *date
	}
	a.Status = models.AttentionTerminated
	if comment != "" {
		a.Comment = comment
	}
	a.EndAt = &endAt
	if !a.Reactivated {
		start := a.CreatedAt
		if a.ProcessedAt != nil {
			start = *a.ProcessedAt
		}
		duration := float64(endAt.Sub(start).Milliseconds()) / 60000
		a.Duration = &duration
	}

	commerce := s.commerce(ctx, a.CommerceID)
	if commerce != nil && commerce.ServiceInfo != nil && commerce.ServiceInfo.SurveyPostAttentionDaysAfter > 0 {
		a.SurveyPostAttentionDateScheduled = utils.AddDays(time.Now(), commerce.ServiceInfo.SurveyPostAttentionDaysAfter)
	}

	a, err = s.save(ctx, user, a)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (s *DefaultAttentionService) FinishCancelledAttention(ctx context.Context, user, id string) (*models.Attention, error) {
	a, err := s.GetAttentionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var result *models.Attention
	err = s.Queues.Serialize(a.QueueID, func() error {
		fresh, err := s.GetAttentionByID(ctx, id)
		if err != nil {
			return err
		}
		result, err = s.finishCancelledLocked(ctx, user, fresh)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *DefaultAttentionService) finishCancelledLocked(ctx context.Context, user string, a *models.Attention) (*models.Attention, error) {
	if !ValidTransition(ActionFinishCancelled, a.Status) {
		return a, nil
	}
	endAt := time.Now()
	a.Status = models.AttentionTerminatedReserveCancelled
	a.EndAt = &endAt
	if err := s.advanceCursor(ctx, user, a); err != nil {
		return nil, err
	}
	return s.save(ctx, user, a)
}

// CancelAttention is the visitor giving up a waiting ticket. The ticket is
// also detached from every package of its client.
func (s *DefaultAttentionService) CancelAttention(ctx context.Context, user, id string) (*models.Attention, error) {
	a, err := s.GetAttentionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var (
		result    *models.Attention
		cancelled bool
	)
	err = s.Queues.Serialize(a.QueueID, func() error {
		result, err = s.GetAttentionByID(ctx, id)
		if err != nil {
			return err
		}
		if !ValidTransition(ActionCancel, result.Status) {
			return nil
		}
		cancelledAt := time.Now()
		result.Status = models.AttentionUserCancelled
		result.Cancelled = true
		result.CancelledAt = &cancelledAt
		result, err = s.save(ctx, user, result)
		cancelled = err == nil
		return err
	})
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return result, nil
	}

	s.attentionCancelWhatsapp(ctx, result)
	if result.ClientID != "" {
		if err := s.Ledger.DetachAll(ctx, user, result.CommerceID, result.ClientID, result.BookingID, result.ID); err != nil {
			utils.GetLogger().Warn("failed to detach cancelled attention from packages",
				zap.String("attentionId", result.ID), zap.Error(err))
		}
	}
	return result, nil
}

// CancelAttentions closes every ticket still waiting or in service. It runs
// nightly and sends no notifications.
func (s *DefaultAttentionService) CancelAttentions(ctx context.Context) (models.BatchResult, error) {
	open, err := s.Repo.Find(ctx, repository.AttentionFilter{Statuses: transitionMap[ActionBulkCancel]})
	if err != nil {
		return models.BatchResult{}, utils.Wrap(utils.KindInternal, err, "failed to query open attentions")
	}
	result := batch.Run(ctx, s.Runner, "cancel-attentions", open, func(ctx context.Context, a models.Attention) error {
		return s.Queues.Serialize(a.QueueID, func() error {
			fresh, err := s.GetAttentionByID(ctx, a.ID)
			if err != nil {
				return err
			}
			if !ValidTransition(ActionBulkCancel, fresh.Status) {
				return nil
			}
			fresh.Status = models.AttentionCancelled
			_, err = s.save(ctx, SystemUser, fresh)
			return err
		})
	})
	return result, nil
}

// TransferAttentionToQueue moves a ticket to a collaborator queue. Neither
// queue pointer changes.
func (s *DefaultAttentionService) TransferAttentionToQueue(ctx context.Context, user, id, queueID string) (*models.Attention, error) {
	a, err := s.GetAttentionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dest, err := s.Queues.GetQueueByID(ctx, queueID)
	if err != nil {
		return nil, err
	}
	if dest.Type != models.QueueTypeCollaborator {
		return nil, utils.BadRequest("attention %s cannot be transferred to queue %s of type %s", id, queueID, dest.Type)
	}

	var result *models.Attention
	err = s.Queues.Serialize(a.QueueID, func() error {
		fresh, err := s.GetAttentionByID(ctx, id)
		if err != nil {
			return err
		}
		transferedAt := time.Now()
		fresh.Transfered = true
		fresh.TransferedAt = &transferedAt
		fresh.TransferedOrigin = fresh.QueueID
		fresh.TransferedBy = user
		fresh.QueueID = queueID
		result, err = s.save(ctx, user, fresh)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetNoDevice turns a ticket into one served without the visitor's phone,
// attaching a fresh contact record.
func (s *DefaultAttentionService) SetNoDevice(ctx context.Context, user, id, assistingCollaboratorID, name string) (*models.Attention, error) {
	a, err := s.GetAttentionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var result *models.Attention
	err = s.Queues.Serialize(a.QueueID, func() error {
		fresh, err := s.GetAttentionByID(ctx, id)
		if err != nil {
			return err
		}
		u, err := s.Users.CreateUser(ctx, models.User{
			Name:       name,
			CommerceID: fresh.CommerceID,
			QueueID:    fresh.QueueID,
			Type:       models.UserTypeNoDevice,
		})
		if err != nil {
			return err
		}
		fresh.Type = models.AttentionTypeNoDevice
		fresh.AssistingCollaboratorID = assistingCollaboratorID
		fresh.UserID = u.ID
		result, err = s.save(ctx, user, fresh)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SaveDataNotification stores contact data captured after check-in and
// switches on the channels it makes possible.
func (s *DefaultAttentionService) SaveDataNotification(ctx context.Context, user, id string, contact ContactData) (*models.Attention, error) {
	a, err := s.GetAttentionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var (
		result *models.Attention
		holder *models.User
	)
	err = s.Queues.Serialize(a.QueueID, func() error {
		fresh, err := s.GetAttentionByID(ctx, id)
		if err != nil {
			return err
		}
		if fresh.UserID != "" {
			holder, err = s.Users.GetUserByID(ctx, fresh.UserID)
			if err != nil {
				return err
			}
			mergeContact(holder, contact)
			if err := s.Users.UpdateUser(ctx, user, holder); err != nil {
				return err
			}
		} else {
			holder, err = s.Users.CreateUser(ctx, models.User{
				Name:                contact.Name,
				LastName:            contact.LastName,
				Phone:               contact.Phone,
				Email:               contact.Email,
				IDNumber:            contact.IDNumber,
				CommerceID:          firstNonEmpty(contact.CommerceID, fresh.CommerceID),
				QueueID:             firstNonEmpty(contact.QueueID, fresh.QueueID),
				NotificationOn:      contact.NotificationOn,
				NotificationEmailOn: contact.NotificationEmailOn,
				PersonalInfo:        contact.PersonalInfo,
			})
			if err != nil {
				return err
			}
			fresh.UserID = holder.ID
			if fresh.ClientID == "" {
				fresh.ClientID = holder.ClientID
			}
		}
		if contact.Phone != "" {
			fresh.NotificationOn = true
		}
		if contact.Email != "" {
			fresh.NotificationEmailOn = true
		}
		result, err = s.save(ctx, user, fresh)
		return err
	})
	if err != nil {
		return nil, err
	}
	if contact.Email != "" {
		s.attentionEmail(ctx, result, holder)
	}
	return result, nil
}

func mergeContact(u *models.User, c ContactData) {
	if c.Name != "" {
		u.Name = c.Name
	}
	if c.LastName != "" {
		u.LastName = c.LastName
	}
	if c.Phone != "" {
		u.Phone = c.Phone
	}
	if c.Email != "" {
		u.Email = c.Email
	}
	if c.IDNumber != "" {
		u.IDNumber = c.IDNumber
	}
	if len(c.PersonalInfo) > 0 {
		u.PersonalInfo = c.PersonalInfo
	}
	u.NotificationOn = c.NotificationOn
	u.NotificationEmailOn = c.NotificationEmailOn
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
