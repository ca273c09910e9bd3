package attention

import (
	"context"
	"time"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/events"
	"queuedesk/utils"

	"go.uber.org/zap"
)

func intPtr(n int) *int { return &n }

func pendingAt(queueID string, number int) repository.AttentionFilter {
	return repository.AttentionFilter{
		QueueID:  queueID,
		Number:   intPtr(number),
		Statuses: []models.AttentionStatus{models.AttentionPending},
	}
}

// slotFilter matches active tickets holding number in queueID within [from, to).
func slotFilter(queueID string, number int, from, to time.Time) repository.AttentionFilter {
	return repository.AttentionFilter{
		QueueID:     queueID,
		Number:      intPtr(number),
		Statuses:    models.ActiveAttentionStatuses,
		CreatedFrom: &from,
		CreatedTo:   &to,
	}
}

func (s *DefaultAttentionService) GetAttentionByID(ctx context.Context, id string) (*models.Attention, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load attention %s", id)
	}
	if a == nil {
		return nil, utils.NotFound("attention %s not found", id)
	}
	return a, nil
}

func (s *DefaultAttentionService) findOne(ctx context.Context, f repository.AttentionFilter) (*models.Attention, error) {
	f.Limit = 1
	f.LatestFirst = true
	found, err := s.Repo.Find(ctx, f)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to query attentions")
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// availableAt returns the latest callable ticket holding number, or nil.
func (s *DefaultAttentionService) availableAt(ctx context.Context, queueID string, number int) (*models.Attention, error) {
	return s.findOne(ctx, repository.AttentionFilter{
		QueueID:  queueID,
		Number:   intPtr(number),
		Statuses: models.AvailableAttentionStatuses,
	})
}

func (s *DefaultAttentionService) GetAvailableAttentionByNumber(ctx context.Context, number int, queueID string) (*models.Attention, error) {
	a, err := s.availableAt(ctx, queueID, number)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, utils.NotFound("no available attention with number %d in queue %s", number, queueID)
	}
	return a, nil
}

func (s *DefaultAttentionService) GetNextAvailableAttention(ctx context.Context, queueID string) (*models.Attention, error) {
	q, err := s.Queues.GetQueueByID(ctx, queueID)
	if err != nil {
		return nil, err
	}
	return s.GetAvailableAttentionByNumber(ctx, q.CurrentAttentionNumber, queueID)
}

func (s *DefaultAttentionService) GetProcessingAttentions(ctx context.Context, queueID string) ([]models.Attention, error) {
	found, err := s.Repo.Find(ctx, repository.AttentionFilter{
		QueueID:  queueID,
		Statuses: []models.AttentionStatus{models.AttentionProcessing},
	})
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to query processing attentions of queue %s", queueID)
	}
	return found, nil
}

// GetAttentionDetails joins the ticket with its queue, commerce, user,
// collaborator and module. Missing references are left nil.
func (s *DefaultAttentionService) GetAttentionDetails(ctx context.Context, id string) (*models.AttentionDetails, error) {
	a, err := s.GetAttentionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, a), nil
}

func (s *DefaultAttentionService) details(ctx context.Context, a *models.Attention) *models.AttentionDetails {
	log := utils.GetLogger()
	d := &models.AttentionDetails{Attention: *a}

	if q, err := s.Queues.GetQueueByID(ctx, a.QueueID); err == nil {
		d.Queue = q
	}
	if c, err := s.Commerces.GetCommerce(ctx, a.CommerceID); err != nil {
		log.Warn("failed to load commerce for attention", zap.String("attentionId", a.ID), zap.Error(err))
	} else {
		d.Commerce = c
	}
	if a.UserID != "" {
		if u, err := s.Users.GetUserByID(ctx, a.UserID); err == nil {
			d.User = u
		}
	}
	if a.CollaboratorID != "" {
		if c, err := s.Commerces.GetCollaborator(ctx, a.CollaboratorID); err == nil {
			d.Collaborator = c
		}
	}
	if a.ModuleID != "" {
		if m, err := s.Commerces.GetModule(ctx, a.ModuleID); err == nil {
			d.Module = m
		}
	}
	return d
}

func (s *DefaultAttentionService) commerce(ctx context.Context, id string) *models.Commerce {
	c, err := s.Commerces.GetCommerce(ctx, id)
	if err != nil {
		utils.GetLogger().Warn("failed to load commerce", zap.String("commerceId", id), zap.Error(err))
		return nil
	}
	return c
}

func (s *DefaultAttentionService) save(ctx context.Context, user string, a *models.Attention) (*models.Attention, error) {
	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to update attention %s", a.ID)
	}
	s.emit(ctx, models.EventAttentionUpdated, user, a)
	return a, nil
}

func (s *DefaultAttentionService) emit(ctx context.Context, name, user string, a *models.Attention) {
	events.Emit(ctx, s.Events, name, user, *a)
}
