package memory

import (
	"context"
	"fmt"
	"sort"

	attentionRepo "queuedesk/database/repository/attention"
	"queuedesk/models"
)

type AttentionRepo struct{ s *Store }

var _ attentionRepo.AttentionRepository = (*AttentionRepo)(nil)

func (r *AttentionRepo) GetByID(_ context.Context, id string) (*models.Attention, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.attentions[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AttentionRepo) Create(_ context.Context, attention *models.Attention) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.attentions[attention.ID]; ok {
		return fmt.Errorf("attention %s already exists", attention.ID)
	}
	r.s.attentions[attention.ID] = *attention
	return nil
}

func (r *AttentionRepo) Update(_ context.Context, attention *models.Attention) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.attentions[attention.ID]; !ok {
		return fmt.Errorf("attention with id %s not found", attention.ID)
	}
	r.s.attentions[attention.ID] = *attention
	return nil
}

func (r *AttentionRepo) Find(_ context.Context, f attentionRepo.AttentionFilter) ([]models.Attention, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Attention
	for _, a := range r.s.attentions {
		if matchAttention(a, f) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if f.LatestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func matchAttention(a models.Attention, f attentionRepo.AttentionFilter) bool {
	switch {
	case f.ID != "" && a.ID != f.ID:
		return false
	case f.CommerceID != "" && a.CommerceID != f.CommerceID:
		return false
	case f.QueueID != "" && a.QueueID != f.QueueID:
		return false
	case f.Number != nil && a.Number != *f.Number:
		return false
	case len(f.Statuses) > 0 && !models.ContainsStatus(f.Statuses, a.Status):
		return false
	case f.CreatedFrom != nil && a.CreatedAt.Before(*f.CreatedFrom):
		return false
	case f.CreatedTo != nil && !a.CreatedAt.Before(*f.CreatedTo):
		return false
	case f.SurveyDate != "" && a.SurveyPostAttentionDateScheduled != f.SurveyDate:
		return false
	case f.SurveySent != nil && a.NotificationSurveySent != *f.SurveySent:
		return false
	}
	return true
}
