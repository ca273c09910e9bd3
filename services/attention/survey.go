package attention

import (
	"context"
	"time"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/batch"
	"queuedesk/utils"

	"go.uber.org/zap"
)

const surveyBatchLimit = 25

// SurveyPostAttention sends the surveys scheduled for date (today when
// empty) and marks them sent.
func (s *DefaultAttentionService) SurveyPostAttention(ctx context.Context, date string) (models.BatchResult, error) {
	if date == "" {
		date = time.Now().UTC().Format(utils.DateLayout)
	}
	notSent := false
	due, err := s.Repo.Find(ctx, repository.AttentionFilter{
		Statuses:   []models.AttentionStatus{models.AttentionTerminated},
		SurveyDate: date,
		SurveySent: &notSent,
		Limit:      surveyBatchLimit,
	})
	if err != nil {
		return models.BatchResult{}, utils.Wrap(utils.KindInternal, err, "failed to query scheduled surveys")
	}

	result := batch.Run(ctx, s.Runner, "survey-post-attention", due, func(ctx context.Context, a models.Attention) error {
		d := s.details(ctx, &a)
		s.Notifications.Dispatch(ctx, s.surveyTasks(ctx, d)...)
		a.NotificationSurveySent = true
		_, err := s.save(ctx, SystemUser, &a)
		return err
	})
	utils.GetLogger().Info("survey post attention done",
		zap.String("date", date),
		zap.Int("toProcess", result.ToProcess),
		zap.Int("processed", result.Processed),
		zap.Int("errors", result.Errors))
	return result, nil
}
