package attention

import (
	"context"

	"queuedesk/models"
	"queuedesk/utils"

	"go.uber.org/zap"
)

// CreateAttention registers the visitor, picks a builder and creates the
// ticket under the queue lock.
func (s *DefaultAttentionService) CreateAttention(ctx context.Context, in CreateAttentionInput) (*models.Attention, error) {
	q, err := s.Queues.GetQueueByID(ctx, in.QueueID)
	if err != nil {
		return nil, err
	}
	if in.User != nil && !in.User.AcceptTermsAndConditions {
		return nil, utils.Internal("terms and conditions were not accepted")
	}

	newUser := models.User{}
	if in.User != nil {
		newUser = *in.User
	}
	newUser.CommerceID = q.CommerceID
	newUser.QueueID = q.ID
	newUser.ClientID = in.ClientID
	if in.Type == models.AttentionTypeNoDevice && newUser.Type == "" {
		newUser.Type = models.UserTypeNoDevice
	}
	user, err := s.Users.CreateUser(ctx, newUser)
	if err != nil {
		return nil, err
	}
	clientID := in.ClientID
	if clientID == "" {
		clientID = user.ClientID
	}

	params := CreateParams{
		CollaboratorID:              in.CollaboratorID,
		Channel:                     in.Channel,
		UserID:                      user.ID,
		ClientID:                    clientID,
		Type:                        in.Type,
		Block:                       in.Block,
		Date:                        in.Date,
		PaymentConfirmationData:     in.PaymentConfirmationData,
		BookingID:                   in.BookingID,
		ServicesID:                  in.ServicesID,
		ServicesDetails:             in.ServicesDetails,
		NotificationOn:              user.NotificationOn,
		NotificationEmailOn:         user.NotificationEmailOn,
		TermsConditionsToAcceptCode: in.TermsConditionsToAcceptCode,
		TermsConditionsAcceptedCode: in.TermsConditionsAcceptedCode,
		TermsConditionsToAcceptedAt: in.TermsConditionsToAcceptedAt,
	}

	var (
		created  *models.Attention
		finished bool
	)
	err = s.Queues.Serialize(q.ID, func() error {
		fresh, err := s.Queues.GetQueueByID(ctx, q.ID)
		if err != nil {
			return err
		}
		params.Queue = fresh

		kind, err := s.selectBuilder(ctx, in, &params)
		if err != nil {
			return err
		}
		created, err = s.build(ctx, kind, params)
		if err != nil {
			return err
		}
		if kind == BuilderSurvey {
			created, finished, err = s.finishLocked(ctx, created.UserID, created.ID, "", nil)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("attention created",
		zap.String("attentionId", created.ID),
		zap.String("queueId", created.QueueID),
		zap.Int("number", created.Number))

	if finished {
		s.afterFinish(ctx, created)
	}
	if user.Email != "" {
		s.attentionEmail(ctx, created, user)
	}
	return created, nil
}

// selectBuilder picks the builder for in. The only-survey arm swaps the
// collaborator for the commerce bot.
func (s *DefaultAttentionService) selectBuilder(ctx context.Context, in CreateAttentionInput, p *CreateParams) (BuilderKind, error) {
	if in.Type == models.AttentionTypeNoDevice {
		if in.Block.IsSet() {
			return BuilderReserve, nil
		}
		return BuilderNoDevice, nil
	}
	if s.Features.IsActive(ctx, p.Queue.CommerceID, models.ToggleOnlySurvey) {
		bot, err := s.Commerces.GetCollaboratorBot(ctx, p.Queue.CommerceID)
		if err != nil {
			return 0, utils.Wrap(utils.KindInternal, err, "failed to load bot collaborator")
		}
		if bot == nil {
			return 0, utils.Internal("commerce %s has no bot collaborator", p.Queue.CommerceID)
		}
		p.CollaboratorID = bot.ID
		return BuilderSurvey, nil
	}
	if in.Block.IsSet() {
		return BuilderReserve, nil
	}
	return BuilderDefault, nil
}
