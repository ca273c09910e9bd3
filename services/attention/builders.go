package attention

import (
	"context"
	"time"

	"queuedesk/models"
	"queuedesk/services/pack"
	"queuedesk/services/queue"
	"queuedesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuilderKind selects how a ticket gets its number and pointer update.
type BuilderKind int

const (
	BuilderDefault BuilderKind = iota
	BuilderReserve
	BuilderNoDevice
	BuilderSurvey
)

func (k BuilderKind) String() string {
	switch k {
	case BuilderReserve:
		return "reserve"
	case BuilderNoDevice:
		return "nodevice"
	case BuilderSurvey:
		return "survey"
	default:
		return "default"
	}
}

// CreateParams is the resolved input of a builder. Queue must be freshly
// loaded by the caller holding the queue lock.
type CreateParams struct {
	Queue                       *models.Queue
	CollaboratorID              string
	Channel                     string
	UserID                      string
	ClientID                    string
	Type                        models.AttentionType
	Block                       *models.Block
	Date                        *time.Time
	PaymentConfirmationData     *models.PaymentConfirmation
	BookingID                   string
	ServicesID                  []string
	ServicesDetails             []models.ServiceDetail
	NotificationOn              bool
	NotificationEmailOn         bool
	TermsConditionsToAcceptCode string
	TermsConditionsAcceptedCode string
	TermsConditionsToAcceptedAt *time.Time
}

func (s *DefaultAttentionService) build(ctx context.Context, kind BuilderKind, p CreateParams) (*models.Attention, error) {
	utils.GetLogger().Debug("building attention",
		zap.String("builder", kind.String()), zap.String("queueId", p.Queue.ID))

	switch kind {
	case BuilderReserve:
		return s.buildReserve(ctx, p)
	case BuilderNoDevice:
		return s.buildNoDevice(ctx, p)
	case BuilderSurvey:
		return s.buildSurvey(ctx, p)
	default:
		return s.buildDefault(ctx, p)
	}
}

func newAttention(p CreateParams) *models.Attention {
	createdAt := time.Now()
	if p.Date != nil {
		createdAt = *p.Date
	}
	a := &models.Attention{
		ID:                  uuid.New().String(),
		CommerceID:          p.Queue.CommerceID,
		QueueID:             p.Queue.ID,
		Status:              models.AttentionPending,
		Type:                models.AttentionTypeStandard,
		Channel:             p.Channel,
		CreatedAt:           createdAt,
		UserID:              p.UserID,
		ClientID:            p.ClientID,
		CollaboratorID:      p.Queue.CollaboratorID,
		ServiceID:           p.Queue.ServiceID,
		ServicesID:          p.ServicesID,
		ServicesDetails:     p.ServicesDetails,
		BookingID:           p.BookingID,
		NotificationOn:      p.NotificationOn,
		NotificationEmailOn: p.NotificationEmailOn,
	}
	if a.Channel == "" {
		a.Channel = models.ChannelQR
	}
	if p.CollaboratorID != "" {
		a.CollaboratorID = p.CollaboratorID
	}
	return a
}

func (s *DefaultAttentionService) insert(ctx context.Context, a *models.Attention) error {
	if err := s.Repo.Create(ctx, a); err != nil {
		return utils.Wrap(utils.KindInternal, err, "failed to create attention number %d in queue %s", a.Number, a.QueueID)
	}
	return nil
}

// created runs the last step shared by every builder: pointer update, then
// the AttentionCreated event.
func (s *DefaultAttentionService) created(ctx context.Context, a *models.Attention, fn func(q *models.Queue)) (*models.Attention, error) {
	_, err := s.Queues.UpdatePointer(ctx, SystemUser, a.QueueID, func(q *models.Queue) error {
		fn(q)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, models.EventAttentionCreated, a.UserID, a)
	return a, nil
}

// linkRequestedPackage opens a REQUESTED package for a single multi-session
// service. Failures are logged; the ticket already exists.
func (s *DefaultAttentionService) linkRequestedPackage(ctx context.Context, a *models.Attention) {
	if len(a.ServicesID) != 1 || a.ClientID == "" {
		return
	}
	log := utils.GetLogger().With(zap.String("attentionId", a.ID))
	services, err := s.Commerces.GetServices(ctx, a.ServicesID)
	if err != nil || len(services) == 0 {
		if err != nil {
			log.Warn("failed to load attention service", zap.Error(err))
		}
		return
	}
	ref := pack.IncomeRef{CommerceID: a.CommerceID, ClientID: a.ClientID, AttentionID: a.ID}
	p, err := s.Ledger.EnsureRequestedPackage(ctx, ref, a.ServicesID, &services[0])
	if err != nil {
		log.Warn("failed to open requested package", zap.Error(err))
		return
	}
	if p == nil {
		return
	}
	a.PackageID = p.ID
	if err := s.Repo.Update(ctx, a); err != nil {
		log.Warn("failed to link package to attention", zap.String("packageId", p.ID), zap.Error(err))
	}
}

func (s *DefaultAttentionService) buildDefault(ctx context.Context, p CreateParams) (*models.Attention, error) {
	number, err := s.Queues.IssueNumber(ctx, p.Queue.ID)
	if err != nil {
		return nil, err
	}
	a := newAttention(p)
	a.Number = number
	if err := s.insert(ctx, a); err != nil {
		return nil, err
	}
	s.linkRequestedPackage(ctx, a)
	return s.created(ctx, a, func(q *models.Queue) {
		queue.SeedIfFirst(q, number, a.ID)
		queue.FillCurrentIfEmpty(q, number, a.ID)
	})
}

func (s *DefaultAttentionService) buildNoDevice(ctx context.Context, p CreateParams) (*models.Attention, error) {
	number, err := s.Queues.IssueNumber(ctx, p.Queue.ID)
	if err != nil {
		return nil, err
	}
	a := newAttention(p)
	a.Number = number
	a.Type = models.AttentionTypeNoDevice
	a.AssistingCollaboratorID = p.CollaboratorID
	a.CollaboratorID = p.Queue.CollaboratorID
	if err := s.insert(ctx, a); err != nil {
		return nil, err
	}
	s.linkRequestedPackage(ctx, a)
	return s.created(ctx, a, func(q *models.Queue) {
		queue.SeedIfFirst(q, number, a.ID)
		queue.FillCurrentIfEmpty(q, number, a.ID)
	})
}

func (s *DefaultAttentionService) buildReserve(ctx context.Context, p CreateParams) (*models.Attention, error) {
	if p.Block == nil {
		return nil, utils.BadRequest("attention reserve on queue %s requires a block", p.Queue.ID)
	}
	a := newAttention(p)
	if p.Type != "" {
		a.Type = p.Type
	}
	block := *p.Block
	a.Block = &block
	a.Number = block.Number
	if p.Queue.Type == models.QueueTypeSelectService || block.Number == 0 {
		a.Number = p.Queue.CurrentNumber + 1
	}
	a.TermsConditionsToAcceptCode = p.TermsConditionsToAcceptCode
	a.TermsConditionsAcceptedCode = p.TermsConditionsAcceptedCode
	a.TermsConditionsToAcceptedAt = p.TermsConditionsToAcceptedAt

	from, to := utils.DayBounds(a.CreatedAt)
	existing, err := s.findOne(ctx, slotFilter(a.QueueID, a.Number, from, to))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.BadRequest("attention number %d already exists in queue %s for %s",
			a.Number, a.QueueID, from.Format(utils.DateLayout))
	}

	data := p.PaymentConfirmationData
	if data.IsPaid() {
		confirmedAt := time.Now()
		a.PaymentConfirmationData = data
		a.Paid = true
		a.PaidAt = data.PaymentDate
		a.Confirmed = true
		a.ConfirmedAt = &confirmedAt
	}
	if data != nil && data.PackageID != "" {
		a.PackageID = data.PackageID
		a.PackageProceduresTotalNumber = data.ProceduresTotalNumber
		a.PackageProcedureNumber = data.ProcedureNumber
	}

	if err := s.insert(ctx, a); err != nil {
		return nil, err
	}
	if a.PackageID == "" {
		s.linkRequestedPackage(ctx, a)
	}
	number := a.Number
	return s.created(ctx, a, func(q *models.Queue) {
		queue.RaiseCurrentNumber(q, number)
		if q.CurrentNumber == 1 {
			queue.SeedIfFirst(q, number, a.ID)
		}
		queue.FillCurrentIfEmpty(q, number, a.ID)
	})
}

// buildSurvey records a ticket that is served on the spot; the caller
// finishes it right away.
func (s *DefaultAttentionService) buildSurvey(ctx context.Context, p CreateParams) (*models.Attention, error) {
	number, err := s.Queues.IssueNumber(ctx, p.Queue.ID)
	if err != nil {
		return nil, err
	}
	endAt := time.Now()
	a := newAttention(p)
	a.Number = number
	a.Status = models.AttentionProcessing
	a.Type = models.AttentionTypeSurveyOnly
	a.EndAt = &endAt
	if err := s.insert(ctx, a); err != nil {
		return nil, err
	}
	return s.created(ctx, a, func(q *models.Queue) {
		queue.SeedIfFirst(q, number, a.ID)
		q.CurrentAttentionNumber++
	})
}
