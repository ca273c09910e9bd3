package pack

import (
	"context"
	"time"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/services/events"
	"queuedesk/utils"

	"github.com/google/uuid"
)

// IncomeRef ties an income to the records it pays for.
type IncomeRef struct {
	CommerceID  string
	BookingID   string
	AttentionID string
	ClientID    string
	PackageID   string
}

type IncomeService interface {
	CreateIncome(ctx context.Context, user string, ref IncomeRef, data *models.PaymentConfirmation) (*models.Income, error)
	// CreateIncomes splits totalAmount into data.Installments incomes and
	// returns the first one.
	CreateIncomes(ctx context.Context, user string, ref IncomeRef, data *models.PaymentConfirmation) (*models.Income, error)
	PayPendingIncome(ctx context.Context, user, incomeID string, data *models.PaymentConfirmation) (*models.Income, error)
}

type DefaultIncomeService struct {
	Repo   repository.IncomeRepository
	Events events.Publisher
}

func newIncome(user string, ref IncomeRef, data *models.PaymentConfirmation) *models.Income {
	return &models.Income{
		ID:              uuid.New().String(),
		CommerceID:      ref.CommerceID,
		BookingID:       ref.BookingID,
		AttentionID:     ref.AttentionID,
		ClientID:        ref.ClientID,
		PackageID:       ref.PackageID,
		PaymentMethod:   data.PaymentMethod,
		Commission:      data.PaymentCommission,
		Comment:         data.PaymentComment,
		FiscalNote:      data.PaymentFiscalNote,
		PromotionalCode: data.PromotionalCode,
		TransactionID:   data.TransactionID,
		BankEntity:      data.BankEntity,
		CreatedAt:       time.Now(),
		CreatedBy:       user,
	}
}

func (s *DefaultIncomeService) create(ctx context.Context, user string, income *models.Income) error {
	if err := s.Repo.Create(ctx, income); err != nil {
		return utils.Wrap(utils.KindInternal, err, "failed to create income")
	}
	events.Emit(ctx, s.Events, models.EventIncomeCreated, user, income)
	return nil
}

func (s *DefaultIncomeService) CreateIncome(ctx context.Context, user string, ref IncomeRef, data *models.PaymentConfirmation) (*models.Income, error) {
	income := newIncome(user, ref, data)
	income.Type = models.IncomeUnique
	income.Status = models.IncomeConfirmed
	income.Amount = data.Amount()
	income.TotalAmount = data.TotalAmount
	income.InstallmentNumber = 1
	income.Installments = 1
	income.PaidAt = data.PaymentDate
	if err := s.create(ctx, user, income); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *DefaultIncomeService) CreateIncomes(ctx context.Context, user string, ref IncomeRef, data *models.PaymentConfirmation) (*models.Income, error) {
	installments := data.Installments
	if installments < 1 {
		installments = 1
	}
	total := data.TotalAmount
	if total == 0 {
		total = data.Amount()
	}
	share := total / float64(installments)

	var first *models.Income
	for n := 1; n <= installments; n++ {
		income := newIncome(user, ref, data)
		income.Type = models.IncomeInstallment
		income.Amount = share
		income.TotalAmount = total
		income.InstallmentNumber = n
		income.Installments = installments
		if n == 1 || data.ConfirmInstallments {
			income.Status = models.IncomeConfirmed
			income.PaidAt = data.PaymentDate
		} else {
			income.Status = models.IncomePending
		}
		if err := s.create(ctx, user, income); err != nil {
			return nil, err
		}
		if first == nil {
			first = income
		}
	}
	return first, nil
}

func (s *DefaultIncomeService) PayPendingIncome(ctx context.Context, user, incomeID string, data *models.PaymentConfirmation) (*models.Income, error) {
	income, err := s.Repo.GetByID(ctx, incomeID)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load income %s", incomeID)
	}
	if income == nil {
		return nil, utils.NotFound("income %s not found", incomeID)
	}
	income.Status = models.IncomeConfirmed
	if data.PaymentAmount != nil {
		income.Amount = *data.PaymentAmount
	}
	if data.PaymentMethod != "" {
		income.PaymentMethod = data.PaymentMethod
	}
	income.Commission = data.PaymentCommission
	income.Comment = data.PaymentComment
	income.FiscalNote = data.PaymentFiscalNote
	income.PromotionalCode = data.PromotionalCode
	income.TransactionID = data.TransactionID
	income.BankEntity = data.BankEntity
	paidAt := time.Now()
	if data.PaymentDate != nil {
		paidAt = *data.PaymentDate
	}
	income.PaidAt = &paidAt

	if err := s.Repo.Update(ctx, income); err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to update income %s", incomeID)
	}
	events.Emit(ctx, s.Events, models.EventIncomeUpdated, user, income)
	return income, nil
}
