package attention

import (
	"context"
	"time"

	"queuedesk/models"
	"queuedesk/services/pack"
	"queuedesk/utils"
)

// AttentionPaymentConfirm links the ticket to a package and, when the
// commerce captures payments, records the income.
func (s *DefaultAttentionService) AttentionPaymentConfirm(ctx context.Context, user, id string, data *models.PaymentConfirmation) (*models.Attention, error) {
	a, err := s.GetAttentionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var result *models.Attention
	err = s.Queues.Serialize(a.QueueID, func() error {
		a, err := s.GetAttentionByID(ctx, id)
		if err != nil {
			return err
		}
		ref := pack.IncomeRef{
			CommerceID:  a.CommerceID,
			BookingID:   a.BookingID,
			AttentionID: a.ID,
			ClientID:    a.ClientID,
		}
		p, err := s.Ledger.ResolvePackage(ctx, user, ref, a.ServicesID, a.ServicesDetails, data)
		if err != nil {
			return err
		}
		if p != nil {
			a.PackageID = p.ID
		}

		if s.Features.IsActive(ctx, a.CommerceID, models.ToggleAttentionConfirmPayment) {
			if err := validatePayment(data, true); err != nil {
				return err
			}
			now := time.Now()
			data.User = firstNonEmpty(user, SystemUser)
			a.Paid = true
			a.PaidAt = &now
			a.PaymentConfirmationData = data
			a.Confirmed = true
			a.ConfirmedAt = &now
			a.ConfirmedBy = user
			if _, err := s.Ledger.RecordIncome(ctx, user, ref, p, data); err != nil {
				return err
			}
		}
		result, err = s.save(ctx, user, a)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validatePayment rejects captures that cannot back an income.
func validatePayment(data *models.PaymentConfirmation, requireAmount bool) error {
	switch {
	case data == nil:
		return utils.Internal("payment data is required to confirm the payment")
	case data.ExplicitlyUnpaid():
		return utils.Internal("payment is marked as unpaid")
	case data.PaymentDate == nil:
		return utils.Internal("payment date is required to confirm the payment")
	case requireAmount && (data.PaymentAmount == nil || *data.PaymentAmount < 0):
		return utils.Internal("a non-negative payment amount is required to confirm the payment")
	}
	return nil
}
