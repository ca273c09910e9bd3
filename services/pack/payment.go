package pack

import (
	"context"
	"strings"

	"queuedesk/models"
)

// Ledger groups the package and income services used by payment capture.
type Ledger struct {
	Packages PackageService
	Incomes  IncomeService
}

// ResolvePackage links a payment to a package: an explicit packageId gets
// the procedure added, a first session of a multi-session purchase opens a
// CONFIRMED package. It returns nil when neither applies.
func (l Ledger) ResolvePackage(ctx context.Context, user string, ref IncomeRef, servicesID []string, details []models.ServiceDetail, data *models.PaymentConfirmation) (*models.Package, error) {
	if data == nil {
		return nil, nil
	}
	var bookings, attentions []string
	if ref.AttentionID != "" {
		attentions = []string{ref.AttentionID}
	} else if ref.BookingID != "" {
		bookings = []string{ref.BookingID}
	}

	if data.PackageID != "" {
		return l.Packages.AddProcedure(ctx, user, data.PackageID, bookings, attentions)
	}
	if data.ProcedureNumber == 1 && data.ProceduresTotalNumber > 1 {
		return l.Packages.CreatePackage(ctx, user, NewPackage{
			CommerceID:       ref.CommerceID,
			ClientID:         ref.ClientID,
			FirstBookingID:   firstOf(bookings),
			FirstAttentionID: firstOf(attentions),
			ProceduresAmount: data.ProceduresTotalNumber,
			Name:             PackageName(details),
			ServicesID:       servicesID,
			BookingsID:       bookings,
			AttentionsID:     attentions,
			Status:           models.PackageConfirmed,
		})
	}
	return nil, nil
}

// RecordIncome registers the money side of a payment: a pending income is
// paid, several installments are split, and otherwise one UNIQUE income is
// created unless the package was already paid. A created income also pays
// the package.
func (l Ledger) RecordIncome(ctx context.Context, user string, ref IncomeRef, pack *models.Package, data *models.PaymentConfirmation) (*models.Income, error) {
	if data == nil {
		return nil, nil
	}
	if pack != nil {
		ref.PackageID = pack.ID
	}

	var (
		income *models.Income
		err    error
	)
	switch {
	case data.PendingPaymentID != "":
		income, err = l.Incomes.PayPendingIncome(ctx, user, data.PendingPaymentID, data)
	case data.Installments > 1:
		income, err = l.Incomes.CreateIncomes(ctx, user, ref, data)
	case pack == nil || !pack.Paid:
		income, err = l.Incomes.CreateIncome(ctx, user, ref, data)
	}
	if err != nil {
		return nil, err
	}
	if income != nil && pack != nil {
		if _, err := l.Packages.PayPackage(ctx, user, pack.ID, []string{income.ID}); err != nil {
			return nil, err
		}
	}
	return income, nil
}

// EnsureRequestedPackage opens a REQUESTED package when a visit books a
// single multi-session service the client holds no package for.
func (l Ledger) EnsureRequestedPackage(ctx context.Context, ref IncomeRef, servicesID []string, service *models.Service) (*models.Package, error) {
	if len(servicesID) != 1 || service == nil || service.Procedures() <= 1 || ref.ClientID == "" {
		return nil, nil
	}
	packs, err := l.Packages.GetPackagesByClient(ctx, ref.CommerceID, ref.ClientID)
	if err != nil {
		return nil, err
	}
	for _, p := range packs {
		if p.HasService(servicesID[0]) {
			return nil, nil
		}
	}
	in := NewPackage{
		CommerceID:       ref.CommerceID,
		ClientID:         ref.ClientID,
		ProceduresAmount: service.Procedures(),
		Name:             strings.ToUpper(service.Tag),
		ServicesID:       servicesID,
		Status:           models.PackageRequested,
	}
	if ref.AttentionID != "" {
		in.FirstAttentionID = ref.AttentionID
		in.AttentionsID = []string{ref.AttentionID}
	} else {
		in.FirstBookingID = ref.BookingID
		in.BookingsID = []string{ref.BookingID}
	}
	return l.Packages.CreatePackage(ctx, "ett", in)
}

// DetachAll removes a booking or attention from every package of a client.
func (l Ledger) DetachAll(ctx context.Context, user, commerceID, clientID, bookingID, attentionID string) error {
	packs, err := l.Packages.GetPackagesByClient(ctx, commerceID, clientID)
	if err != nil {
		return err
	}
	for _, p := range packs {
		if _, err := l.Packages.RemoveProcedure(ctx, user, p.ID, bookingID, attentionID); err != nil {
			return err
		}
	}
	return nil
}

// PackageName joins service tags with "/" in upper case.
func PackageName(details []models.ServiceDetail) string {
	tags := make([]string, 0, len(details))
	for _, d := range details {
		if d.Tag != "" {
			tags = append(tags, d.Tag)
		}
	}
	return strings.ToUpper(strings.Join(tags, "/"))
}

func firstOf(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
