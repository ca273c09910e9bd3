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

// NewPackage describes a package to open for a client.
type NewPackage struct {
	CommerceID       string
	ClientID         string
	FirstBookingID   string
	FirstAttentionID string
	ProceduresAmount int
	Name             string
	ServicesID       []string
	BookingsID       []string
	AttentionsID     []string
	Status           models.PackageStatus
}

type PackageService interface {
	GetPackageByID(ctx context.Context, id string) (*models.Package, error)
	GetPackagesByClient(ctx context.Context, commerceID, clientID string) ([]models.Package, error)
	CreatePackage(ctx context.Context, user string, in NewPackage) (*models.Package, error)
	AddProcedure(ctx context.Context, user, packageID string, bookingIDs, attentionIDs []string) (*models.Package, error)
	RemoveProcedure(ctx context.Context, user, packageID, bookingID, attentionID string) (*models.Package, error)
	PayPackage(ctx context.Context, user, packageID string, incomeIDs []string) (*models.Package, error)
}

type DefaultPackageService struct {
	Repo   repository.PackageRepository
	Events events.Publisher
}

func (s *DefaultPackageService) GetPackageByID(ctx context.Context, id string) (*models.Package, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load package %s", id)
	}
	if p == nil {
		return nil, utils.NotFound("package %s not found", id)
	}
	return p, nil
}

func (s *DefaultPackageService) GetPackagesByClient(ctx context.Context, commerceID, clientID string) ([]models.Package, error) {
	if clientID == "" {
		return nil, nil
	}
	packs, err := s.Repo.FindByClient(ctx, commerceID, clientID)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load packages of client %s", clientID)
	}
	return packs, nil
}

func (s *DefaultPackageService) CreatePackage(ctx context.Context, user string, in NewPackage) (*models.Package, error) {
	status := in.Status
	if status == "" {
		status = models.PackageRequested
	}
	p := &models.Package{
		ID:               uuid.New().String(),
		CommerceID:       in.CommerceID,
		ClientID:         in.ClientID,
		FirstBookingID:   in.FirstBookingID,
		FirstAttentionID: in.FirstAttentionID,
		ProceduresAmount: in.ProceduresAmount,
		Name:             in.Name,
		ServicesID:       in.ServicesID,
		BookingsID:       nonNil(in.BookingsID),
		AttentionsID:     nonNil(in.AttentionsID),
		IncomesID:        []string{},
		Type:             models.PackageTypeStandard,
		Status:           status,
		CreatedAt:        time.Now(),
		CreatedBy:        user,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to create package")
	}
	events.Emit(ctx, s.Events, models.EventPackageCreated, user, p)
	return p, nil
}

func (s *DefaultPackageService) AddProcedure(ctx context.Context, user, packageID string, bookingIDs, attentionIDs []string) (*models.Package, error) {
	p, err := s.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	p.BookingsID = appendMissing(p.BookingsID, bookingIDs...)
	p.AttentionsID = appendMissing(p.AttentionsID, attentionIDs...)
	if p.Status == models.PackageRequested || p.Status == models.PackageConfirmed {
		p.Status = models.PackageActive
	}
	if p.ProceduresAmount > 0 && len(p.AttentionsID) >= p.ProceduresAmount {
		p.Status = models.PackageCompleted
	}
	return s.save(ctx, user, p)
}

func (s *DefaultPackageService) RemoveProcedure(ctx context.Context, user, packageID, bookingID, attentionID string) (*models.Package, error) {
	p, err := s.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	p.BookingsID = without(p.BookingsID, bookingID)
	p.AttentionsID = without(p.AttentionsID, attentionID)
	if p.Status == models.PackageCompleted && len(p.AttentionsID) < p.ProceduresAmount {
		p.Status = models.PackageActive
	}
	return s.save(ctx, user, p)
}

func (s *DefaultPackageService) PayPackage(ctx context.Context, user, packageID string, incomeIDs []string) (*models.Package, error) {
	p, err := s.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p.IncomesID = appendMissing(p.IncomesID, incomeIDs...)
	p.Paid = true
	p.PaidAt = &now
	if p.Status == models.PackageRequested {
		p.Status = models.PackageConfirmed
	}
	return s.save(ctx, user, p)
}

func (s *DefaultPackageService) save(ctx context.Context, user string, p *models.Package) (*models.Package, error) {
	p.UpdatedBy = user
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to update package %s", p.ID)
	}
	events.Emit(ctx, s.Events, models.EventPackageUpdated, user, p)
	return p, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func appendMissing(ids []string, add ...string) []string {
	for _, id := range add {
		if id == "" {
			continue
		}
		found := false
		for _, existing := range ids {
			if existing == id {
				found = true
				break
			}
		}
		if !found {
			ids = append(ids, id)
		}
	}
	return nonNil(ids)
}

func without(ids []string, id string) []string {
	if id == "" {
		return ids
	}
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
