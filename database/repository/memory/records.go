package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	clientRepo "queuedesk/database/repository/client"
	commerceRepo "queuedesk/database/repository/commerce"
	featureRepo "queuedesk/database/repository/feature"
	notificationRepo "queuedesk/database/repository/notification"
	packRepo "queuedesk/database/repository/pack"
	"queuedesk/models"
)

var (
	_ clientRepo.ClientRepository             = (*ClientRepo)(nil)
	_ clientRepo.UserRepository               = (*UserRepo)(nil)
	_ commerceRepo.CommerceRepository         = (*CommerceRepo)(nil)
	_ packRepo.PackageRepository              = (*PackageRepo)(nil)
	_ packRepo.IncomeRepository               = (*IncomeRepo)(nil)
	_ notificationRepo.NotificationRepository = (*NotificationRepo)(nil)
	_ featureRepo.FeatureRepository           = (*FeatureRepo)(nil)
)

type ClientRepo struct{ s *Store }

func (r *ClientRepo) GetByID(_ context.Context, id string) (*models.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) FindByContact(_ context.Context, commerceID, email, idNumber string) (*models.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if email == "" && idNumber == "" {
		return nil, nil
	}
	for _, c := range r.s.clients {
		if c.CommerceID != commerceID {
			continue
		}
		if (email != "" && strings.EqualFold(c.Email, email)) || (idNumber != "" && c.IDNumber == idNumber) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) Create(_ context.Context, client *models.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clients[client.ID] = *client
	return nil
}

func (r *ClientRepo) Update(_ context.Context, client *models.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[client.ID]; !ok {
		return fmt.Errorf("client with id %s not found", client.ID)
	}
	r.s.clients[client.ID] = *client
	return nil
}

type UserRepo struct{ s *Store }

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return fmt.Errorf("user with id %s not found", user.ID)
	}
	r.s.users[user.ID] = *user
	return nil
}

type CommerceRepo struct{ s *Store }

func (r *CommerceRepo) GetCommerce(_ context.Context, id string) (*models.Commerce, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.commerces[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CommerceRepo) GetCollaborator(_ context.Context, id string) (*models.Collaborator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.collaborators[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CommerceRepo) GetCollaboratorBot(_ context.Context, commerceID string) (*models.Collaborator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.collaborators {
		if c.CommerceID == commerceID && c.Bot {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CommerceRepo) GetModule(_ context.Context, id string) (*models.Module, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.modules[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *CommerceRepo) GetServices(_ context.Context, ids []string) ([]models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Service
	for _, id := range ids {
		if svc, ok := r.s.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

type PackageRepo struct{ s *Store }

func (r *PackageRepo) GetByID(_ context.Context, id string) (*models.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.packages[id]
	if !ok {
		return nil, nil
	}
	return clonePackage(p), nil
}

func (r *PackageRepo) FindByClient(_ context.Context, commerceID, clientID string) ([]models.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Package
	for _, p := range r.s.packages {
		if p.CommerceID == commerceID && p.ClientID == clientID {
			out = append(out, *clonePackage(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *PackageRepo) Create(_ context.Context, pack *models.Package) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.packages[pack.ID] = *clonePackage(*pack)
	return nil
}

func (r *PackageRepo) Update(_ context.Context, pack *models.Package) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.packages[pack.ID]; !ok {
		return fmt.Errorf("package with id %s not found", pack.ID)
	}
	r.s.packages[pack.ID] = *clonePackage(*pack)
	return nil
}

// clonePackage copies the id slices so callers never share backing arrays
// with the stored record.
func clonePackage(p models.Package) *models.Package {
	p.ServicesID = append([]string(nil), p.ServicesID...)
	p.BookingsID = append([]string(nil), p.BookingsID...)
	p.AttentionsID = append([]string(nil), p.AttentionsID...)
	p.IncomesID = append([]string(nil), p.IncomesID...)
	return &p
}

type IncomeRepo struct{ s *Store }

func (r *IncomeRepo) GetByID(_ context.Context, id string) (*models.Income, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.incomes[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (r *IncomeRepo) Create(_ context.Context, income *models.Income) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.incomes[income.ID] = *income
	return nil
}

func (r *IncomeRepo) Update(_ context.Context, income *models.Income) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.incomes[income.ID]; !ok {
		return fmt.Errorf("income with id %s not found", income.ID)
	}
	r.s.incomes[income.ID] = *income
	return nil
}

// IncomeList returns every stored income ordered by installment.
func (s *Store) IncomeList() []models.Income {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Income, 0, len(s.incomes))
	for _, i := range s.incomes {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstallmentNumber < out[j].InstallmentNumber })
	return out
}

type NotificationRepo struct{ s *Store }

func (r *NotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

type FeatureRepo struct{ s *Store }

func (r *FeatureRepo) GetByName(_ context.Context, commerceID, name string) (*models.FeatureToggle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.toggles[commerceID+"/"+name]
	if !ok {
		return nil, nil
	}
	return &t, nil
}
