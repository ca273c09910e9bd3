// Package memory keeps every repository in process memory. It backs local
// runs with STORAGE_DRIVER=memory and doubles as the fake store in tests.
package memory

import (
	"sync"

	"queuedesk/models"
)

// Store holds all collections behind one lock.
type Store struct {
	mu            sync.RWMutex
	queues        map[string]models.Queue
	attentions    map[string]models.Attention
	bookings      map[string]models.Booking
	clients       map[string]models.Client
	users         map[string]models.User
	commerces     map[string]models.Commerce
	collaborators map[string]models.Collaborator
	modules       map[string]models.Module
	services      map[string]models.Service
	packages      map[string]models.Package
	incomes       map[string]models.Income
	notifications []models.Notification
	toggles       map[string]models.FeatureToggle
}

func NewStore() *Store {
	return &Store{
		queues:        make(map[string]models.Queue),
		attentions:    make(map[string]models.Attention),
		bookings:      make(map[string]models.Booking),
		clients:       make(map[string]models.Client),
		users:         make(map[string]models.User),
		commerces:     make(map[string]models.Commerce),
		collaborators: make(map[string]models.Collaborator),
		modules:       make(map[string]models.Module),
		services:      make(map[string]models.Service),
		packages:      make(map[string]models.Package),
		incomes:       make(map[string]models.Income),
		toggles:       make(map[string]models.FeatureToggle),
	}
}

func (s *Store) Queues() *QueueRepo               { return &QueueRepo{s} }
func (s *Store) Attentions() *AttentionRepo       { return &AttentionRepo{s} }
func (s *Store) Bookings() *BookingRepo           { return &BookingRepo{s} }
func (s *Store) Clients() *ClientRepo             { return &ClientRepo{s} }
func (s *Store) Users() *UserRepo                 { return &UserRepo{s} }
func (s *Store) Commerces() *CommerceRepo         { return &CommerceRepo{s} }
func (s *Store) Packages() *PackageRepo           { return &PackageRepo{s} }
func (s *Store) Incomes() *IncomeRepo             { return &IncomeRepo{s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s} }
func (s *Store) Features() *FeatureRepo           { return &FeatureRepo{s} }

// Seeding helpers for records this service only reads.

func (s *Store) PutCommerce(c models.Commerce) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commerces[c.ID] = c
}

func (s *Store) PutCollaborator(c models.Collaborator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collaborators[c.ID] = c
}

func (s *Store) PutModule(m models.Module) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules[m.ID] = m
}

func (s *Store) PutService(svc models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *Store) PutToggle(t models.FeatureToggle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggles[t.CommerceID+"/"+t.Name] = t
}

// NotificationsSent returns a copy of every recorded notification.
func (s *Store) NotificationsSent() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}
