package repository

import (
	attentionRepo "queuedesk/database/repository/attention"
	bookingRepo "queuedesk/database/repository/booking"
	clientRepo "queuedesk/database/repository/client"
	commerceRepo "queuedesk/database/repository/commerce"
	featureRepo "queuedesk/database/repository/feature"
	"queuedesk/database/repository/memory"
	notificationRepo "queuedesk/database/repository/notification"
	packRepo "queuedesk/database/repository/pack"
	queueRepo "queuedesk/database/repository/queue"
)

// Re-export the repository interfaces.
type (
	QueueRepository        = queueRepo.QueueRepository
	AttentionRepository    = attentionRepo.AttentionRepository
	AttentionFilter        = attentionRepo.AttentionFilter
	BookingRepository      = bookingRepo.BookingRepository
	BookingFilter          = bookingRepo.BookingFilter
	ClientRepository       = clientRepo.ClientRepository
	UserRepository         = clientRepo.UserRepository
	CommerceRepository     = commerceRepo.CommerceRepository
	PackageRepository      = packRepo.PackageRepository
	IncomeRepository       = packRepo.IncomeRepository
	NotificationRepository = notificationRepo.NotificationRepository
	FeatureRepository      = featureRepo.FeatureRepository
)

var ErrVersionConflict = queueRepo.ErrVersionConflict

// Repositories bundles one implementation of every collection.
type Repositories struct {
	Queues        QueueRepository
	Attentions    AttentionRepository
	Bookings      BookingRepository
	Clients       ClientRepository
	Users         UserRepository
	Commerces     CommerceRepository
	Packages      PackageRepository
	Incomes       IncomeRepository
	Notifications NotificationRepository
	Features      FeatureRepository
}

// NewMongoRepositories requires database.InitDB to have run.
func NewMongoRepositories() *Repositories {
	return &Repositories{
		Queues:        queueRepo.NewMongoQueueRepo(),
		Attentions:    attentionRepo.NewMongoAttentionRepo(),
		Bookings:      bookingRepo.NewMongoBookingRepo(),
		Clients:       clientRepo.NewMongoClientRepo(),
		Users:         clientRepo.NewMongoUserRepo(),
		Commerces:     commerceRepo.NewMongoCommerceRepo(),
		Packages:      packRepo.NewMongoPackageRepo(),
		Incomes:       packRepo.NewMongoIncomeRepo(),
		Notifications: notificationRepo.NewMongoNotificationRepo(),
		Features:      featureRepo.NewMongoFeatureRepo(),
	}
}

func NewMemoryRepositories(store *memory.Store) *Repositories {
	return &Repositories{
		Queues:        store.Queues(),
		Attentions:    store.Attentions(),
		Bookings:      store.Bookings(),
		Clients:       store.Clients(),
		Users:         store.Users(),
		Commerces:     store.Commerces(),
		Packages:      store.Packages(),
		Incomes:       store.Incomes(),
		Notifications: store.Notifications(),
		Features:      store.Features(),
	}
}
