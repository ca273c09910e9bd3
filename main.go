package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"queuedesk/config"
	"queuedesk/cron"
	"queuedesk/database"
	"queuedesk/database/repository"
	"queuedesk/database/repository/memory"
	"queuedesk/handlers"
	"queuedesk/middleware"
	"queuedesk/routes"
	"queuedesk/services/attention"
	"queuedesk/services/batch"
	"queuedesk/services/block"
	"queuedesk/services/booking"
	"queuedesk/services/client"
	"queuedesk/services/documents"
	"queuedesk/services/events"
	"queuedesk/services/feature"
	"queuedesk/services/notification"
	"queuedesk/services/pack"
	"queuedesk/services/queue"
	"queuedesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	if len(os.Args) > 1 && os.Args[1] == "issue-token" {
		if err := issueToken(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	// Storage.
	var (
		repos       *repository.Repositories
		mongoClient *mongo.Client
		cache       *redis.Client
	)
	if cfg.StorageDriver == "memory" {
		logger.Warn("using in-memory storage, data is lost on restart")
		repos = repository.NewMemoryRepositories(memory.NewStore())
	} else {
		database.InitDB()
		mongoClient = database.MongoClient
		cache = utils.GetCacheClient()
		repos = repository.NewMongoRepositories()
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, cfg.StorageDriver, cache, mongoClient, 30*time.Second)

	// Events.
	var publisher events.Publisher = events.LogPublisher{}
	if cfg.RabbitMQURL != "" {
		rabbit := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		defer rabbit.Close()
		publisher = rabbit
	}

	// Documents.
	var docs documents.Store = documents.NoopStore{}
	if cfg.DocumentsBucket != "" {
		docs = documents.NewS3Store(cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.DocumentsBucket)
	}

	// Services.
	features := &feature.DefaultFeatureService{
		Repo:  repos.Features,
		Cache: cache,
		TTL:   time.Duration(cfg.FeatureCacheTTL) * time.Second,
	}
	notifications := &notification.DefaultNotificationService{
		Repo:             repos.Notifications,
		WhatsApp:         notification.NewWhatsAppClient(cfg.WhatsappProvider, cfg.WhatsappProviderURL, cfg.WhatsappProviderKey),
		Email:            notification.NewEmailClient(cfg.EmailProvider, cfg.EmailProviderURL, cfg.EmailProviderKey),
		WhatsappProvider: cfg.WhatsappProvider,
		EmailProvider:    cfg.EmailProvider,
		EmailSource:      cfg.EmailSource,
	}
	clients := &client.DefaultClientService{Repo: repos.Clients, Events: publisher}
	users := &client.DefaultUserService{Repo: repos.Users, Clients: clients, Events: publisher}
	queues := &queue.DefaultQueueService{Repo: repos.Queues, Events: publisher}
	ledger := pack.Ledger{
		Packages: &pack.DefaultPackageService{Repo: repos.Packages, Events: publisher},
		Incomes:  &pack.DefaultIncomeService{Repo: repos.Incomes, Events: publisher},
	}
	runner := batch.Runner{MinSpacing: config.BatchSpacing(), MaxConcurrent: config.BatchConcurrency()}

	attentionService := &attention.DefaultAttentionService{
		Repo:          repos.Attentions,
		Queues:        queues,
		Commerces:     repos.Commerces,
		Users:         users,
		Clients:       clients,
		Ledger:        ledger,
		Features:      features,
		Notifications: notifications,
		Documents:     docs,
		Events:        publisher,
		Runner:        runner,
		BackendURL:    cfg.BackendURL,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:          repos.Bookings,
		Queues:        queues,
		Commerces:     repos.Commerces,
		Users:         users,
		Clients:       clients,
		Attentions:    attentionService,
		Ledger:        ledger,
		Features:      features,
		Notifications: notifications,
		Events:        publisher,
		Runner:        runner,
		BackendURL:    cfg.BackendURL,
	}
	blockService := &block.DefaultBlockService{Queues: repos.Queues, Commerces: repos.Commerces}

	// Scheduled jobs.
	var (
		worker    *asynq.Server
		scheduler *asynq.Scheduler
	)
	if cfg.JobsEnabled {
		worker = cron.InitJobWorker(&cron.Handlers{
			Bookings:   bookingService,
			Attentions: attentionService,
			Timezone:   cfg.JobsTimezone,
		})
		var err error
		if scheduler, err = cron.InitJobScheduler(); err != nil {
			logger.Error("main: failed to start job scheduler", zap.Error(err))
		}
	}

	// HTTP.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		Attention: handlers.NewAttentionHandler(attentionService),
		Booking:   handlers.NewBookingHandler(bookingService),
		Block:     handlers.NewBlockHandler(blockService),
		Health:    handlers.NewHealthHandler(),
	})

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if scheduler != nil {
		scheduler.Shutdown()
	}
	if worker != nil {
		worker.Shutdown()
	}
	stop()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
