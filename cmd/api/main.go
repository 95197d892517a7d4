// Command api runs the mentorship backend HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mentorhub/mentorship-backend/config"
	"github.com/mentorhub/mentorship-backend/internal/application/command"
	"github.com/mentorhub/mentorship-backend/internal/application/eventhandler"
	"github.com/mentorhub/mentorship-backend/internal/application/query"
	"github.com/mentorhub/mentorship-backend/internal/infrastructure/messaging"
	"github.com/mentorhub/mentorship-backend/internal/infrastructure/persistence/postgres"
	"github.com/mentorhub/mentorship-backend/internal/infrastructure/persistence/redis"
	"github.com/mentorhub/mentorship-backend/internal/infrastructure/service"
	httpapi "github.com/mentorhub/mentorship-backend/internal/interface/http"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

const startupTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.App.Debug,
	})
	log.Info("starting",
		logger.String("app", cfg.App.Name),
		logger.String("version", cfg.App.Version),
		logger.String("environment", string(cfg.App.Environment)),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Postgres
	conn, err := connectPostgres(startCtx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer conn.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.NewMigrator(conn).Migrate(startCtx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations applied")
	}

	// Redis (optional; without it the API runs minus real-time delivery)
	var redisClient *goredis.Client
	if !cfg.Redis.Disabled {
		redisClient, err = connectRedis(startCtx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
	} else {
		log.Warn("redis disabled, real-time delivery is off")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(conn)
	mentorshipRepo := postgres.NewMentorshipRepository(conn)
	conversationRepo := postgres.NewConversationRepository(conn)
	notificationRepo := postgres.NewNotificationRepository(conn)
	gamificationRepo := postgres.NewGamificationRepository(conn)

	// Event bus with push fan-out
	bus := messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{
		AsyncMode:      cfg.EventBus.AsyncMode,
		WorkerPoolSize: cfg.EventBus.WorkerPoolSize,
		EnableMetrics:  cfg.EventBus.EnableMetrics,
		Logger:         log,
	})
	defer func() { _ = bus.Close() }()

	if redisClient != nil {
		pusher := redis.NewPubSubPusher(redisClient, log)
		fanout := eventhandler.NewPushFanout(pusher, log)
		if err := fanout.Register(bus); err != nil {
			return fmt.Errorf("failed to register push fan-out: %w", err)
		}
	}

	// Services
	ids := service.NewIDGenerator()
	gamificationSvc := service.NewGamificationService(gamificationRepo, ids, bus, log)

	// Application handlers
	deps := httpapi.Dependencies{
		CreateRequest:        command.NewCreateRequestHandler(userRepo, mentorshipRepo, notificationRepo, ids, bus, log),
		RespondToRequest:     command.NewRespondToRequestHandler(userRepo, mentorshipRepo, mentorshipRepo, notificationRepo, gamificationSvc, ids, bus, log),
		SendMessage:          command.NewSendMessageHandler(conversationRepo, ids, bus, log),
		RegisterUser:         command.NewRegisterUserHandler(userRepo, ids, log),
		MarkNotificationRead: command.NewMarkNotificationReadHandler(notificationRepo),

		GetRequestStatus:  query.NewGetRequestStatusHandler(mentorshipRepo),
		ListRequests:      query.NewListRequestsHandler(mentorshipRepo, userRepo),
		ListConversations: query.NewListConversationsHandler(conversationRepo, userRepo),
		ListMessages:      query.NewListMessagesHandler(conversationRepo, userRepo),
		ListNotifications: query.NewListNotificationsHandler(notificationRepo),
		GetPoints:         query.NewGetPointsHandler(userRepo, gamificationRepo),

		Database: conn,
		Logger:   log,
	}
	if redisClient != nil {
		deps.Redis = redisHealth{client: redisClient}
	}

	server := httpapi.NewServer(httpapi.Config{
		Host:               cfg.HTTP.Host,
		Port:               cfg.HTTP.Port,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:     1 << 20,
		EnableCORS:         cfg.HTTP.EnableCORS,
		AllowedOrigins:     cfg.HTTP.AllowedOrigins,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
		JWTSecret:          cfg.Auth.JWTSecret,
	}, deps)

	errCh := server.StartAsync()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info("stopped")
	return nil
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*postgres.Connection, error) {
	if cfg.Database.URL != "" {
		return postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	}

	// Local development fallback
	pgCfg := postgres.DefaultConfig()
	pgCfg.Host = "localhost"
	return postgres.NewConnection(ctx, pgCfg)
}

func connectRedis(ctx context.Context, cfg *config.Config) (*goredis.Client, error) {
	if cfg.Redis.URL != "" {
		return redis.NewClientFromURL(ctx, cfg.Redis.URL)
	}

	return redis.NewClient(ctx, redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   3,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
}

// redisHealth adapts *redis.Client to the readiness probe contract.
type redisHealth struct {
	client *goredis.Client
}

func (h redisHealth) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
