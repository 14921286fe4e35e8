package cmd

import (
	"context"
	"fmt"
	"time"

	"parlay/config"
	"parlay/database"
	"parlay/events"
	"parlay/oddsapi"
	"parlay/ratelimit"
	"parlay/repository"
	"parlay/server"
	"parlay/service"
	"parlay/weekclock"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting parlay server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()
	registerEventLogging(eventBus)

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	bettingService := service.NewBettingService(uowFactory)
	userService := service.NewUserService(uowFactory)
	statsService := service.NewStatsService(uowFactory)
	inviteService := service.NewInviteService(uowFactory)

	// Pick the rate limiter backend: Redis when configured, in-memory
	// otherwise
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		log.WithField("addr", cfg.RedisAddr).Info("Using Redis rate limiter")
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		limiter = ratelimit.NewRedisLimiter(client, cfg.RateLimit, cfg.RateLimitWindow)
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(cfg.RateLimit, cfg.RateLimitWindow)
		memLimiter.StartSweeping(ctx, cfg.RateLimitWindow)
		limiter = memLimiter
	}

	// Initialize odds provider client
	oddsClient := oddsapi.NewClient(cfg.OddsAPIKey)

	// Initialize and run the HTTP server
	srv := server.New(cfg, bettingService, userService, statsService, inviteService, oddsClient, limiter)

	log.WithField("environment", cfg.Environment).Info("Server is running")
	err = srv.Run(ctx)

	// Cleanup resources
	log.Info("Closing database connection...")
	db.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return err
}

// registerEventLogging subscribes audit log handlers to domain events
func registerEventLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBetPlaced, func(ctx context.Context, event events.Event) {
		e := event.(events.BetPlacedEvent)
		log.WithFields(log.Fields{
			"betId":      e.BetID,
			"userId":     e.UserID,
			"week":       e.WeekNumber,
			"oddsLocked": weekclock.FormatOdds(e.OddsLocked),
			"kingLock":   e.IsKingLock,
		}).Info("Bet placed")
	})

	bus.Subscribe(events.EventTypeBetResolved, func(ctx context.Context, event events.Event) {
		e := event.(events.BetResolvedEvent)
		fields := log.Fields{
			"betId":  e.BetID,
			"userId": e.UserID,
			"status": e.Status,
		}
		if e.PointsAwarded != nil {
			fields["points"] = weekclock.FormatPoints(*e.PointsAwarded)
		}
		log.WithFields(fields).Info("Bet resolved")
	})

	bus.Subscribe(events.EventTypeBetDeleted, func(ctx context.Context, event events.Event) {
		e := event.(events.BetDeletedEvent)
		log.WithFields(log.Fields{
			"betId":  e.BetID,
			"userId": e.UserID,
		}).Info("Bet deleted")
	})

	bus.Subscribe(events.EventTypeUserRegistered, func(ctx context.Context, event events.Event) {
		e := event.(events.UserRegisteredEvent)
		log.WithFields(log.Fields{
			"userId":     e.UserID,
			"username":   e.Username,
			"inviteCode": e.InviteCode,
		}).Info("User registered")
	})

	bus.Subscribe(events.EventTypeInviteCodeCreated, func(ctx context.Context, event events.Event) {
		e := event.(events.InviteCodeCreatedEvent)
		log.WithField("code", e.Code).Info("Invite code created")
	})
}
