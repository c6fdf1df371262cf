package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/lendshare/pkg/app"
	"github.com/ghuser/lendshare/pkg/cache"
	"github.com/ghuser/lendshare/pkg/config"
	"github.com/ghuser/lendshare/pkg/database"
	"github.com/ghuser/lendshare/pkg/events"
	"github.com/ghuser/lendshare/pkg/logger"
	"github.com/ghuser/lendshare/pkg/telemetry"
	bookingEvents "github.com/ghuser/lendshare/services/booking/domain/events"
	itemEvents "github.com/ghuser/lendshare/services/item/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := []struct {
		name    string
		handler func(context.Context, *message.Message) error
	}{
		{itemEvents.TopicItemCreated, handleItemCreated(a)},
		{bookingEvents.TopicBookingCreated, handleBookingCreated(a)},
		{bookingEvents.TopicBookingDecided, handleBookingDecided(a)},
	}

	names := make([]string, 0, len(topics))
	for _, t := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, t.name, t.handler)
		if err != nil {
			return err
		}
		names = append(names, t.name)

		// Drain subscriber errors in background so the channel never blocks.
		topic := t.name
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}

	a.Logger.Info("event subscribers registered", "topics", names)
	return nil
}

// handleItemCreated warms the Redis read-model cache so subsequent item reads
// are served from cache. Handlers must be idempotent; the bus retries up to
// 3 times on failure.
func handleItemCreated(a *app.Application) func(context.Context, *message.Message) error {
	itemCache := cache.NewItemCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt itemEvents.ItemCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := itemCache.Set(ctx, &cache.CachedItem{
			ID:          evt.ItemID,
			Name:        evt.Name,
			Description: evt.Description,
			Available:   evt.Available,
			OwnerID:     evt.OwnerID,
			RequestID:   evt.RequestID,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for item.created",
				"item_id", evt.ItemID, "error", err)
		}
		return nil
	}
}

// handleBookingCreated records the new booking in the structured audit log.
func handleBookingCreated(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt bookingEvents.BookingCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		a.Logger.InfoContext(ctx, "booking created",
			"booking_id", evt.BookingID,
			"item_id", evt.ItemID,
			"booker_id", evt.BookerID,
			"start", evt.Start,
			"end", evt.End,
		)
		return nil
	}
}

// handleBookingDecided records the owner's decision in the structured audit log.
func handleBookingDecided(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt bookingEvents.BookingDecidedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		a.Logger.InfoContext(ctx, "booking decided",
			"booking_id", evt.BookingID,
			"item_id", evt.ItemID,
			"booker_id", evt.BookerID,
			"status", evt.Status,
		)
		return nil
	}
}
