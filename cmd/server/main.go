package main

import (
	"slotdesk/internal/booking/handler"
	"slotdesk/internal/booking/service"
	"slotdesk/internal/booking/validator"
	"slotdesk/internal/sheets"
	"slotdesk/pkg/app"
	"slotdesk/pkg/config"
	"slotdesk/pkg/events"
	"slotdesk/pkg/middleware"

	"github.com/redis/go-redis/v9"
)

const ServiceName = "slotdesk"

func main() {
	cfg := config.Load(ServiceName)

	client := sheets.NewClient(cfg.SheetBaseURL, cfg.SheetID, cfg.SheetAPIToken, cfg.StoreTimeout)
	store := sheets.NewStore(client, cfg.SlotsSheet, cfg.SignupsSheet)

	serverApp := app.NewApplication(cfg)

	var publisher service.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create event producer", "error", err)
		}
		publisher = producer
		serverApp.AddCloser(producer.Close)
		cfg.Log.Info("Booking event publishing enabled", "topic", cfg.KafkaTopic)
	}

	var stats middleware.StatsRecorder
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		stats = middleware.NewRedisStatsRecorder(rdb)
		serverApp.AddCloser(rdb.Close)
		cfg.Log.Info("Rate-limit stats recording enabled", "redis_addr", cfg.RedisAddr)
	}

	bookingValidator := validator.NewBookingValidator(cfg)
	throttle := service.NewThrottle(cfg.ConcurrencyLimit)
	cache := service.NewListingCache(cfg.CacheTTL)
	bookingService := service.NewBookingService(store, bookingValidator, throttle, cache, publisher, cfg)

	cfg.Log.Info("Starting slot booking service")
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(store, cfg.Log),
		stats,
	)
	serverApp.Run()
}
