package main

import (
	"context"

	adminhandler "hotelinfinity/internal/admin/handler"
	"hotelinfinity/internal/admin/auth"
	adminservice "hotelinfinity/internal/admin/service"
	adminvalidator "hotelinfinity/internal/admin/validator"
	"hotelinfinity/internal/events"
	healthhandler "hotelinfinity/internal/health/handler"
	hotelhandler "hotelinfinity/internal/hotel/handler"
	hotelservice "hotelinfinity/internal/hotel/service"
	hotelvalidator "hotelinfinity/internal/hotel/validator"
	"hotelinfinity/internal/session"
	"hotelinfinity/internal/store"
	"hotelinfinity/pkg/app"
	"hotelinfinity/pkg/config"
	"hotelinfinity/pkg/contracts"
	"hotelinfinity/pkg/kafka"
	kafka_config "hotelinfinity/pkg/kafka/config"
	kafkamiddleware "hotelinfinity/pkg/kafka/middleware"
	"hotelinfinity/pkg/metrics"

	"github.com/julienschmidt/httprouter"
)

const serviceName = "hotel-infinity"

func main() {
	cfg := config.Load(serviceName)
	cfg.Log.Info("Starting Hotel Infinity service")

	m := metrics.New()

	sessions, err := session.NewFromConfig(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to open session store", "backend", cfg.SessionBackend, "error", err)
	}

	publisher := initPublisher(cfg, m)
	st := initStore(cfg, sessions, publisher, m)

	application := app.NewApplication(cfg, m)
	application.OnShutdown(func(context.Context) {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
		if err := sessions.Close(); err != nil {
			cfg.Log.Error("Failed to close session store", "error", err)
		}
		cfg.GracefulShutdown()
	})

	application.SetApp(
		healthhandler.NewHealthHandler(sessions, cfg.Log),
		hotelRoutes(cfg, st, application),
		adminRoutes(cfg, st, application),
	)
	application.Run()
}

func initPublisher(cfg *config.Config, m *metrics.Metrics) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled; domain events are not published")
		return events.Nop{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Kafka event publisher initialized", "topic", cfg.KafkaTopic)
	return events.NewKafkaPublisher(producer, serviceName, kafkaCfg.PublishTimeout, m)
}

func initStore(cfg *config.Config, sessions session.Store, publisher events.Publisher, m *metrics.Metrics) *store.Store {
	admin, err := store.NewAdminAccount(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, 0)
	if err != nil {
		cfg.Log.Fatal("Failed to prepare admin account", "error", err)
	}

	st := store.New(admin,
		store.WithSessionStore(sessions),
		store.WithSessionTimeout(cfg.SessionTimeout),
		store.WithLogger(cfg.Log),
		store.WithPublisher(publisher),
		store.WithMetrics(m),
	)
	st.Initialize(context.Background())
	return st
}

func hotelRoutes(cfg *config.Config, st *store.Store, application *app.Application) contracts.Handler {
	svc := hotelservice.NewHotelService(st, hotelvalidator.NewHotelValidator(cfg.Log), cfg.Log)
	h := hotelhandler.NewHotelHandler(svc, cfg.Log)

	cfg.Log.Info("Hotel service initialized")
	return contracts.HandlerFunc(func(router *httprouter.Router) {
		h.RegisterRoutes(router, application.Idempotent())
	})
}

func adminRoutes(cfg *config.Config, st *store.Store, application *app.Application) contracts.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if cfg.JWTSecret == config.DefaultJWTSecret {
		cfg.Log.Warn("JWT_SECRET is using the default value; set it before exposing the admin API")
	}

	svc := adminservice.NewAdminService(st, tokens, adminvalidator.NewAdminValidator(cfg.Log), cfg.Log)
	h := adminhandler.NewAdminHandler(svc, cfg.Log)
	requireAdmin := auth.RequireAdmin(tokens, svc, cfg.Log)

	cfg.Log.Info("Admin service initialized")
	return contracts.HandlerFunc(func(router *httprouter.Router) {
		h.RegisterRoutes(router, requireAdmin, application.RateLimited())
	})
}
