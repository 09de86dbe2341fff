package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appauth "frontdesk/internal/app/auth"
	appbookings "frontdesk/internal/app/bookings"
	appguests "frontdesk/internal/app/guests"
	appreports "frontdesk/internal/app/reports"
	approoms "frontdesk/internal/app/rooms"
	"frontdesk/internal/app/uow"
	"frontdesk/internal/infra/broker/kafka"
	"frontdesk/internal/infra/config"
	dbmongo "frontdesk/internal/infra/db/mongo"
	ginserver "frontdesk/internal/infra/http/gin"
	"frontdesk/internal/infra/obs"
	"frontdesk/internal/infra/security"
	"frontdesk/internal/infra/storage/memory"
	"frontdesk/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Health{Checks: app.checks}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	checks   map[string]func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	cleanup := func() {}
	var factory uow.Factory
	checks := map[string]func() error{}

	switch cfg.StorageMode {
	case "mongo":
		client, err := dbmongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, cleanup, err
		}
		if err := client.Ping(ctx); err != nil {
			return application{}, cleanup, err
		}
		factory = dbmongo.NewFactory(client.DB)
		checks["mongo"] = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		cleanup = func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Close(closeCtx)
		}
	default:
		factory = memory.NewFactory()
	}

	var publisher appbookings.Publisher = kafka.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Warn("kafka unavailable, events disabled", "error", err)
		} else {
			publisher = &kafka.EventPublisher{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix, Source: "frontdesk"}
			prev := cleanup
			cleanup = func() {
				_ = producer.Close()
				prev()
			}
		}
	}

	var uploader approoms.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			logger.Warn("s3 unavailable, photo uploads disabled", "error", err)
		} else {
			uploader = client
		}
	}

	authService := appauth.NewService(
		factory,
		security.PasswordHasher{Cost: cfg.BcryptCost},
		security.SessionTokens{},
		memory.NewSessionStore(),
		cfg.SessionTTL,
		logger,
	)
	bookingService := appbookings.NewService(factory, publisher, logger)
	roomService := approoms.NewService(factory, uploader, logger)
	guestService := appguests.NewService(factory, logger)
	reportService := appreports.NewService(factory, logger)

	handlers := ginserver.Handlers{
		Logger:  logger,
		Auth:    ginserver.AuthHandler{Service: authService},
		Booking: ginserver.BookingHandler{Service: bookingService},
		Room:    ginserver.RoomHandler{Service: roomService},
		Guest:   ginserver.GuestHandler{Service: guestService},
		Public:  ginserver.PublicHandler{Bookings: bookingService},
		Report:  ginserver.ReportHandler{Service: reportService},
		AuthMiddleware: ginserver.AuthMiddleware{
			Service: authService,
			Logger:  logger,
		}.Handle,
	}

	return application{handlers: handlers, checks: checks}, cleanup, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
