package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gigstage/gigstage/internal/adapter/handler"
	"github.com/gigstage/gigstage/internal/adapter/repository/postgres"
	"github.com/gigstage/gigstage/internal/config"
	"github.com/gigstage/gigstage/internal/core/services"
	"github.com/gigstage/gigstage/internal/platform/database"
	"github.com/gigstage/gigstage/internal/platform/mq"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "api").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	db, err := database.NewPostgresDB(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	cache := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer cache.Close()
	if err := cache.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	pub, err := mq.NewPublisher(cfg.AMQPURL, cfg.MQExchange)
	if err != nil {
		log.Fatal().Err(err).Msg("connect rabbitmq")
	}
	defer pub.Close()

	userRepo := postgres.NewUserRepository(db)
	musicianRepo := postgres.NewMusicianRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	roleSvc := services.NewRoleService(userRepo, musicianRepo, venueRepo, log)
	userSvc := services.NewUserService(userRepo, musicianRepo, venueRepo, roleSvc, log)
	eventSvc := services.NewEventService(eventRepo, venueRepo, cache, log)
	bookingSvc := services.NewBookingService(
		bookingRepo, eventRepo, musicianRepo, venueRepo, notificationRepo,
		cache, pub, log,
		time.Duration(cfg.InviteTTLHours)*time.Hour,
	)
	inboxSvc := services.NewInboxService(notificationRepo, messageRepo, bookingRepo, pub, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go bookingSvc.RunInviteExpiry(ctx)

	router := handler.NewRouter(
		handler.NewUserHandler(userSvc),
		handler.NewBookingHandler(bookingSvc),
		handler.NewEventHandler(eventSvc),
		handler.NewInboxHandler(inboxSvc),
	)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}
