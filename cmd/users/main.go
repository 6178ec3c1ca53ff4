package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ordersuite/order-system/internal/api"
	"github.com/ordersuite/order-system/internal/api/handler"
	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/ports"
	"github.com/ordersuite/order-system/internal/core/service"
	"github.com/ordersuite/order-system/internal/infrastructure/config"
	"github.com/ordersuite/order-system/internal/storage/memory"
	mongostore "github.com/ordersuite/order-system/internal/storage/mongo"
	"github.com/ordersuite/order-system/pkg/logger"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadUsers(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "users",
		Pretty:  cfg.Env == "development",
	})

	codec, err := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("credential codec init failed")
	}

	var (
		repo    ports.UserRepository
		mongoDB *mongodriver.Database
	)
	switch cfg.Store {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		userRepo := mongostore.NewUserRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		repo = userRepo
		mongoDB = db
	default:
		repo = memory.NewUserRepository()
	}

	svc := service.NewUserService(repo, codec, log)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := svc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			log.Fatal().Err(err).Msg("admin bootstrap failed")
		}
	}

	ready := handler.NewReadinessHandler(mongoDB, nil)
	e := api.NewUsersRouter(svc, codec, ready, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("users service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("users service stopped")
}
