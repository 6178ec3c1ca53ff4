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
	"github.com/ordersuite/order-system/internal/events"
	"github.com/ordersuite/order-system/internal/infrastructure/config"
	"github.com/ordersuite/order-system/internal/storage/memory"
	mongostore "github.com/ordersuite/order-system/internal/storage/mongo"
	"github.com/ordersuite/order-system/pkg/logger"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadOrders(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "orders",
		Pretty:  cfg.Env == "development",
	})

	codec, err := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("credential codec init failed")
	}

	var (
		repo    ports.OrderRepository
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
		orderRepo := mongostore.NewOrderRepository(db)
		if err := orderRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		repo = orderRepo
		mongoDB = db
	default:
		repo = memory.NewOrderRepository()
	}

	dispatcher := events.NewDispatcher(cfg.EventWorkers, events.NewLogSink(log), log)
	dispatcher.Start(ctx)

	svc := service.NewOrderService(repo, dispatcher, log)

	ready := handler.NewReadinessHandler(mongoDB, nil)
	e := api.NewOrdersRouter(svc, codec, ready, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("orders service listening")
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
	log.Info().Msg("orders service stopped")
}
