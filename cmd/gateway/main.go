package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/gateway"
	"github.com/ordersuite/order-system/internal/infrastructure/config"
	redisstore "github.com/ordersuite/order-system/internal/storage/redis"
	"github.com/ordersuite/order-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadGateway(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "gateway",
		Pretty:  cfg.Env == "development",
	})

	codec, err := auth.NewCodec(cfg.JWTSecret, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("credential codec init failed")
	}

	// Redis is only needed for rate limiting; without the limiter the
	// gateway runs standalone.
	var rdb *goredis.Client
	if cfg.RateLimitEnabled {
		rdb, err = redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		defer func() {
			_ = rdb.Close()
		}()
	}

	e, err := gateway.New(cfg, codec, rdb, log)
	if err != nil {
		log.Fatal().Err(err).Msg("gateway init failed")
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("users", cfg.UsersServiceURL).
			Str("orders", cfg.OrdersServiceURL).
			Msg("gateway listening")
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
	log.Info().Msg("gateway stopped")
}
