package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/infrastructure/stub"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/pkg/config"
	"github.com/ABDELMSK/projet-si-management-sub000/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	serverCfg := stub.Config{
		JWTSecret: cfg.Stub.JWTSecret,
		Logger:    log,
		Metrics:   true,
	}

	if cfg.Stub.RedisAddr != "" {
		client, err := stub.ConnectRedis(ctx, cfg.Stub.RedisAddr, cfg.Stub.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer client.Close()
		serverCfg.Revoker = stub.NewRedisRevoker(client)
		log.Info().Str("addr", cfg.Stub.RedisAddr).Msg("token revocation backed by redis")
	}

	srv := stub.New(serverCfg)

	go func() {
		log.Info().Str("addr", cfg.Stub.Addr).Msg("stub backend listening")
		if err := srv.Start(cfg.Stub.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
