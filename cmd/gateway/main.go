package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peergear/item-sharing-backend/internal/config"
	"github.com/peergear/item-sharing-backend/internal/gateway"
	"github.com/peergear/item-sharing-backend/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, "gateway")

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	client := gateway.NewClient(cfg.ServerURL)
	router := gateway.NewRouter(client, logger)

	server := &http.Server{
		Addr:    cfg.GatewayAddr,
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", cfg.GatewayAddr).Str("upstream", cfg.ServerURL).Msg("gateway running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("gateway error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("gateway forced to shutdown")
	}

	logger.Info().Msg("gateway exited gracefully")
}
