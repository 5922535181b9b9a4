package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/app"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/config"
	"github.com/vasapolrittideah/devconnector-api/shared/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewDevconnectorServiceConfig()
	if err != nil {
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootstrap.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.NewLogger(cfg.Log, cfg.ServiceName)

	if err := app.Run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("service stopped with error")
	}
}
