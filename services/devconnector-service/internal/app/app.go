// Package app wires the devconnector service together and runs its HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/config"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/handler"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/repository"
	"github.com/vasapolrittideah/devconnector-api/services/devconnector-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/auth"
	"github.com/vasapolrittideah/devconnector-api/shared/database"
	"github.com/vasapolrittideah/devconnector-api/shared/discovery"
	"github.com/vasapolrittideah/devconnector-api/shared/mailer"
	"github.com/vasapolrittideah/devconnector-api/shared/metrics"
	"github.com/vasapolrittideah/devconnector-api/shared/middleware"
	"github.com/vasapolrittideah/devconnector-api/shared/security"
	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

// Run starts the service and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg *config.DevconnectorServiceConfig, logger *zerolog.Logger) error {
	client, err := database.NewMongoClient(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongo")
		}
	}()

	logger.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	db := client.Database(cfg.Mongo.Database)

	userRepo, err := repository.NewUserMongoRepository(ctx, db)
	if err != nil {
		return err
	}
	profileRepo, err := repository.NewProfileMongoRepository(ctx, db)
	if err != nil {
		return err
	}

	hasher, err := security.NewPasswordHasher(cfg.Password.Algorithm, cfg.Password.BcryptCost)
	if err != nil {
		return err
	}

	validator, err := validation.New()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Secret, cfg.Token.Audience, cfg.Token.Issuer, cfg.Token.ExpiresIn)

	var (
		welcomeMailer usecase.WelcomeMailer
		outbox        *mailer.Outbox
	)
	if cfg.SMTP.Enabled() {
		outbox = mailer.NewOutbox(mailer.NewMailer(cfg.SMTP), logger)
		welcomeMailer = outbox
		logger.Info().Str("host", cfg.SMTP.Host).Msg("welcome emails enabled")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, jwtAuth, welcomeMailer, collector, logger)
	profileUsecase := usecase.NewProfileUsecase(profileRepo, userRepo)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:         logger,
		Validator:      validator,
		AuthUsecase:    authUsecase,
		ProfileUsecase: profileUsecase,
		Tokens:         jwtAuth,
		Metrics:        collector,
		RateLimiter:    rateLimiter,

		TrustProxyHeaders: cfg.TrustProxyHeaders,
		Pinger: handler.PingerFunc(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}),
	})

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var registrar *discovery.Registrar
	if cfg.Consul.Enabled() {
		registrar, err = discovery.NewConsulRegistrar(cfg.Consul, logger, cfg.ServiceName, cfg.Port, handler.HealthPath)
		if err != nil {
			return err
		}
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	if registrar != nil {
		if err := registrar.Register(); err != nil {
			logger.Error().Err(err).Msg("failed to register with consul")
		}
	}

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down http server")

	if registrar != nil {
		if err := registrar.Deregister(); err != nil {
			logger.Error().Err(err).Msg("failed to deregister from consul")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if outbox != nil {
		if err := outbox.Close(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("pending emails were not delivered")
		}
	}

	logger.Info().Msg("http server stopped gracefully")

	return nil
}
