// @title        Employee Management API
// @version      1.0.0
// @description  Positions and employees behind username/password bearer authentication.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/hrcore/employee-service/docs"
	"github.com/hrcore/employee-service/internal/api"
	"github.com/hrcore/employee-service/internal/api/handler"
	"github.com/hrcore/employee-service/internal/core/ports"
	"github.com/hrcore/employee-service/internal/core/service"
	"github.com/hrcore/employee-service/internal/infrastructure/config"
	"github.com/hrcore/employee-service/internal/infrastructure/db/redis"
	"github.com/hrcore/employee-service/internal/infrastructure/db/relational"
	"github.com/hrcore/employee-service/internal/infrastructure/queue"
	"github.com/hrcore/employee-service/pkg/logger"
)

const (
	shutdownTimeout  = 30 * time.Second
	redisPingTimeout = 2 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "employee-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "employee-service",
	})

	// --- Storage ---
	db, err := relational.Open(ctx, relational.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.URL,
	}, logger.Component("db"))
	if err != nil {
		return err
	}
	defer func() {
		if err := relational.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	if err := relational.Migrate(ctx, db, cfg.Database.Driver, logger.Component("migrate")); err != nil {
		return err
	}

	checks := []handler.DependencyCheck{
		{Name: "database", Ping: func(ctx context.Context) error { return relational.Ping(ctx, db) }},
	}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer closeRedis(client, log)

		idem = redis.NewIdempotencyStore(client)
		checks = append(checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redis.Ping(ctx, client, redisPingTimeout) },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys enabled")
	}

	// --- Change events ---
	var publisher ports.EventPublisher
	if len(cfg.Events.Brokers) > 0 {
		publisher = queue.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		log.Info().Strs("brokers", cfg.Events.Brokers).Str("topic", cfg.Events.Topic).Msg("publishing change events to kafka")
	} else {
		publisher = queue.NewLogPublisher(logger.Component("events"))
	}

	dispatcher := queue.NewDispatcher(cfg.Events.Workers, publisher, logger.Component("dispatcher"))
	dispatcher.Start(context.WithoutCancel(ctx))

	// --- Services ---
	positionRepo := relational.NewPositionRepository(db)
	employeeRepo := relational.NewEmployeeRepository(db)
	authRepo := relational.NewAuthRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	credentials := service.NewCredentialStore(authRepo, bcrypt.DefaultCost, logger.Component("credentials"))

	router := api.NewRouter(api.Dependencies{
		Auth:        service.NewAuthService(credentials, tokens, logger.Component("auth")),
		Tokens:      tokens,
		Positions:   service.NewPositionService(positionRepo, idem, dispatcher, logger.Component("positions")),
		Employees:   service.NewEmployeeService(employeeRepo, positionRepo, idem, dispatcher, logger.Component("employees")),
		Checks:      checks,
		CORSOrigins: cfg.CORSOrigins,
		Log:         logger.Component("http"),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server is starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			_ = dispatcher.Stop()
			return fmt.Errorf("listen on :%s: %w", cfg.Port, err)
		}
	case <-ctx.Done():
		log.Info().Msg("server is shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("could not gracefully shut down the server")
	}

	// Drain pending change events once no request can enqueue more.
	if err := dispatcher.Stop(); err != nil {
		log.Error().Err(err).Msg("close event publisher")
	}

	log.Info().Msg("server stopped")
	return nil
}

func closeRedis(client *goredis.Client, log zerolog.Logger) {
	if err := client.Close(); err != nil {
		log.Error().Err(err).Msg("close redis")
	}
}
