package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/api"
	"dispatch/cmd"
	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/auth"
	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := openDatabase(configs)

	bus, err := openEventBus(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Error creating event bus: %v", err)
	}

	tokens, err := auth.NewTokenService(configs.JWTSecret, configs.JWTTTL)
	if err != nil {
		log.Fatalf("Error creating token service: %v", err)
	}

	app := cmd.NewCompositionRoot(db, eventbus.NewPublisher(bus), auth.NewBcryptHasher(bcrypt.DefaultCost), tokens, logger)

	seed := app.CreateSeedAdminCommandHandler()
	if err = seed.Handle(ctx, commands.SeedAdminCommand{
		Name:     configs.AdminName,
		Email:    configs.AdminEmail,
		Password: configs.AdminPassword,
	}); err != nil {
		log.Fatalf("Error seeding admin: %v", err)
	}

	hub := ws.NewHub(configs.SubscriberQueueSize, logger)
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		ws.NewRelay(bus, hub, logger).Run(ctx)
	}()

	jobManager := jobs.NewJobManager(jobs.NewBusHealthJob(bus, hub, configs.BusHealthSchedule, logger))
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e := newRouter(app, tokens, hub, logger)
	go startWebServer(e, configs.HTTPPort, stop)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	jobManager.StopAll()
	hub.Close()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if err = bus.Close(); err != nil {
		logger.Error("event bus close", "error", err)
	}
	<-relayDone
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
}

func openDatabase(configs cmd.Config) *gorm.DB {
	db, err := postgres.Open(configs.DatabaseOptions())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return db
}

func openEventBus(ctx context.Context, configs cmd.Config, logger *slog.Logger) (eventbus.Bus, error) {
	switch configs.EventBus {
	case cmd.EventBusAMQP:
		return eventbus.NewAMQPBus(ctx, configs.AMQPURL, configs.AMQPExchange, logger)
	case cmd.EventBusPostgres:
		return eventbus.NewPostgresBus(ctx, configs.PostgresDSN(), configs.PGNotifyChannel, logger)
	default:
		return eventbus.NewMemory(configs.SubscriberQueueSize, logger), nil
	}
}

func newRouter(app cmd.CompositionRoot, tokens *auth.TokenService, hub *ws.Hub, logger *slog.Logger) *echo.Echo {
	doc, err := dispatchhttp.LoadSpec(api.Spec)
	if err != nil {
		log.Fatalf("Error loading API document: %v", err)
	}

	e, err := dispatchhttp.NewRouter(app.CreateServer(), tokens, ws.NewEndpoint(hub, tokens).Handle, doc, logger)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}
	return e
}

func startWebServer(e *echo.Echo, port string, stop context.CancelFunc) {
	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Error(err)
		stop()
	}
}
