package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/config"
	"kitchen_lab/internal/handlers"
	"kitchen_lab/internal/logger"
	"kitchen_lab/internal/repository"
	"kitchen_lab/internal/repository/db"
	"kitchen_lab/internal/server"
	"kitchen_lab/internal/service"
)

const (
	configDir       = "configs"
	shutdownTimeout = 10 * time.Second
)

// @title        Kitchen scale control surface
// @version      1.0
// @description  Local control and display API for a single- or dual-channel kitchen scale.
// @host         127.0.0.1:8080
// @BasePath     /
func main() {
	// load configs/config.yml, then KITCHEN_* env overrides
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	// open notification journal
	conn, err := openDB(cfg.DB.DSN, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	notifications := service.NewNotificationService(repos.Notifications, cfg.Notifications.TTL, log)

	acfg, err := cfg.Appliance()
	if err != nil {
		log.Fatalw("invalid appliance config", "err", err)
	}
	session, err := appliance.New(acfg, notifications)
	if err != nil {
		log.Fatalw("failed to build appliance", "err", err)
	}

	services := service.NewService(session, notifications, repos, service.Options{
		Tick:    cfg.Clock.Tick,
		Presets: cfg.Timer.Presets,
	}, log)
	apiHandler := handlers.NewHandler(services, log, handlers.WithStreamInterval(cfg.WS.Interval))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// timer clock
	go services.Clock.Run(ctx)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.HTTP.Addr, apiHandler, log)
	log.Infow("appliance ready", "variant", cfg.Scale.Variant, "addr", cfg.HTTP.Addr)

	waitForShutdown(cancel, srv, log)
}

func openDB(dsn string, log *logger.Logger) (*sql.DB, error) {
	log.Debugw("opening notification journal", "dsn", dsn)
	return db.InitDB(dsn)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, addr string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(addr, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the clock
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
