package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/config"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/events"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/logger"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/metrics"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/repository"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/transport"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	VERSION     = "1.0.0"
	serviceName = "influencerconnect"
)

func init() {
	config.LoadConfigs()
}

func main() {
	migrateCmd := flag.String("migrate", "", "run a schema migration command (up, down, version) and exit")
	flag.Parse()

	log := logger.New(logger.Config{
		Service: serviceName,
		Version: VERSION,
		Level:   config.AppConfigInstance.GeneralConfig.LogLevel,
	})

	if *migrateCmd != "" {
		migrator, err := newMigrator(config.AppConfigInstance.DatabaseConfig)
		if err == nil {
			err = runMigrate(*migrateCmd, migrator, log)
		}
		if err != nil {
			level.Error(log).Log("msg", "migration failed", "command", *migrateCmd, "err", err)
			os.Exit(1)
		}
		return
	}

	if err := run(log); err != nil {
		level.Error(log).Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
}

func run(log kitlog.Logger) error {
	cfg := config.AppConfigInstance
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	store, backend, closeStore, err := repository.NewStore(cfg.DatabaseConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			level.Warn(log).Log("msg", "failed to close store", "err", err)
		}
	}()

	publisher, eventsHealth, closePublisher := newPublisher(config.GetEventsConfig(), log)
	defer closePublisher()

	router := Routes(App{
		Store:        store,
		Backend:      backend,
		Publisher:    publisher,
		EventsHealth: eventsHealth,
		Metrics:      metrics.NewPrometheusMetrics(prometheus.DefaultRegisterer),
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.GeneralConfig.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		level.Info(log).Log("msg", "starting server", "port", cfg.GeneralConfig.Port, "store", backend, "env", cfg.GeneralConfig.Env)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	level.Info(log).Log("msg", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newPublisher returns the Redis publisher when events are enabled, with its
// health check. A Redis outage at startup downgrades to the no-op publisher
// instead of failing.
func newPublisher(cfg events.RedisConfig, log kitlog.Logger) (events.Publisher, transport.HealthChecker, func()) {
	if !cfg.Enabled {
		return events.NewNopPublisher(), nil, func() {}
	}

	publisher, err := events.NewRedisPublisher(cfg)
	if err != nil {
		level.Warn(log).Log("msg", "change notifications disabled", "addr", cfg.Addr, "err", err)
		return events.NewNopPublisher(), nil, func() {}
	}

	level.Info(log).Log("msg", "publishing change notifications", "addr", cfg.Addr, "channel", cfg.Channel)
	logged := events.NewLoggingPublisher(kitlog.With(log, "component", "events"))(publisher)
	return logged, transport.HealthCheckFunc(publisher.HealthCheck), func() { _ = publisher.Close() }
}
