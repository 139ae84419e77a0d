package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"obstacle-detection/config"
	"obstacle-detection/geometry"
	"obstacle-detection/services/communication"
	"obstacle-detection/services/database"
	Logger "obstacle-detection/services/logger"
	"obstacle-detection/services/redis"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := Logger.Init(cfg.Log, cfg.Sentry); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logging")
	}

	err = run(cfg)
	Logger.Flush()
	if err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// run serves until a termination signal arrives or the listener fails.
func run(cfg *config.Config) error {
	initial := cfg.Boundary.ToBoundary()
	if err := geometry.ValidateFinite(initial); err != nil {
		return fmt.Errorf("configured boundary: %w", err)
	}
	model := communication.NewBoundaryModel(cfg.Server.BoundaryName, initial)

	if cfg.Database.Enabled {
		db, err := database.Init(cfg.Database)
		if err != nil {
			log.Error().Err(err).Msg("Database unusable, boundaries will not be persisted")
		} else if db != nil {
			model.Stores = append(model.Stores, database.NewBoundaryRepository(db))
		}
	}

	if cfg.Redis.Enabled {
		redis.Init(cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if redis.HealthCheck(ctx, redis.GetDB()) {
			storage := redis.NewStorage(redis.GetDB())
			model.Stores = append(model.Stores, storage)
			model.StatisticsStore = storage
		}
		cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	restored, err := model.Restore(ctx)
	cancel()
	if restored {
		log.Info().Str("boundary", model.Name).Msg("Restored persisted boundary")
	} else if err != nil {
		log.Warn().Err(err).Msg("No persisted boundary, using the configured one")
	}

	manager := communication.NewConnectionsManager(model, cfg.Server.KeepAliveTimeout, nil)
	manager.ValidateBoundaries = cfg.Server.ValidateBoundaries
	if cfg.Log.InputLogFilepath != "" {
		if manager.Logger, err = Logger.NewInputLogger(cfg.Log.InputLogFilepath); err != nil {
			return fmt.Errorf("opening input log: %w", err)
		}
	}

	if cfg.Server.DebugAddr != "" {
		// Debug for pprof
		go func() {
			log.Info().Err(http.ListenAndServe(cfg.Server.DebugAddr, nil)).Msg("Debug server stopped")
		}()
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- manager.StartListening(cfg.Server.Port, true)
	}()

	// We don't want run() to return before a signal or a listener failure
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	select {
	case <-signals:
		log.Info().Msg("Shutting down")
	case err = <-serverErrors:
		log.Error().Err(err).Msg("Listener stopped, shutting down")
	}

	manager.DeleteAllConnections(true)
	return err
}
