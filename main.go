// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"library-seating/cmd"
	"library-seating/internal/data/repository"
	"library-seating/internal/wire"
	"library-seating/internal/worker"
	"library-seating/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Int("seat_count", config.App.SeatCount),
		zap.Bool("debug", config.App.Debug),
	)

	// Initialize the booking store
	repos := repository.NewRepository(config.Store.CSVPath, logger)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := repos.Booking.EnsureInitialized(ctx); err != nil {
		logger.Fatal("Failed to initialize booking store", zap.Error(err))
	}

	logger.Info("Booking store ready", zap.String("path", config.Store.CSVPath))

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Start the expiry sweeper
	sweeper := worker.NewExpirySweeper(app.Service.Seat, app.Service.Notifier, config.Sweeper.Interval, logger)
	go sweeper.Start(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
