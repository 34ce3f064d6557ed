package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/opticbee/24X7HEALTHCARE/internal/shifts"
	"github.com/opticbee/24X7HEALTHCARE/pkg/config"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize Shift Service
	service := shifts.New(cfg, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	// Start service in a goroutine
	go func() {
		logger.Infof("Starting Shift Service on port %s", port)
		if err := service.Start(":" + port); err != nil {
			logger.Fatalf("Failed to start Shift Service: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down Shift Service...")
	if err := service.Stop(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
	logger.Info("Shift Service stopped")
}
