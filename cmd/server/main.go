package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/skydesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/skydesk/internal/infrastructure/server"
)

func main() {
	// Load config from environment; flags override
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	port := flag.String("port", cfg.Server.Port, "Server port")
	host := flag.String("host", cfg.Server.Host, "Listen address")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging (colored, debug level)")
	catalogDir := flag.String("catalog", cfg.Catalog.Dir, "Directory with extra app catalogs (yaml/toml)")
	theme := flag.String("theme", cfg.Desktop.Theme, "Initial theme (light or dark)")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.Host = *host
	cfg.Catalog.Dir = *catalogDir
	cfg.Desktop.Theme = *theme
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create server
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
