package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"crypto-rates-checker/internal/arbitrage"
	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/platform/config"
	"crypto-rates-checker/internal/platform/logger"
	"crypto-rates-checker/internal/server"

	_ "github.com/joho/godotenv/autoload"
)

func gracefulShutdown(ctx context.Context, fiberServer *server.FiberServer, done chan bool) {
	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fiberServer.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	watchOnly := flag.Bool("watch-only", false, "run the scheduled watcher without the HTTP server")
	flag.Parse()

	config := config.GetConfig()
	appLogger := logger.Get()
	defer logger.Sync()

	checker, err := arbitrage.NewCheckerFromConfig(config)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := arbitrage.NewWatcherFromConfig(config, checker, domain.Scheduled)

	if *watchOnly {
		if err := watcher.Start(ctx); err != nil {
			log.Fatalf("watcher: %v", err)
		}
		return
	}

	go func() {
		if err := watcher.Start(ctx); err != nil {
			appLogger.Error("Watcher stopped: " + err.Error())
		}
	}()

	server := server.New(checker, appLogger)

	server.RegisterFiberRoutes()

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	go func() {
		err := server.Listen(fmt.Sprintf(":%d", config.Server.Port))
		if err != nil {
			panic(fmt.Sprintf("http server error: %s", err))
		}
	}()

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(ctx, server, done)

	// Wait for the graceful shutdown to complete
	<-done
	log.Println("Graceful shutdown complete.")
}
