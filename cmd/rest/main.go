package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"emoticore-be/internal/bootstrap"
	"emoticore-be/internal/config"
	"emoticore-be/internal/server"
	"emoticore-be/internal/tracer"
	"emoticore-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(tracer.Config{
		Enabled:     cfg.App.OtelEnabled,
		Endpoint:    cfg.App.OtelEndpoint,
		Environment: cfg.App.Environment,
	})
	defer shutdownTracer(context.Background())

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{
		LogLevel: database.LogLevelFor(cfg.App.Environment),
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap container: %v", err)
	}
	defer container.Close()

	// 4. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Panicf("Unable to start usage consumer: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
