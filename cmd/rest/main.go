package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mailreply-be/internal/bootstrap"
	"mailreply-be/internal/config"
	"mailreply-be/internal/pkg/logger"
	"mailreply-be/internal/server"
	"mailreply-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Telemetry, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to bootstrap: %v", err)
	}

	// 4. Initialize Server
	srv, err := server.New(cfg, container)
	if err != nil {
		log.Panicf("Unable to create server: %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		sysLogger.Info("SERVER", "shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			sysLogger.Error("SERVER", "shutdown failed", map[string]interface{}{"error": err})
		}
	}()

	// 5. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
