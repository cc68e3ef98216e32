// Command main runs the local development backend the launchpad client
// talks to. All state is in memory.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"launchpad/internal/config"
	"launchpad/internal/devserver"
	"launchpad/internal/observability"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.InitLogging(cfg.LogLevel, cfg.Env)

	srv := devserver.New(cfg)
	if err := srv.Seed(cfg.SeedUsers); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down devserver...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Devserver shutdown error: %v", err)
		}
	}()

	log.Printf("Devserver starting on port %s...", cfg.DevServerPort)
	if err := srv.Listen(); err != nil {
		log.Fatalf("Devserver stopped: %v", err)
	}
}
