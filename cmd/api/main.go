package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"electionportal/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server; drain in-flight webhook deliveries on shutdown.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("api server stopped: %v", err)
	}
}
