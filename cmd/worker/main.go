package main

import (
	"log"

	"github.com/aussiebroadwan/todohub/internal/todo/app"
)

func main() {
	cfg := app.LoadWorkerConfig()

	application, err := app.NewWorker(cfg)
	if err != nil {
		log.Fatalf("failed to initialize worker: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("worker error: %v", err)
	}
}
