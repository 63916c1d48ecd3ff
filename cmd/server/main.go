package main

import (
	"log"

	"go-glassdoor-scraper/internal/api"
	"go-glassdoor-scraper/internal/config"
	"go-glassdoor-scraper/internal/storage"
)

func main() {
	cfg, err := config.LoadShared()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	store := storage.New(cfg.OutputDir)
	r := api.NewRouter(store)

	log.Printf("Server listening on port %s, serving %s", cfg.Port, store.Root())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
