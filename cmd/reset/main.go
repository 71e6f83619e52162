package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jwebster45206/casino/internal/config"
	"github.com/jwebster45206/casino/internal/logger"
	"github.com/jwebster45206/casino/internal/storage"
)

// Deletes the saved player record for the configured backend and profile.
// The next casino run starts from a fresh record.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.New(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open save backend: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Reset(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to reset player state: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("Player state for profile %q reset (%s backend).\n", cfg.Profile, cfg.SaveBackend)
}
