package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jwebster45206/casino/internal/casino"
	"github.com/jwebster45206/casino/internal/config"
	"github.com/jwebster45206/casino/internal/console"
	"github.com/jwebster45206/casino/internal/games"
	"github.com/jwebster45206/casino/internal/logger"
	"github.com/jwebster45206/casino/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	w, closeLog, err := logger.Output(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	log := logger.Setup(cfg, w)
	log.Info("Starting casino",
		"environment", cfg.Environment,
		"save_backend", cfg.SaveBackend,
		"profile", cfg.Profile,
		"console_mode", cfg.ConsoleMode)

	ctx := context.Background()

	storeCtx, storeCancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := storage.New(storeCtx, cfg, log)
	storeCancel()
	if err != nil {
		return fmt.Errorf("failed to open save backend: %w", err)
	}
	defer store.Close()

	registry := games.DefaultRegistry(cfg.GamesDir, log)

	var prompter console.Prompter
	switch cfg.ConsoleMode {
	case config.ConsoleTUI:
		prompter = console.NewTeaPrompter(nil, nil)
	default:
		prompter = console.NewLinePrompter(os.Stdin, os.Stdout)
	}
	con := console.New(os.Stdout, prompter)

	return casino.NewApp(store, con, registry, log).Run(ctx)
}
