package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	appauth "github.com/jw6ventures/calboard/internal/auth"
	"github.com/jw6ventures/calboard/internal/config"
	httpserver "github.com/jw6ventures/calboard/internal/http"
	"github.com/jw6ventures/calboard/internal/store"
)

func main() {
	log.Println("Starting Calboard server...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stor := store.New()
	if cfg.SeedFile != "" {
		n, err := store.LoadSeedFile(ctx, stor, cfg.SeedFile)
		if err != nil {
			log.Fatalf("failed to load seed file %s: %v", cfg.SeedFile, err)
		}
		log.Printf("loaded %d events from %s", n, cfg.SeedFile)
	} else {
		if err := store.SeedDemo(ctx, stor, time.Now()); err != nil {
			log.Fatalf("failed to seed demo events: %v", err)
		}
		log.Println("seeded built-in demo schedule")
	}

	sessionManager := appauth.NewSessionManager(cfg)

	r := httpserver.NewRouter(cfg, stor, sessionManager)

	// Reminder sweep: log events starting within the next 15 minutes.
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("*/5 * * * *", func() {
		now := time.Now()
		upcoming, err := stor.Events.ListBetween(ctx, now, now.Add(15*time.Minute))
		if err != nil {
			log.Printf("reminder sweep failed: %v", err)
			return
		}
		for _, ev := range upcoming {
			log.Printf("reminder: %q starts at %s", ev.Title, ev.Start.Format(time.RFC3339))
		}
	}); err != nil {
		log.Fatalf("failed to schedule reminder sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
