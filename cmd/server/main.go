package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"battleships-api/internal/core"
	"battleships-api/internal/puzzles"
	httpTransport "battleships-api/internal/transport/http"
	"battleships-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	log.Printf("Exhaustive solver call limit: %d", cfg.ExhaustiveLimit)

	if err := puzzles.LoadGlobal(cfg.PuzzlesFile); err != nil {
		log.Printf("Warning: Could not load puzzles from %s: %v", cfg.PuzzlesFile, err)
		log.Println("Falling back to on-demand puzzle generation")
	} else {
		loader := puzzles.Global()
		log.Printf("Loaded %d pre-generated puzzles", loader.Count())
		for _, level := range []core.Level{core.Basic, core.Intermediate, core.Advanced, core.Unreasonable} {
			log.Printf("  %-12s %d", level.String(), loader.CountByDifficulty(level))
		}
	}

	r := gin.Default()
	httpTransport.RegisterRoutes(r, cfg)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
