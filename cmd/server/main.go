package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btn-backend/internal/cache"
	"btn-backend/internal/config"
	"btn-backend/internal/database"
	"btn-backend/internal/handlers"
	"btn-backend/internal/router"
	"btn-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting BTN Originals Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Result Cache (Redis optional) ────
	var store cache.Store
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
		log.Println("✓ Redis result cache connected")
	} else {
		store = cache.NewMemoryStore()
		log.Println("✓ In-memory result cache (REDIS_URL not set)")
	}

	// ──── Step 3: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		cfg.GeminiFallbackModel,
		cfg.GeminiMaxOutputToken,
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	if geminiService.Configured() {
		log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)
	} else {
		log.Println("⚠ No API key configured; serving local fallback songs only")
	}

	// ──── Step 4: Initialize Services & Handlers ────
	fileExtractService := services.NewFileExtractService(cfg.MaxPDFPages)
	trackHandler := handlers.NewTrackHandler(fileExtractService, geminiService, store, cfg.MaxUploadBytes)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(trackHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 60 * time.Second,
		// Generation blocks the request for its full duration, which
		// can run to minutes on long chapters.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ BTN Originals Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
