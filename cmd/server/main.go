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

	"podsum-backend/internal/config"
	"podsum-backend/internal/handlers"
	"podsum-backend/internal/router"
	"podsum-backend/internal/services"
	"podsum-backend/internal/store"
)

func main() {
	log.Println("🚀 Starting Podcast Summarizer Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Session Store ────
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	var sessionStore store.SessionStore
	if cfg.RedisURL != "" {
		redisStore, err := store.NewRedisStore(cfg.RedisURL, sessionTTL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		sessionStore = redisStore
		log.Println("✓ Redis session store connected")
	} else {
		sessionStore = store.NewMemoryStore(sessionTTL, cfg.SessionCapacity)
		log.Printf("✓ In-memory session store ready (ttl %dm, capacity %d)", cfg.SessionTTLMinutes, cfg.SessionCapacity)
	}
	defer sessionStore.Close()

	// ──── Step 3: Initialize Services ────
	youtubeService := services.NewYouTubeService(cfg.ProxyUsername, cfg.ProxyPassword)
	if cfg.ProxyUsername != "" {
		log.Println("✓ Transcript retrieval using residential proxy egress")
	}
	openaiService := services.NewOpenAIService(cfg.ModelAPIKey, cfg.ModelBaseURL, cfg.ModelID, cfg.ModelConcurrentReqs)
	log.Printf("✓ Model gateway client initialized (model %s)", cfg.ModelID)

	// ──── Step 4: Initialize Handlers ────
	summarizeHandler := handlers.NewSummarizeHandler(youtubeService, openaiService, sessionStore)
	chatHandler := handlers.NewChatHandler(openaiService, sessionStore)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(summarizeHandler, chatHandler, cfg.FrontendURL, cfg.APIRequestsPerMin)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
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

	log.Printf("✓ Podcast Summarizer ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
