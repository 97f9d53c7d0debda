// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jerewitdashifts/chat-platform/internal/config"
	"github.com/jerewitdashifts/chat-platform/internal/handler"
	"github.com/jerewitdashifts/chat-platform/internal/kv"
	"github.com/jerewitdashifts/chat-platform/internal/llm"
	"github.com/jerewitdashifts/chat-platform/internal/middleware"
	"github.com/jerewitdashifts/chat-platform/internal/service"
	"github.com/jerewitdashifts/chat-platform/internal/store"
	"github.com/jerewitdashifts/chat-platform/internal/websearch"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
	"github.com/jerewitdashifts/chat-platform/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "chat-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Open the persistent key-value store
	kvStore, err := kv.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open storage", zap.Error(err))
		os.Exit(1)
	}
	defer kvStore.Close()

	// Load persisted conversation state
	st := store.New(kvStore, log)
	if err := st.Load(); err != nil {
		log.Error("failed to load persisted state", zap.Error(err))
		os.Exit(1)
	}

	// Initialize completion clients; a missing key disables that backend
	// without failing startup.
	var openaiClient, groqClient llm.Client
	if cfg.OpenAIAPIKey != "" {
		if c, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel); err != nil {
			log.Warn("failed to create OpenAI client, general chat disabled", zap.Error(err))
		} else {
			openaiClient = c
		}
	} else {
		log.Warn("OPENAI_API_KEY not set, general chat disabled")
	}
	if cfg.GroqAPIKey != "" {
		if c, err := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel); err != nil {
			log.Warn("failed to create Groq client, pro dev chat disabled", zap.Error(err))
		} else {
			groqClient = c
		}
	} else {
		log.Warn("GROQ_API_KEY not set, pro dev chat disabled")
	}

	// Web context fetcher; a missing Serper key degrades to the
	// instant-answer fallback.
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	fetcher := websearch.NewFetcher(
		websearch.NewSerperClient(cfg.SerperAPIKey, httpClient),
		websearch.NewDuckDuckGoClient(httpClient),
		log,
	)

	// Initialize services
	conversationSvc := service.NewConversationService(st, log)
	messageSvc := service.NewMessageService(st, openaiClient, groqClient, fetcher, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(kvStore)
	conversationHandler := handler.NewConversationHandler(conversationSvc, log)
	messageHandler := handler.NewMessageHandler(messageSvc, log)
	settingsHandler := handler.NewSettingsHandler(conversationSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", conversationHandler.List)
			r.Post("/pro", conversationHandler.CreatePro)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", conversationHandler.Get)
				r.Put("/", conversationHandler.Update)
				r.Delete("/", conversationHandler.Delete)
				r.Post("/duplicate", conversationHandler.Duplicate)
			})
		})

		r.Get("/active", conversationHandler.GetActive)
		r.Put("/active", conversationHandler.SetActive)

		r.Post("/messages", messageHandler.Send)

		r.Get("/settings/web", settingsHandler.GetWeb)
		r.Put("/settings/web", settingsHandler.SetWeb)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
