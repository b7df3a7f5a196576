package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"maichat/internal/config"
	"maichat/internal/handler"
	"maichat/internal/middleware"
	"maichat/internal/service/agent"
	"maichat/internal/service/agent/tools"
	"maichat/internal/service/llm/openai"
	"maichat/internal/service/search"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"chat_model", cfg.ChatModel,
	)

	// Model gateway credentials are required before serving anything
	if err := cfg.ValidateLLM(); err != nil {
		log.Fatalf("Failed to validate LLM configuration: %v", err)
	}

	// OpenAI-compatible client, shared by the chat gateway and the embedder
	client := openai.NewClient(cfg.OpenAIAPIKey, openai.WithBaseURL(cfg.OpenAIBaseURL))
	gateway := openai.NewGateway(client, cfg.ChatModel, logger)
	embedder := openai.NewEmbedder(client, cfg.EmbeddingModel)

	// Menu vector store: connects lazily on first search, closed at shutdown
	store := search.NewStore(cfg, embedder, logger)
	defer store.Close()

	// Tool registry and synonym vocabulary
	vocab, err := tools.NewVocabulary()
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}
	registry := tools.BuildDefault(vocab, store)

	// Orchestration engine
	engine := agent.NewEngine(gateway, registry, logger)

	// Handlers
	chatHandler := handler.NewChatHandler(engine, logger)

	logger.Info("services initialized", "tools", len(registry.Definitions()))

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.HealthCheck)
	mux.HandleFunc("POST /chat", chatHandler.RunTurn)

	// Middleware chain: recovery -> logging -> CORS -> routes
	var routes http.Handler = mux
	routes = middleware.RequestLogger(logger)(routes)
	routes = middleware.Recovery(logger)(routes)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler.Handler(routes),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}
