package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/serenia-app/serenia/internal/analysis"
	"github.com/serenia-app/serenia/internal/api/anthropic"
	"github.com/serenia-app/serenia/internal/api/elevenlabs"
	"github.com/serenia-app/serenia/internal/booking"
	"github.com/serenia-app/serenia/internal/config"
	"github.com/serenia-app/serenia/internal/journal"
	"github.com/serenia-app/serenia/internal/library"
	"github.com/serenia-app/serenia/internal/server"
	"github.com/serenia-app/serenia/internal/speech"
	"github.com/serenia-app/serenia/internal/storage/sqldb"
	"github.com/serenia-app/serenia/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.Init("serenia-api", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := sqldb.New(sqldb.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
	})
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	requestTimeout := time.Duration(cfg.Anthropic.RequestTimeoutSeconds) * time.Second

	var anthropicOpts []anthropic.ClientOption
	anthropicOpts = append(anthropicOpts, anthropic.WithHTTPClient(&http.Client{Timeout: requestTimeout}))
	if cfg.Anthropic.BaseURL != "" {
		anthropicOpts = append(anthropicOpts, anthropic.WithBaseURL(cfg.Anthropic.BaseURL))
	}
	anthropicClient := anthropic.NewClient(cfg.Anthropic.APIKey, anthropicOpts...)

	cascade := analysis.NewCascade(anthropicClient, cfg.Anthropic.Models, logger)
	analysisSvc := analysis.NewService(cascade, cfg.Anthropic.APIKey != "", cfg.Anthropic.MaxTokens, logger)
	analysisHandler := analysis.NewHandler(analysisSvc, logger)

	var elevenOpts []elevenlabs.ClientOption
	elevenOpts = append(elevenOpts, elevenlabs.WithHTTPClient(&http.Client{Timeout: requestTimeout}))
	if cfg.Speech.ElevenLabs.BaseURL != "" {
		elevenOpts = append(elevenOpts, elevenlabs.WithBaseURL(cfg.Speech.ElevenLabs.BaseURL))
	}
	elevenClient := elevenlabs.NewClient(cfg.Speech.ElevenLabs.APIKey, elevenOpts...)

	speechChain := speech.NewChain(logger,
		speech.NewRemote(elevenClient, cfg.Speech.ElevenLabs.VoiceID, cfg.Speech.ElevenLabs.ModelID, cfg.Speech.ElevenLabs.APIKey != ""),
		speech.NewLocal(cfg.Speech.LocalVoice),
	)
	speechHandler := speech.NewHandler(speechChain, logger)

	journalHandler := journal.NewHandler(store, logger)
	bookingHandler := booking.NewHandler(store, logger)
	libraryHandler := library.NewHandler(logger)

	srv := server.New(cfg.Server.Port, logger)
	srv.Router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	srv.Router.Post("/api/ai", analysisHandler.HandleAnalyze)
	srv.Router.Post("/api/tts", speechHandler.HandleSynthesize)
	srv.Router.Get("/api/entries", journalHandler.HandleList)
	srv.Router.Post("/api/entries", journalHandler.HandleCreate)
	srv.Router.Delete("/api/entries/{id}", journalHandler.HandleDelete)
	srv.Router.Post("/api/bookings", bookingHandler.HandleCreate)
	srv.Router.Get("/api/bookings", bookingHandler.HandleList)
	srv.Router.Get("/api/resources", libraryHandler.HandleResources)
	srv.Router.Get("/api/tests", libraryHandler.HandleTests)
	srv.Router.Post("/api/tests/{id}/score", libraryHandler.HandleScore)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	logger.Info("serenia API started",
		slog.Int("port", cfg.Server.Port),
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("anthropic_configured", cfg.Anthropic.APIKey != ""),
		slog.Bool("elevenlabs_configured", cfg.Speech.ElevenLabs.APIKey != ""),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
