package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lectorlabs/lector/api"
	"github.com/lectorlabs/lector/internal/chat"
	"github.com/lectorlabs/lector/internal/logger"
	"github.com/lectorlabs/lector/internal/words"
)

const defaultOllamaHost = "http://localhost:11434"

func main() {
	// Load .env before the flag defaults read the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	// Define command-line flags
	var (
		help      = flag.Bool("help", false, "Show help message")
		version   = flag.Bool("version", false, "Show version information")
		port      = flag.String("port", envOr("PORT", "8080"), "Port to run the server on")
		dataDir   = flag.String("data-dir", envOr("DATA_DIR", "./data"), "Directory holding the exported index artifacts")
		serveDir  = flag.String("serve-dir", envOr("SERVE_DIR", "."), "Directory holding the exported library files")
		logLevel  = flag.String("log-level", envOr("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
		logFormat = flag.String("log-format", envOr("LOG_FORMAT", "text"), "Log format (text, json)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Lector Server - Serves the annotated library and word tutoring chat\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment:\n")
		fmt.Printf("  OLLAMA_HOST   Ollama server base URL (default %s)\n", defaultOllamaHost)
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Lector Server v1.0.0\n")
		return
	}

	logger.Setup(*logLevel, *logFormat)

	wordService, err := words.Load(*dataDir)
	if err != nil {
		slog.Error("failed to load word data", "data_dir", *dataDir, "error", err)
		os.Exit(1)
	}

	ollama := chat.NewClient(envOr("OLLAMA_HOST", defaultOllamaHost))

	router := gin.Default()
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(1 << 20))
	api.SetupRoutes(router, wordService, ollama, *serveDir)

	server := &http.Server{
		Addr:              ":" + *port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "port", *port, "serve_dir", *serveDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
