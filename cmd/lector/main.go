package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lectorlabs/lector/config"
	"github.com/lectorlabs/lector/internal/epub"
	"github.com/lectorlabs/lector/internal/logger"
	"github.com/lectorlabs/lector/internal/pipeline"
	"github.com/lectorlabs/lector/internal/tokenizer"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		epubPath   = flag.String("epub", "", "Path to the EPUB file to process")
		outDir     = flag.String("out", "", "Output directory (overrides the configured one)")
		configPath = flag.String("config", "", "Path to a YAML settings file")
		logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		logFormat  = flag.String("log-format", "text", "Log format (text, json)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Lector - EPUB indexing and annotation pipeline\n\n")
		fmt.Printf("Usage: %s --epub book.epub [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s --epub book.epub                  # Process into the default output directory\n", os.Args[0])
		fmt.Printf("  %s --epub book.epub --out ./library  # Process into ./library\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Lector v1.0.0\n")
		fmt.Printf("Builds annotated reading editions with word and lemma indices\n")
		return
	}

	logger.Setup(*logLevel, *logFormat)

	if *epubPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --epub is required\n\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load settings", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		for _, problem := range problems {
			slog.Error("invalid settings", "problem", problem)
		}
		os.Exit(1)
	}

	container, err := epub.Open(*epubPath)
	if err != nil {
		slog.Error("failed to open book", "path", *epubPath, "error", err)
		os.Exit(1)
	}

	p, err := pipeline.New(cfg, &tokenizer.Spanish{})
	if err != nil {
		slog.Error("failed to initialize pipeline", "error", err)
		os.Exit(1)
	}

	result, err := p.Run(container)
	if err != nil {
		slog.Error("processing failed", "path", *epubPath, "error", err)
		os.Exit(1)
	}

	if err := p.Export(result); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}

	slog.Info("book processed",
		"book_id", result.Book.ID,
		"title", result.Book.Title,
		"output", cfg.Output.Dir,
	)
}
