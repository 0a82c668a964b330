package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/imagegen/image-gen-mcp/internal/config"
	"github.com/imagegen/image-gen-mcp/internal/gallery"
	"github.com/imagegen/image-gen-mcp/internal/replicate"
	"github.com/imagegen/image-gen-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-gen-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-gen-mcp - MCP server for image generation")
			fmt.Println()
			fmt.Println("Usage: image-gen-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  REPLICATE_API_TOKEN    API token for the inference service (required)")
			fmt.Println("  IMAGES_DIR             Directory for saved images (default: generated_images)")
			fmt.Println("  MODEL_VERSION          Model reference to run")
			fmt.Println("  LOG_LEVEL              debug, info, warn, or error")
			fmt.Println()
			fmt.Println("A .env file in the working directory is loaded if present.")
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout carries protocol traffic, diagnostics go to stderr.
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	logger.Info().Str("version", Version).Str("commit", GitCommit).Msg("image generator MCP server")

	if cfg.ReplicateAPIToken == "" {
		logger.Warn().Msg("REPLICATE_API_TOKEN environment variable is not set")
	}

	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		logger.Error().Err(err).Str("dir", cfg.ImagesDir).Msg("cannot create images directory")
		os.Exit(1)
	}

	if cfg.ReplicateAPIToken == "" {
		logger.Error().Msg("REPLICATE_API_TOKEN must be set to use image generation; refusing to serve")
		os.Exit(1)
	}

	store := gallery.NewStore(cfg.ImagesDir)
	saver := gallery.NewSaver(store, logger)
	client := replicate.NewClient(cfg.ReplicateBaseURL, cfg.ReplicateAPIToken, cfg.ModelVersion, cfg.PollInterval, logger)

	gw := server.New(cfg, store, saver, client, logger)
	// EOF and interrupts are normal shutdowns, not failures.
	if err := gw.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("server error")
		os.Exit(1)
	}

	logger.Info().Msg("server shut down")
}
