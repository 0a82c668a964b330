package server

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/imagegen/image-gen-mcp/internal/config"
	"github.com/imagegen/image-gen-mcp/internal/gallery"
	"github.com/imagegen/image-gen-mcp/internal/replicate"
)

const (
	serverName    = "image-generator"
	serverVersion = "0.1.0"
)

// Generator produces images from a text prompt and returns the URLs of
// the generated outputs.
type Generator interface {
	Generate(ctx context.Context, input replicate.GenerationInput) ([]string, error)
}

// Gateway registers the image generation capabilities (tools, resources,
// prompts) on an MCP server and dispatches incoming calls. It owns all
// mutable state; there is no package-level state.
type Gateway struct {
	cfg       *config.Config
	store     *gallery.Store
	saver     *gallery.Saver
	generator Generator
	mcp       *server.MCPServer
	logger    zerolog.Logger
}

// New creates a Gateway with all capability tables registered.
func New(cfg *config.Config, store *gallery.Store, saver *gallery.Saver, generator Generator, logger zerolog.Logger) *Gateway {
	g := &Gateway{
		cfg:       cfg,
		store:     store,
		saver:     saver,
		generator: generator,
		logger:    logger.With().Str("component", "server").Logger(),
	}

	g.mcp = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	g.registerTools()
	g.registerResources()
	g.registerPrompts()

	return g
}

// Run serves the MCP protocol over stdin/stdout until the client
// disconnects or the process is interrupted.
func (g *Gateway) Run() error {
	g.logger.Info().Str("images_dir", g.store.DefaultDir()).Str("model", g.cfg.ModelVersion).
		Msg("serving MCP over stdio")
	return server.ServeStdio(g.mcp)
}
