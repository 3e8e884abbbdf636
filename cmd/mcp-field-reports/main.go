package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/a3tai/mcp-field-reports/internal/compose"
	"github.com/a3tai/mcp-field-reports/internal/config"
	"github.com/a3tai/mcp-field-reports/internal/gelf"
	"github.com/a3tai/mcp-field-reports/internal/httpapi"
	"github.com/a3tai/mcp-field-reports/internal/inspect"
	"github.com/a3tai/mcp-field-reports/internal/mcp"
	"github.com/a3tai/mcp-field-reports/internal/notify"
	"github.com/a3tai/mcp-field-reports/internal/render"
	"github.com/a3tai/mcp-field-reports/internal/sink"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

const documentAuthor = "Rohrnetz Beil"

// setupLogging configures logging based on the server mode and attaches the
// GELF writer when one is configured. The returned function closes it.
func setupLogging(cfg *config.Config) func() {
	var base io.Writer = os.Stderr
	if cfg.IsStdioMode() {
		// stdout carries the MCP protocol; logs stay off it and are dropped
		// unless debugging.
		if !cfg.IsDebug() {
			base = io.Discard
		}
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	log.SetOutput(base)

	if cfg.GELFAddress == "" {
		return func() {}
	}
	gelfWriter, err := gelf.New(cfg.GELFAddress, cfg.ServerName)
	if err != nil {
		log.Printf("Warning: GELF init failed: %v", err)
		return func() {}
	}
	log.SetOutput(io.MultiWriter(base, gelfWriter))
	log.Printf("GELF logging: enabled (%s)", cfg.GELFAddress)
	return func() { _ = gelfWriter.Close() }
}

// components are the pieces both modes share.
type components struct {
	service   *compose.Service
	inspector *inspect.Inspector
	output    *sink.Directory
}

func buildComponents(cfg *config.Config) (*components, error) {
	output, err := sink.NewDirectory(cfg.OutputDirectory)
	if err != nil {
		return nil, err
	}
	inspector := inspect.NewInspector(cfg.MaxPayload)

	opts := []compose.ServiceOption{compose.WithObserver(notify.LogObserver{})}
	if cfg.Verify {
		opts = append(opts, compose.WithVerifier(inspector))
	}
	service := compose.NewService(
		render.NewMeasurer(),
		render.NewRenderer(cfg.ServerName+" "+cfg.Version, documentAuthor),
		output,
		opts...,
	)

	return &components{service: service, inspector: inspector, output: output}, nil
}

// run serves the configured mode until ctx is done or the transport stops.
func run(ctx context.Context, cfg *config.Config, c *components) error {
	if cfg.IsServerMode() {
		handler := httpapi.NewRouter(httpapi.NewHandler(c.service, cfg.MaxPayload))
		return httpapi.NewServer(cfg.Address(), handler).Run(ctx)
	}

	server, err := mcp.NewServer(cfg, c.service, c.inspector, c.output)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	return server.Run(ctx)
}

func main() {
	cfg, err := config.LoadFromFlags()
	if errors.Is(err, config.ErrVersionRequested) {
		printVersion()
		return
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	closeLogs := setupLogging(cfg)
	defer closeLogs()

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	c, err := buildComponents(cfg)
	if err != nil {
		log.Printf("Failed to initialise: %v", err)
		closeLogs()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := run(ctx, cfg, c); err != nil {
		log.Printf("Server error: %v", err)
		stop()
		closeLogs()
		os.Exit(1)
	}

	if cfg.IsServerMode() {
		log.Println("Server stopped successfully")
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("MCP Field Reports\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
