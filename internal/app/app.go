// Package app wires the catalog, board profiles, validator and generator
// into one application instance with its own logger.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/blockforge/internal/board"
	"github.com/vk/blockforge/internal/catalog"
	"github.com/vk/blockforge/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	registry *catalog.Registry
	boards   map[string]*board.Profile
}

// NewApp is the constructor for the main application. It loads the catalog
// and board profiles once; a failure to load either is a fatal startup error
// and panics, which the entrypoint recovers into a clean exit.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	registry, err := catalog.Load(ctx, cfg.BlocksPath)
	if err != nil {
		panic(fmt.Errorf("failed to load block catalog: %w", err))
	}
	logger.Debug("Block catalog loaded.", "definitions", len(registry.Definitions()))

	boards, err := board.Load(ctx, cfg.BoardsPath)
	if err != nil {
		panic(fmt.Errorf("failed to load board profiles: %w", err))
	}
	logger.Debug("Board profiles loaded.", "count", len(boards))

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		registry: registry,
		boards:   boards,
	}
}

// Registry returns the application's block catalog. This is primarily for testing.
func (a *App) Registry() *catalog.Registry {
	return a.registry
}

// Boards returns the loaded board profiles. This is primarily for testing.
func (a *App) Boards() map[string]*board.Profile {
	return a.boards
}

// writeSketch writes generated code to the configured output file, or to the
// app's output writer when no file is set.
func (a *App) writeSketch(cfg *Config, code string) error {
	if cfg.OutPath == "" {
		_, err := io.WriteString(a.outW, code)
		return err
	}
	if err := os.WriteFile(cfg.OutPath, []byte(code), 0o644); err != nil {
		return fmt.Errorf("failed to write sketch %s: %w", cfg.OutPath, err)
	}
	a.logger.Info("Sketch written.", "path", cfg.OutPath)
	return nil
}
