package app

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vk/scaffgo/internal/hclload"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle for one or more generation runs.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader *hclload.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW).
		With("run_id", uuid.NewString())
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: config,
		loader: hclload.NewLoader(),
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
