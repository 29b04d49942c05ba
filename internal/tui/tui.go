// Package tui is the interactive terminal planner. Terminal cells are the
// drawing surface and mouse events drive the layout's pointer operations.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/screenscape/internal/config"
)

// Options configures the planner.
type Options struct {
	// ConfigPath overrides the default config location.
	ConfigPath string
	// Seed replaces configured displays by label, e.g. with detected monitors.
	Seed []config.DisplayConfig
	// Watch reloads the plan when the config file changes on disk.
	Watch  bool
	Logger *slog.Logger
}

// Run starts the planner and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	load := func() (*config.LoadResult, error) {
		if opts.ConfigPath == "" {
			return config.LoadWithSources()
		}
		return config.LoadFromPath(opts.ConfigPath)
	}

	var watcher *configWatcher
	if opts.Watch {
		w, err := newConfigWatcher(logger)
		if err != nil {
			logger.Warn("config hot reload disabled", "error", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	m := newModel(load, opts.Seed, watcher, logger)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
