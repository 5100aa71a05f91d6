package main

import (
	"fmt"
	"log/slog"
	"os"

	"backoffice/cmd"
	"backoffice/internal/db"
	"backoffice/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := cmd.NewLogger(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// Records live for one run only
	store, err := db.Open(db.MemoryDSN, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fixture, err := db.LoadFixture(config.SeedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load seed data: %v\n", err)
		os.Exit(1)
	}
	if err := store.Seed(fixture); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed database: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting", slog.String("version", version))

	// Create and run Bubble Tea app
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !config.NoMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(ui.New(store, logger, ui.Options{PrefsPath: config.PrefsPath}), opts...)
	if _, err := p.Run(); err != nil {
		logger.Error("app exited with error", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
