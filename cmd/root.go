package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds CLI configuration.
type Config struct {
	SeedPath    string
	LogPath     string
	LogLevel    slog.Level
	PrefsPath   string
	NoMouse     bool
	ShowVersion bool
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	// Load .env files first so env-based defaults work with existing flag parsing.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	config, err := Parse(os.Args[1:], os.Getenv)
	if err != nil {
		return nil, err
	}
	if config.ShowVersion {
		fmt.Println(version)
		os.Exit(0)
	}
	return config, nil
}

// Parse parses args with environment fallbacks read through getenv.
func Parse(args []string, getenv func(string) string) (*Config, error) {
	config := &Config{}
	var level string

	fs := flag.NewFlagSet("backoffice", flag.ContinueOnError)
	fs.StringVar(&config.SeedPath, "seed", getenv("BACKOFFICE_SEED"), "YAML fixture to seed empty tables (default: built-in demo data)")
	fs.StringVar(&config.LogPath, "log", getenv("BACKOFFICE_LOG"), "Log file (default: no logging)")
	fs.StringVar(&level, "log-level", envOr(getenv, "BACKOFFICE_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	fs.StringVar(&config.PrefsPath, "prefs", getenv("BACKOFFICE_PREFS"), "Table preferences JSON file (default: not saved)")
	fs.BoolVar(&config.NoMouse, "no-mouse", false, "Disable mouse support")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := config.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return config, nil
}

// NewLogger opens the configured log sink. The terminal belongs to the UI,
// so without a log path everything is discarded.
func NewLogger(config *Config) (*slog.Logger, io.Closer, error) {
	if config.LogPath == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(config.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: config.LogLevel})
	return slog.New(handler), f, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
