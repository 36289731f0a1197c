package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"gridlab/segment/internal/config"
	"gridlab/segment/internal/db"
)

const (
	dbEnvVar  = "SEGMENT_DB"
	dbWalkUp  = ".segment.db"
	minPrefix = 4
)

var (
	dbPath     string
	configPath string
	verbose    bool

	// cfg is loaded by the root command before any subcommand runs.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:           "segment",
	Short:         "Count and measure connected color segments in square grids",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Discover(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Level()
		if verbose {
			level = log.DebugLevel
		}
		logger := newLogger(cmd.ErrOrStderr(), level)
		if cfg.Path != "" {
			logger.Debug("config loaded", "path", cfg.Path)
		}
		cmd.SetContext(withLogger(cmd.Context(), logger))
		return nil
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context; an interrupted run exits with status 130.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		printError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the run database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to segment.toml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// xdgDBPath is the database location used when nothing else is configured.
func xdgDBPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "segment", "segment.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "segment", "segment.db")
}

// DiscoverDB finds the database path using priority:
// env > flag > config > walk-up > XDG fallback.
// With create set, a named path is returned even when the file does not
// exist yet, and the XDG path is the final choice.
func DiscoverDB(create bool) (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv(dbEnvVar); envPath != "" {
		if create || fileExists(envPath) {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if create || fileExists(dbPath) {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Config file
	if cfg != nil && cfg.DB != "" {
		if create || fileExists(cfg.DB) {
			return cfg.DB, nil
		}
		return "", fmt.Errorf("database not found at configured path: %s", cfg.DB)
	}

	// 4. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, dbWalkUp)
			if fileExists(candidate) {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 5. XDG fallback
	if xdg := xdgDBPath(); xdg != "" && (create || fileExists(xdg)) {
		return xdg, nil
	}

	return "", fmt.Errorf("no %s found (set %s, use --db, or record a run with 'segment test')", dbWalkUp, dbEnvVar)
}

// OpenDatabase discovers and opens the database. With create set, missing
// parent directories and the database file are created.
func OpenDatabase(create bool) (*db.DB, error) {
	path, err := DiscoverDB(create)
	if err != nil {
		return nil, err
	}
	if create {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	return db.OpenDB(path)
}

// ResolveRun finds a run by full ID or unique ID prefix.
func ResolveRun(d *db.DB, reference string) (*db.Run, error) {
	// 1. Exact ID match
	run, err := d.GetRun(reference)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("loading run: %w", err)
	}

	// 2. ID prefix match
	if len(reference) < minPrefix || !isHexDash(reference) {
		return nil, fmt.Errorf("run not found: %s", reference)
	}
	matches, err := d.SearchRunsByIDPrefix(reference, 10)
	if err != nil {
		return nil, fmt.Errorf("searching runs: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("run not found: %s", reference)
	case 1:
		return &matches[0], nil
	default:
		lines := make([]string, len(matches))
		for i, m := range matches {
			lines[i] = fmt.Sprintf("  %s %s", shortID(m.ID), m.Source)
		}
		return nil, fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\nUse a longer prefix or the full run ID.",
			reference, len(matches), strings.Join(lines, "\n"))
	}
}

func isHexDash(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == '-') {
			return false
		}
	}
	return true
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
