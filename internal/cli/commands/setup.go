package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlequiv/internal/cli/config"
	"github.com/leapstack-labs/sqlequiv/internal/cli/output"
	"github.com/leapstack-labs/sqlequiv/internal/loader"
	"github.com/leapstack-labs/sqlequiv/internal/state"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/normalize"
)

// ErrNotEquivalent is returned by compare when the scripts differ, so the
// process exits non-zero.
var ErrNotEquivalent = errors.New("scripts are not equivalent")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	mode := output.Mode(cfg.OutputFormat)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}, nil
}

// getConfig returns the configuration loaded by the root command, loading
// it from the command's flags when the command runs on its own.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", cmd.Flags())
}

// mapping combines the configured mapping with --map pairs.
func (c *CommandContext) mapping(pairs []string) (*normalize.Mapping, error) {
	m, err := c.Cfg.LoadMapping()
	if err != nil {
		return nil, err
	}
	if err := loader.ParsePairs(m, pairs); err != nil {
		return nil, err
	}
	return m, nil
}

// dialectFlag resolves a --dialect value, falling back to def.
func dialectFlag(name, def string) (*dialect.Dialect, error) {
	if name == "" {
		name = def
	}
	return dialect.Lookup(name)
}

// openHistory opens and migrates the history database.
func openHistory(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	dir := filepath.Dir(cfg.HistoryPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.HistoryPath); err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return store, nil
}
