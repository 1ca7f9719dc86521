package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/edugen/internal/config"
	"github.com/abhisek/edugen/internal/logging"
	"github.com/abhisek/edugen/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "edugen",
	Short: "Generate grade-appropriate lessons and quizzes",
	Long: "Edugen drafts a short explanation and multiple-choice questions for a topic,\n" +
		"has them reviewed, and refines the draft until it passes or the refinement cap is reached.",
	SilenceUsage: true,
}

// ExitError carries a process exit status for a command that completed but
// should not report success.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string { return e.Msg }

// Execute runs the root command and returns the process exit status.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default ./edugen.yaml or $XDG_CONFIG_HOME/edugen/edugen.yaml)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text, json")
	pf.String("usage-db", "", "Path to the usage ledger SQLite file (overrides EDUGEN_USAGE_DB)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration with the command's flags applied on top
// and installs the configured logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.Setup(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// resolveDBPath returns the ledger path from --usage-db or configuration,
// then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Usage.DB != "" {
		return cfg.Usage.DB, store.EnsureDir(cfg.Usage.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the usage ledger.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
