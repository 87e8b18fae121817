package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/quizpix/quizpix/internal/llm"
	"github.com/quizpix/quizpix/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizpix",
	Short: "Turn exam images into typed quiz questions",
	Long: "Quizpix extracts multiple-choice questions and answer keys from exam-page\n" +
		"images via vision models, and bulk-generates reading-comprehension tests.",
	SilenceUsage: true,
}

func Execute() error {
	// Populate the environment from a local .env, when present.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZPIX_DB env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(answersCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the CLI logger honoring --verbose.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then QUIZPIX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the bundle/event database for a command.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

// newProvider builds the configured provider wrapped with logging, and
// hands back the store so callers can close it. The store may be nil if
// it could not be opened; provider calls then go unrecorded.
func newProvider(cmd *cobra.Command, ctx context.Context, logger *slog.Logger) (llm.Provider, *store.Store, error) {
	base, err := llm.NewProviderFromEnv(ctx)
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore(cmd)
	if err != nil {
		logger.Warn("event store unavailable, provider calls will not be recorded", "err", err)
		return llm.WithLogging(base, logger, nil), nil, nil
	}

	return llm.WithLogging(base, logger, st.EventRepo()), st, nil
}
