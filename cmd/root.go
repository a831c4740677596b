package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/feprep/internal/logging"
	"github.com/abhisek/feprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "feprep",
	Short: "FE Civil exam practice in the terminal",
	Long: `feprep — practice questions for the FE Civil exam, organized by exam category.

Run without a subcommand to open the dashboard. Questions come from the
built-in set plus a question source: an LLM provider, the local question
bank, or a remote feprep server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		_, err := logging.Setup(os.Stderr, logLevel(cmd))
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides FEPREP_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn or error (overrides FEPREP_LOG_LEVEL)")
	pf.String("source", "", "Question source: llm, bank or http (default llm when configured, else bank)")
	pf.String("source-url", "", "Generate-question endpoint for --source http")
	pf.String("kinds", "multiple-choice,fill-in-blank", "Question kinds generated per attempt, comma separated, or \"all\"")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func logLevel(cmd *cobra.Command) string {
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		return l
	}
	return os.Getenv("FEPREP_LOG_LEVEL")
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FEPREP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
