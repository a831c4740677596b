package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/feprep/internal/app"
	"github.com/abhisek/feprep/internal/logging"
	"github.com/abhisek/feprep/internal/questiongen"
	"github.com/abhisek/feprep/internal/screens/practice"
	"github.com/abhisek/feprep/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dir, err := store.DataDir()
	if err != nil {
		return err
	}
	logFile, err := logging.OpenFile(filepath.Join(dir, "feprep.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()
	if _, err := logging.Setup(logFile, logLevel(cmd)); err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	kinds, err := kindsFlag(cmd)
	if err != nil {
		return err
	}

	opts := app.Options{QuestionRepo: st.QuestionRepo()}
	src, label, err := buildSource(cmd, st)
	if err != nil {
		return fmt.Errorf("question source: %w", err)
	}
	slog.Info("starting dashboard", "source", label, "kinds", kinds)
	opts.Practice = practice.Options{
		Generator: questiongen.NewOrchestrator(src),
		Kinds:     kinds,
	}

	return app.Run(opts)
}
