package cmd

import (
	"fmt"
	"os"

	"github.com/jackyw/quizcard/internal/app"
	"github.com/jackyw/quizcard/internal/llm"
	"github.com/jackyw/quizcard/internal/quizgen"
	"github.com/jackyw/quizcard/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		HistoryRepo: st.HistoryRepo(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation and answer grading will be unavailable.")
	} else {
		svc := quizgen.New(provider, quizgen.DefaultConfig())
		opts.Generator = svc
		opts.Evaluator = svc
	}

	return app.Run(opts)
}
