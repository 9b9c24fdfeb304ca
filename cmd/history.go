package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackyw/quizcard/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past quiz runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved quiz runs, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		items, err := s.HistoryRepo().ListAll(context.Background())
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No quizzes saved yet.")
			return nil
		}

		fmt.Printf("%-16s  %-19s  %-30s  %-15s  %s\n",
			"ID", "Date", "Topic", "Mode", "Score")
		fmt.Println(strings.Repeat("─", 96))

		for _, item := range items {
			topic := item.Topic
			if len(topic) > 30 {
				topic = topic[:27] + "..."
			}
			fmt.Printf("%-16s  %-19s  %-30s  %-15s  %d/%d\n",
				item.SessionID,
				item.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				topic,
				item.Mode,
				item.Score,
				item.TotalQuestions,
			)
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one saved quiz run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.HistoryRepo().DeleteByID(context.Background(), args[0]); err != nil {
			return fmt.Errorf("delete history item: %w", err)
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved quiz runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		items, err := s.HistoryRepo().ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		for _, item := range items {
			if err := s.HistoryRepo().DeleteByID(ctx, item.SessionID); err != nil {
				return fmt.Errorf("delete history item %s: %w", item.SessionID, err)
			}
		}
		fmt.Printf("Deleted %d saved quizzes.\n", len(items))
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
