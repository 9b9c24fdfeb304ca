package cmd

import (
	"fmt"
	"os"

	"github.com/jackyw/quizcard/internal/quiz"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template [file]",
	Short: "Write an example question file for importing",
	Long:  "Writes a small example question file. Fill it in with your own questions and import it from the home screen.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "quizcard-template.json"
		if len(args) == 1 {
			path = args[0]
		}

		data, err := quiz.Template()
		if err != nil {
			return fmt.Errorf("build template: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write template: %w", err)
		}
		fmt.Println("Template written to", path)
		return nil
	},
}
