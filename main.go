package main

import (
	"os"

	"github.com/jackyw/quizcard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
