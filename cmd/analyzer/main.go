// Command analyzer extracts authors, disciplines and academic hours from
// work-programme documents.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "analyzer",
	Short:         "Work-programme statistics",
	Long:          "Reads Word work-programme documents, extracts author, discipline and academic hours, and aggregates them per author and per discipline.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
