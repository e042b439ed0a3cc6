package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kirillkom/syllabus-stats/internal/bootstrap"
	"github.com/kirillkom/syllabus-stats/internal/config"
	"github.com/kirillkom/syllabus-stats/internal/infrastructure/docx"
)

var enqueueCmd = &cobra.Command{
	Use:   "enqueue PATH...",
	Short: "Queue documents for the worker",
	Long:  "Publishes the absolute path of every .doc/.docx file (directories are expanded) to the NATS subject the worker consumes.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEnqueue,
}

func init() {
	rootCmd.AddCommand(enqueueCmd)
}

func runEnqueue(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	app, err := bootstrap.New(cfg, bootstrap.Options{
		Service:      "analyzer",
		ConnectQueue: true,
		LogWriter:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	paths, err := docx.Discover(args)
	if err != nil {
		return err
	}
	queued, err := app.EnqueueUC.Enqueue(cmd.Context(), paths)
	app.Logger.Info("documents_enqueued", "queued", queued, "found", len(paths), "subject", cfg.NATSSubject)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "queued %d of %d documents on %s\n", queued, len(paths), cfg.NATSSubject)
	return nil
}
