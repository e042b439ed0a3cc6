package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kirillkom/syllabus-stats/internal/bootstrap"
	"github.com/kirillkom/syllabus-stats/internal/config"
	"github.com/kirillkom/syllabus-stats/internal/core/domain"
	"github.com/kirillkom/syllabus-stats/internal/infrastructure/docx"
)

var scanCmd = &cobra.Command{
	Use:   "scan PATH...",
	Short: "Process documents and print aggregated statistics",
	Long:  "Processes .doc/.docx files one by one (directories are expanded) and prints the batch summary as JSON. With --report the statistics are also written to an XLSX workbook.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

var (
	scanReportPath string
	scanProfile    string
	scanOutcomes   bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanReportPath, "report", "r", "", "Write an XLSX report to this path (overrides REPORT_PATH)")
	scanCmd.Flags().StringVar(&scanProfile, "profile", "", "YAML layout profile (overrides LAYOUT_PROFILE_PATH)")
	scanCmd.Flags().BoolVar(&scanOutcomes, "outcomes", false, "Include per-document outcomes in the output")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if scanProfile != "" {
		cfg.LayoutProfilePath = scanProfile
	}
	if scanReportPath != "" {
		cfg.ReportPath = scanReportPath
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg, bootstrap.Options{Service: "analyzer", LogWriter: cmd.ErrOrStderr()})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	paths, err := docx.Discover(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no .doc or .docx files found")
	}

	summary := app.BatchUC.Run(ctx, paths)
	if cfg.ReportPath != "" {
		if err := app.Report.Write(context.WithoutCancel(ctx), summary.Stats, cfg.ReportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		app.Logger.Info("report_written", "path", cfg.ReportPath)
	}
	return printSummary(cmd.OutOrStdout(), summary, scanOutcomes)
}

func printSummary(w io.Writer, summary domain.BatchSummary, withOutcomes bool) error {
	if !withOutcomes {
		summary.Outcomes = nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(summary)
}
