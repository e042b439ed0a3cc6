package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
	"github.com/kirillkom/syllabus-stats/internal/core/ports"
)

type BatchUseCase struct {
	processor ports.DocumentProcessor
	stats     ports.StatisticsReader
	logger    *slog.Logger
}

func NewBatchUseCase(processor ports.DocumentProcessor, stats ports.StatisticsReader, logger *slog.Logger) *BatchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchUseCase{processor: processor, stats: stats, logger: logger}
}

// Run processes paths in order. Cancellation is honoured between documents,
// never in the middle of one.
func (uc *BatchUseCase) Run(ctx context.Context, paths []string) domain.BatchSummary {
	summary := domain.BatchSummary{
		RunID:    uuid.NewString(),
		Outcomes: make([]domain.DocumentOutcome, 0, len(paths)),
	}
	logger := uc.logger.With("run_id", summary.RunID)
	logger.Info("batch_started", "documents", len(paths))

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			logger.Warn("batch_cancelled", "remaining", len(paths)-i, "error", err)
			break
		}
		outcome := uc.processor.ProcessDocument(ctx, path)
		summary.Processed++
		if outcome.Failed() {
			summary.Failed++
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	summary.Stats = uc.stats.Snapshot()
	logger.Info("batch_finished",
		"processed", summary.Processed,
		"failed", summary.Failed,
		"authors", len(summary.Stats.Authors),
		"disciplines", len(summary.Stats.Disciplines),
	)
	return summary
}
