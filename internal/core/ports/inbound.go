package ports

import (
	"context"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

// DocumentProcessor is the inbound contract for handling one document. Failures
// are reported in the outcome, never returned.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, path string) domain.DocumentOutcome
}

// BatchProcessor processes a selection of documents in order.
type BatchProcessor interface {
	Run(ctx context.Context, paths []string) domain.BatchSummary
}

// StatisticsReader is the read model over the aggregate store.
type StatisticsReader interface {
	AuthorDisciplines() map[string][]string
	DisciplineMentions() map[string]int
	DisciplineHours() map[string]int
	Snapshot() domain.Statistics
}
