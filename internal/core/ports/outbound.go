package ports

import (
	"context"
	"time"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

// Document is an opened word-processing document. Offsets are byte offsets
// into Content.
type Document interface {
	Content() string
	Paragraphs() []string
	Tables() []domain.Table
	PageCount() int
	// PageStart returns the content offset where the 1-indexed page begins, or
	// domain.ErrPageNotFound when the document has fewer pages.
	PageStart(page int) (int, error)
	InlinePictures(r domain.TextRange) []string
	TextBoxes(r domain.TextRange) []string
	Close() error
}

// DocumentHost opens documents. Every successful Open must be paired with
// Document.Close.
type DocumentHost interface {
	Open(ctx context.Context, path string) (Document, error)
}

// ReportWriter renders a statistics snapshot to a file.
type ReportWriter interface {
	Write(ctx context.Context, stats domain.Statistics, path string) error
}

// DocumentQueue publishes/consumes document paths for the worker.
type DocumentQueue interface {
	PublishDocumentPath(ctx context.Context, path string) error
	SubscribeDocumentPaths(ctx context.Context, handler func(context.Context, string) error) error
}

// ProcessObserver receives per-document processing events.
type ProcessObserver interface {
	StartDocument()
	FinishDocument(outcome domain.DocumentOutcome, elapsed time.Duration)
}
