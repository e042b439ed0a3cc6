package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
	"github.com/kirillkom/syllabus-stats/internal/core/ports"
)

// FieldRecorder is the write side of the aggregate store.
type FieldRecorder interface {
	RecordAuthorDiscipline(author, discipline string)
	RecordDisciplineMention(discipline string)
	RecordDisciplineHours(discipline string, hours int)
}

type ProcessDocumentUseCase struct {
	host     ports.DocumentHost
	recorder FieldRecorder
	profile  domain.LayoutProfile
	observer ports.ProcessObserver
	logger   *slog.Logger

	// mu keeps processing sequential when several surfaces (HTTP, queue)
	// share one use case.
	mu sync.Mutex
}

func NewProcessDocumentUseCase(
	host ports.DocumentHost,
	recorder FieldRecorder,
	profile domain.LayoutProfile,
	observer ports.ProcessObserver,
	logger *slog.Logger,
) *ProcessDocumentUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessDocumentUseCase{
		host:     host,
		recorder: recorder,
		profile:  profile.WithDefaults(),
		observer: observer,
		logger:   logger,
	}
}

// ProcessDocument extracts and records the fields of one document. The
// document is released on every exit path; failures end up in the outcome.
func (uc *ProcessDocumentUseCase) ProcessDocument(ctx context.Context, path string) domain.DocumentOutcome {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	family := Classify(path, uc.profile.FamilyMarkers)
	outcome := domain.DocumentOutcome{Path: path, Family: family.String()}

	start := time.Now()
	uc.observer.StartDocument()

	err := uc.withDocument(ctx, path, func(doc ports.Document) {
		uc.extractAndRecord(family, doc, &outcome)
	})
	if err != nil {
		outcome.Err = err
		outcome.Error = err.Error()
	}
	elapsed := time.Since(start)
	uc.observer.FinishDocument(outcome, elapsed)

	if outcome.Failed() {
		uc.logger.Warn("document_failed",
			"path", path,
			"family", outcome.Family,
			"duration_ms", float64(elapsed.Microseconds())/1000.0,
			"error", err,
		)
		return outcome
	}
	uc.logger.Info("document_processed",
		"path", path,
		"family", outcome.Family,
		"recorded", outcome.Recorded,
		"author", outcome.Fields.Author,
		"discipline", outcome.Fields.Discipline,
		"hours", outcome.Fields.Hours,
		"duration_ms", float64(elapsed.Microseconds())/1000.0,
	)
	return outcome
}

func (uc *ProcessDocumentUseCase) extractAndRecord(family domain.Family, doc ports.Document, outcome *domain.DocumentOutcome) {
	fields, applied := strategyFor(family)(doc, uc.profile)
	if applied {
		uc.recorder.RecordAuthorDiscipline(fields.Author, fields.Discipline)
		uc.recorder.RecordDisciplineMention(fields.Discipline)
		outcome.Recorded = true
		outcome.Fields.Author = fields.Author
		outcome.Fields.Discipline = fields.Discipline
	}

	discipline, hours := extractHours(family, doc, uc.profile)
	uc.recorder.RecordDisciplineHours(discipline, hours)
	outcome.HoursDiscipline = discipline
	outcome.Fields.Hours = hours
}

// withDocument scopes a document to fn. A panic inside the heuristics is
// turned into a host failure so the batch can continue.
func (uc *ProcessDocumentUseCase) withDocument(ctx context.Context, path string, fn func(ports.Document)) (err error) {
	doc, err := uc.host.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer func() {
		if closeErr := doc.Close(); closeErr != nil {
			uc.logger.Warn("document_close_failed", "path", path, "error", closeErr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			err = domain.WrapError(domain.ErrHostFailure, "extract fields", fmt.Errorf("panic: %v", r))
		}
	}()

	fn(doc)
	return nil
}

type noopObserver struct{}

func (noopObserver) StartDocument() {}

func (noopObserver) FinishDocument(domain.DocumentOutcome, time.Duration) {}
