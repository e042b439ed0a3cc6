package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
	"github.com/kirillkom/syllabus-stats/internal/core/ports"
)

type EnqueueDocumentsUseCase struct {
	queue ports.DocumentQueue
}

func NewEnqueueDocumentsUseCase(queue ports.DocumentQueue) *EnqueueDocumentsUseCase {
	return &EnqueueDocumentsUseCase{queue: queue}
}

// Enqueue publishes absolute document paths for the worker. It stops at the
// first publish error and reports how many paths were queued before it.
func (uc *EnqueueDocumentsUseCase) Enqueue(ctx context.Context, paths []string) (int, error) {
	queued := 0
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			return queued, domain.WrapError(domain.ErrInvalidInput, "enqueue document", errors.New("empty path"))
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return queued, domain.WrapError(domain.ErrInvalidInput, "enqueue document", err)
		}
		if err := uc.queue.PublishDocumentPath(ctx, abs); err != nil {
			return queued, fmt.Errorf("publish document path: %w", err)
		}
		queued++
	}
	return queued, nil
}
