package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
	"github.com/kirillkom/syllabus-stats/internal/core/ports"
)

type anchorAt struct {
	text   string
	offset int
}

type documentFake struct {
	content    string
	paragraphs []string
	tables     []domain.Table
	pageStarts []int
	pictures   []anchorAt
	boxes      []anchorAt
	panicMsg   string
	closed     int
}

func (f *documentFake) Content() string { return f.content }

func (f *documentFake) Paragraphs() []string { return f.paragraphs }

func (f *documentFake) Tables() []domain.Table {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.tables
}

func (f *documentFake) PageCount() int { return len(f.pageStarts) }

func (f *documentFake) PageStart(page int) (int, error) {
	if page < 1 || page > len(f.pageStarts) {
		return 0, domain.ErrPageNotFound
	}
	return f.pageStarts[page-1], nil
}

func (f *documentFake) InlinePictures(r domain.TextRange) []string { return filterAnchors(f.pictures, r) }

func (f *documentFake) TextBoxes(r domain.TextRange) []string { return filterAnchors(f.boxes, r) }

func (f *documentFake) Close() error {
	f.closed++
	return nil
}

func filterAnchors(anchors []anchorAt, r domain.TextRange) []string {
	var out []string
	for _, a := range anchors {
		if r.Contains(a.offset) {
			out = append(out, a.text)
		}
	}
	return out
}

type hostFake struct {
	docs   map[string]*documentFake
	opened []string
}

func (h *hostFake) Open(_ context.Context, path string) (ports.Document, error) {
	h.opened = append(h.opened, path)
	doc, ok := h.docs[path]
	if !ok {
		return nil, domain.WrapError(domain.ErrHostFailure, "open "+path, errors.New("file is locked"))
	}
	return doc, nil
}

type observerFake struct {
	started  int
	finished []domain.DocumentOutcome
}

func (o *observerFake) StartDocument() { o.started++ }

func (o *observerFake) FinishDocument(outcome domain.DocumentOutcome, _ time.Duration) {
	o.finished = append(o.finished, outcome)
}

type queueFake struct {
	published []string
	failAfter int
	err       error
}

func (q *queueFake) PublishDocumentPath(_ context.Context, path string) error {
	if q.err != nil && len(q.published) >= q.failAfter {
		return q.err
	}
	q.published = append(q.published, path)
	return nil
}

func (q *queueFake) SubscribeDocumentPaths(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}
