package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
	"github.com/kirillkom/syllabus-stats/internal/core/ports"
	"github.com/kirillkom/syllabus-stats/internal/infrastructure/resilience"
)

const (
	documentPart = "word/document.xml"
	appPart      = "docProps/app.xml"
)

type Options struct {
	Executor *resilience.Executor
	Logger   *slog.Logger
}

// Host opens Word documents from the local file system.
type Host struct {
	executor *resilience.Executor
	logger   *slog.Logger
}

func NewHost(options Options) *Host {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{executor: options.Executor, logger: logger}
}

func (h *Host) Open(ctx context.Context, path string) (ports.Document, error) {
	op := "open " + path
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
	case ".doc":
		return nil, domain.WrapError(domain.ErrHostFailure, op,
			domain.WrapError(domain.ErrUnsupportedFormat, "detect format", errors.New("legacy binary .doc")))
	default:
		return nil, domain.WrapError(domain.ErrHostFailure, op,
			domain.WrapError(domain.ErrUnsupportedFormat, "detect format", fmt.Errorf("extension %q", filepath.Ext(path))))
	}

	doc, err := resilience.Call(ctx, h.executor, "docx.open", func(context.Context) (*Document, error) {
		return load(path)
	}, classifyOpenError)
	if err != nil {
		return nil, domain.WrapError(domain.ErrHostFailure, op, err)
	}
	h.logger.Debug("document_opened",
		"path", path,
		"pages", doc.PageCount(),
		"paragraphs", len(doc.Paragraphs()),
		"tables", len(doc.Tables()),
	)
	return doc, nil
}

func load(path string) (*Document, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer archive.Close()

	part, err := archive.Open(documentPart)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	m, err := parseDocumentXML(part)
	part.Close()
	if err != nil {
		return nil, err
	}

	return newDocument(path, m, declaredPages(archive)), nil
}

// declaredPages reads <Pages> from the extended properties part. The value
// is whatever Word computed on the last save; 0 when absent.
func declaredPages(archive *zip.ReadCloser) int {
	part, err := archive.Open(appPart)
	if err != nil {
		return 0
	}
	defer part.Close()

	var props struct {
		Pages int `xml:"Pages"`
	}
	if err := xml.NewDecoder(part).Decode(&props); err != nil {
		return 0
	}
	return max(props.Pages, 0)
}

// classifyOpenError retries files that are busy or still being written.
// Only resource exhaustion counts against the breaker. Missing, broken or
// malformed files are per-document failures and never trip it.
func classifyOpenError(err error) resilience.Verdict {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resilience.Verdict{}
	case errors.Is(err, syscall.EBUSY),
		errors.Is(err, syscall.EAGAIN),
		errors.Is(err, syscall.EMFILE):
		return resilience.Verdict{Retry: true, CountFailed: true}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return resilience.Verdict{Retry: true}
	default:
		return resilience.Verdict{}
	}
}
