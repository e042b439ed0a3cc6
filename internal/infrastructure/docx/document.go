package docx

import (
	"errors"
	"fmt"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

var errClosed = errors.New("document already closed")

// Document is an opened .docx file held fully in memory.
type Document struct {
	path      string
	m         *model
	starts    []int
	pageCount int
	closed    bool
}

func newDocument(path string, m *model, declaredPages int) *Document {
	starts := m.pageStarts()
	return &Document{
		path:      path,
		m:         m,
		starts:    starts,
		pageCount: max(len(starts), declaredPages),
	}
}

func (d *Document) Content() string { return d.m.content }

func (d *Document) Paragraphs() []string { return d.m.paragraphs }

func (d *Document) Tables() []domain.Table { return d.m.tables }

// PageCount is the larger of the page starts found in the markup and the
// page count Word stored in docProps/app.xml.
func (d *Document) PageCount() int { return d.pageCount }

// PageStart returns the content offset of the 1-indexed page. Pages counted
// by Word but without a known break in the markup are not addressable.
func (d *Document) PageStart(page int) (int, error) {
	if page < 1 || page > len(d.starts) {
		return 0, domain.WrapError(domain.ErrPageNotFound, "page start", fmt.Errorf("page %d of %d known", page, len(d.starts)))
	}
	return d.starts[page-1], nil
}

func (d *Document) InlinePictures(r domain.TextRange) []string { return within(d.m.pictures, r) }

func (d *Document) TextBoxes(r domain.TextRange) []string { return within(d.m.boxes, r) }

func (d *Document) Close() error {
	if d.closed {
		return fmt.Errorf("close %s: %w", d.path, errClosed)
	}
	d.closed = true
	return nil
}

func within(anchors []anchor, r domain.TextRange) []string {
	var texts []string
	for _, a := range anchors {
		if r.Contains(a.offset) {
			texts = append(texts, a.text)
		}
	}
	return texts
}
