package domain

// TextRange is a pair of byte offsets into a document's content. Anchor
// membership is inclusive on both ends.
type TextRange struct {
	Start int
	End   int
}

func (r TextRange) Contains(offset int) bool {
	return offset >= r.Start && offset <= r.End
}

// Slice returns the part of content covered by the range, clamped to the
// content bounds.
func (r TextRange) Slice(content string) string {
	start := max(0, min(r.Start, len(content)))
	end := max(start, min(r.End, len(content)))
	return content[start:end]
}

// Table is a grid of cell texts in row order.
type Table struct {
	Rows [][]string
}

// Cell returns the text at the 1-indexed row and column.
func (t Table) Cell(row, col int) (string, bool) {
	if row < 1 || row > len(t.Rows) {
		return "", false
	}
	cells := t.Rows[row-1]
	if col < 1 || col > len(cells) {
		return "", false
	}
	return cells[col-1], true
}

// ExtractedFields is what one pipeline recovered from one document. Empty
// strings mean the field was not found.
type ExtractedFields struct {
	Author     string `json:"author,omitempty"`
	Discipline string `json:"discipline,omitempty"`
	Hours      int    `json:"hours,omitempty"`
}

// DocumentOutcome describes how a single document was handled.
type DocumentOutcome struct {
	Path            string          `json:"path"`
	Family          string          `json:"family"`
	Recorded        bool            `json:"recorded"`
	Fields          ExtractedFields `json:"fields"`
	HoursDiscipline string          `json:"hours_discipline,omitempty"`
	Error           string          `json:"error,omitempty"`
	Err             error           `json:"-"`
}

func (o DocumentOutcome) Failed() bool {
	return o.Err != nil
}
