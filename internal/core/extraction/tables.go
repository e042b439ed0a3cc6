package extraction

import (
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

const (
	authorTableIndex = 2
	hoursTableIndex  = 3
	hoursCellRow     = 3
	hoursCellColumn  = 2
)

// AuthorFromParagraphs returns the text after the colon of the first
// paragraph starting with label, cut at the first comma.
func AuthorFromParagraphs(paragraphs []string, label string) string {
	for _, paragraph := range paragraphs {
		text := strings.TrimSpace(paragraph)
		if !hasPrefixFold(text, label) {
			continue
		}
		author := strings.TrimSpace(text[strings.IndexByte(text, ':')+1:])
		return cutAtComma(author)
	}
	return ""
}

// AuthorFromTable scans the second table for a row whose first cell mentions
// keyword and returns the cleaned second cell of that row.
func AuthorFromTable(tables []domain.Table, keyword string) string {
	if len(tables) < authorTableIndex || keyword == "" {
		return ""
	}
	needle := strings.ToLower(keyword)
	for _, row := range tables[authorTableIndex-1].Rows {
		if len(row) == 0 {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(row[0]))
		if !strings.Contains(label, needle) {
			continue
		}
		if len(row) < 2 {
			return ""
		}
		return CleanAuthorName(strings.TrimSpace(row[1]))
	}
	return ""
}

// HoursFromTable sums the hour lines of cell (3,2) in the third table.
func HoursFromTable(tables []domain.Table) int {
	if len(tables) < hoursTableIndex {
		return 0
	}
	cell, ok := tables[hoursTableIndex-1].Cell(hoursCellRow, hoursCellColumn)
	if !ok {
		return 0
	}
	return SumHourLines(cell)
}

func hasPrefixFold(s, prefix string) bool {
	if prefix == "" {
		return true
	}
	n := utf8.RuneCountInString(prefix)
	end := 0
	for i := 0; i < n; i++ {
		if end >= len(s) {
			return false
		}
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	return strings.EqualFold(s[:end], prefix)
}
