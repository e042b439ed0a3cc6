package extraction

import "github.com/kirillkom/syllabus-stats/internal/core/domain"

// PageSource is the part of a document needed to derive page-bounded ranges.
type PageSource interface {
	Content() string
	PageStart(page int) (int, error)
}

func wholeRange(doc PageSource) domain.TextRange {
	return domain.TextRange{Start: 0, End: len(doc.Content())}
}

// FirstPageRange ends one character before page 2 starts. Documents without
// a reachable second page fall back to the whole content.
func FirstPageRange(doc PageSource) domain.TextRange {
	secondStart, err := doc.PageStart(2)
	if err != nil {
		return wholeRange(doc)
	}
	return domain.TextRange{Start: 0, End: max(0, secondStart-1)}
}

// SecondPageRange spans from the start of page 2 to the start of page 3, or
// to the end of the content when there is no third page.
func SecondPageRange(doc PageSource) domain.TextRange {
	start, err := doc.PageStart(2)
	if err != nil {
		return wholeRange(doc)
	}
	end, err := doc.PageStart(3)
	if err != nil {
		end = len(doc.Content())
	}
	return domain.TextRange{Start: start, End: max(start, end)}
}
