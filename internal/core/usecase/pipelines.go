package usecase

import (
	"github.com/kirillkom/syllabus-stats/internal/core/domain"
	"github.com/kirillkom/syllabus-stats/internal/core/extraction"
	"github.com/kirillkom/syllabus-stats/internal/core/ports"
)

// fieldStrategy recovers author and discipline from one document. The bool
// reports whether the strategy applied at all; strategies guarded by a page
// count record nothing on empty documents.
type fieldStrategy func(doc ports.Document, profile domain.LayoutProfile) (domain.ExtractedFields, bool)

func strategyFor(family domain.Family) fieldStrategy {
	switch family {
	case domain.FamilyAIUS:
		return extractAIUS
	case domain.FamilyPIOA:
		return extractPIOA
	case domain.FamilyTSAU:
		return extractTSAU
	default:
		return extractDefault
	}
}

func headerDiscipline(doc ports.Document, profile domain.LayoutProfile) string {
	return extraction.DisciplineFromHeader(doc.Content(), profile.DisciplineMarkers, profile.ProgramMarkers)
}

// extractAIUS reads the "Автор:" paragraph and the title page header. The
// discipline is kept as the header matcher returns it.
func extractAIUS(doc ports.Document, profile domain.LayoutProfile) (domain.ExtractedFields, bool) {
	return domain.ExtractedFields{
		Author:     extraction.AuthorFromParagraphs(doc.Paragraphs(), profile.AuthorLabel),
		Discipline: headerDiscipline(doc, profile),
	}, true
}

func extractPIOA(doc ports.Document, _ domain.LayoutProfile) (domain.ExtractedFields, bool) {
	if doc.PageCount() <= 0 {
		return domain.ExtractedFields{}, false
	}
	firstPage := extraction.FirstPageRange(doc)
	return domain.ExtractedFields{
		Author:     extraction.CleanAuthorName(extraction.AnchorText(doc, firstPage, 1)),
		Discipline: extraction.CleanDisciplineName(extraction.AnchorText(doc, firstPage, 2)),
	}, true
}

func extractTSAU(doc ports.Document, profile domain.LayoutProfile) (domain.ExtractedFields, bool) {
	if doc.PageCount() <= 0 {
		return domain.ExtractedFields{}, false
	}
	firstPage := extraction.FirstPageRange(doc)
	return domain.ExtractedFields{
		Author:     extraction.CleanAuthorName(extraction.AnchorText(doc, firstPage, 1)),
		Discipline: extraction.CleanDisciplineName(headerDiscipline(doc, profile)),
	}, true
}

// extractDefault branches on the number of first-page anchors. With three or
// more anchors the first one is a logo and is skipped. Missing fields fall
// back to the second table and to the header.
func extractDefault(doc ports.Document, profile domain.LayoutProfile) (domain.ExtractedFields, bool) {
	if doc.PageCount() <= 0 {
		return domain.ExtractedFields{}, false
	}
	firstPage := extraction.FirstPageRange(doc)

	var fields domain.ExtractedFields
	switch count := extraction.CountAnchors(doc, firstPage); {
	case count == 1:
		fields.Author = extraction.CleanAuthorName(extraction.AnchorText(doc, firstPage, 1))
	case count == 2:
		fields.Author = extraction.CleanAuthorName(extraction.AnchorText(doc, firstPage, 1))
		fields.Discipline = extraction.CleanDisciplineName(extraction.AnchorText(doc, firstPage, 2))
	case count >= 3:
		fields.Author = extraction.CleanAuthorName(extraction.AnchorText(doc, firstPage, 2))
		fields.Discipline = extraction.CleanDisciplineName(extraction.AnchorText(doc, firstPage, 3))
	}

	if fields.Author == "" {
		fields.Author = extraction.AuthorFromTable(doc.Tables(), profile.TableAuthorKey)
	}
	if fields.Discipline == "" {
		fields.Discipline = extraction.CleanDisciplineName(headerDiscipline(doc, profile))
	}
	return fields, true
}
