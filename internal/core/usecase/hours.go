package usecase

import (
	"github.com/kirillkom/syllabus-stats/internal/core/domain"
	"github.com/kirillkom/syllabus-stats/internal/core/extraction"
	"github.com/kirillkom/syllabus-stats/internal/core/ports"
)

// hoursDiscipline derives the discipline again for the hours pass. The rules
// differ from the field strategies: PIOA only looks at the second anchor and
// the default family picks the third/second anchor without the count-1 branch
// or the logo skip used for the author. Both derivations are kept as they are.
func hoursDiscipline(family domain.Family, doc ports.Document, profile domain.LayoutProfile) string {
	var discipline string
	switch family {
	case domain.FamilyAIUS, domain.FamilyTSAU:
		discipline = headerDiscipline(doc, profile)
	case domain.FamilyPIOA:
		if doc.PageCount() > 0 {
			discipline = extraction.AnchorText(doc, extraction.FirstPageRange(doc), 2)
		}
	default:
		if doc.PageCount() > 0 {
			firstPage := extraction.FirstPageRange(doc)
			switch count := extraction.CountAnchors(doc, firstPage); {
			case count >= 3:
				discipline = extraction.AnchorText(doc, firstPage, 3)
			case count == 2:
				discipline = extraction.AnchorText(doc, firstPage, 2)
			default:
				discipline = headerDiscipline(doc, profile)
			}
		}
	}
	return extraction.CleanDisciplineName(discipline)
}

// extractHours returns the discipline the hours belong to and the hour count.
// AIUS and TSAU programmes keep hours in a table on page two; the others
// mention them in the second page's text.
func extractHours(family domain.Family, doc ports.Document, profile domain.LayoutProfile) (string, int) {
	discipline := hoursDiscipline(family, doc, profile)
	if discipline == "" {
		return "", 0
	}

	pages := doc.PageCount()
	switch {
	case pages < 2:
		return discipline, 0
	case family == domain.FamilyAIUS || family == domain.FamilyTSAU:
		return discipline, extraction.HoursFromTable(doc.Tables())
	default:
		secondPage := extraction.SecondPageRange(doc)
		return discipline, extraction.FindAcademicHours(secondPage.Slice(doc.Content()))
	}
}
