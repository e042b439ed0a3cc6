package usecase

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

// Classify picks the document family from the file name stem. Markers are
// tested case-sensitively in a fixed priority order; the first hit wins.
// Names are NFC-normalised first because some file systems store them
// decomposed.
func Classify(path string, markers domain.FamilyMarkers) domain.Family {
	base := filepath.Base(path)
	stem := norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))

	ordered := []struct {
		marker string
		family domain.Family
	}{
		{markers.AIUS, domain.FamilyAIUS},
		{markers.PIOA, domain.FamilyPIOA},
		{markers.TSAU, domain.FamilyTSAU},
	}
	for _, candidate := range ordered {
		if candidate.marker == "" {
			continue
		}
		if strings.Contains(stem, norm.NFC.String(candidate.marker)) {
			return candidate.family
		}
	}
	return domain.FamilyDefault
}
