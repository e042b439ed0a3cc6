package extraction

import (
	"strings"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

// AnchorSource exposes the two anchor populations of a document range.
type AnchorSource interface {
	InlinePictures(r domain.TextRange) []string
	TextBoxes(r domain.TextRange) []string
}

// anchorsIn concatenates inline pictures and text boxes, pictures first. The
// sequence is not interleaved by position: the author/discipline selection in
// the pipelines depends on this order.
func anchorsIn(src AnchorSource, r domain.TextRange) []string {
	pictures := src.InlinePictures(r)
	boxes := src.TextBoxes(r)
	out := make([]string, 0, len(pictures)+len(boxes))
	out = append(out, pictures...)
	return append(out, boxes...)
}

func CountAnchors(src AnchorSource, r domain.TextRange) int {
	return len(anchorsIn(src, r))
}

// AnchorText returns the trimmed text of the n-th (1-indexed) anchor, or ""
// when the range holds fewer than n anchors.
func AnchorText(src AnchorSource, r domain.TextRange, n int) string {
	anchors := anchorsIn(src, r)
	if n < 1 || n > len(anchors) {
		return ""
	}
	return strings.TrimSpace(anchors[n-1])
}
