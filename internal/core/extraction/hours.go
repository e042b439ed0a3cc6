package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// whitespace also covers the vertical tab (manual line break), NEL and
// Unicode space separators such as NBSP, which RE2's \s leaves out.
const whitespace = `[\s\v\x{85}\p{Z}]`

var (
	paddedNumberPattern = regexp.MustCompile(`[_\s\v\x{85}\p{Z}]+(\d+)[_\s\v\x{85}\p{Z}]+`)

	// The hour word is consumed together with one boundary character instead
	// of being matched by lookahead. Neither ever contains a digit, so the set
	// of digit runs found is the same.
	academicHoursPattern = regexp.MustCompile(
		`(?i)(\d+)` + whitespace + `*(?:академических` + whitespace + `*)?час[аов]+(?:[^\p{L}\p{N}_]|$)`,
	)

	examTokenPattern   = regexp.MustCompile(`(?i)(зачёт|зачет|экз|зкз)[.-]*` + whitespace + `*`)
	leadingMarkPattern = regexp.MustCompile(`^[.-]` + whitespace + `*`)
)

// NormalizeHoursText joins soft-wrapped words, flattens line breaks and
// surrounds digit runs padded with underscores by single spaces.
func NormalizeHoursText(text string) string {
	text = strings.ReplaceAll(text, "-\r\n", "")
	text = strings.ReplaceAll(text, "-\n", "")
	text = strings.ReplaceAll(text, "-\r", "")
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "  ", " ")
	return paddedNumberPattern.ReplaceAllString(text, " ${1} ")
}

// FindAcademicHours returns the number in front of the last "N часов" style
// mention in text, or 0 when there is none.
func FindAcademicHours(text string) int {
	matches := academicHoursPattern.FindAllStringSubmatch(NormalizeHoursText(text), -1)
	if len(matches) == 0 {
		return 0
	}
	hours, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return 0
	}
	return hours
}

// SumHourLines adds up every line of a table cell that is a plain integer
// once exam/pass annotations are stripped. Lines that still fail to parse are
// skipped.
func SumHourLines(cellText string) int {
	lines := strings.FieldsFunc(cellText, func(r rune) bool {
		return r == '\r' || r == '\n'
	})

	total := 0
	for _, line := range lines {
		clean := strings.TrimSpace(line)
		clean = strings.TrimSpace(examTokenPattern.ReplaceAllString(clean, ""))
		clean = strings.TrimSpace(leadingMarkPattern.ReplaceAllString(clean, ""))
		if value, err := strconv.Atoi(clean); err == nil {
			total += value
		}
	}
	return total
}
