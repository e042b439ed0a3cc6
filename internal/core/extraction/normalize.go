// Package extraction holds the positional and textual heuristics that recover
// author, discipline and hours text from an opened document. Every function
// here is free of side effects; an empty string means "not found".
package extraction

import "strings"

const cellTerminator = "\a"

// CleanAuthorName drops the table-cell terminator and anything after the
// first comma (positions, degrees).
func CleanAuthorName(author string) string {
	if author == "" {
		return ""
	}
	author = strings.TrimSpace(strings.ReplaceAll(author, cellTerminator, ""))
	return cutAtComma(author)
}

var disciplineReplacer = strings.NewReplacer(
	`"`, "",
	"«", "",
	"»", "",
	"\r", "",
)

// CleanDisciplineName removes quotation marks and carriage returns.
func CleanDisciplineName(discipline string) string {
	if discipline == "" {
		return ""
	}
	return strings.TrimSpace(disciplineReplacer.Replace(discipline))
}

func cutAtComma(s string) string {
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
