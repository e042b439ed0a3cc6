package extraction

import "strings"

// DisciplineFromHeader finds the first discipline marker present in text and
// returns the line leading up to it. When that line carries a programme title
// only the remainder after the title is kept. Later markers are not tried once
// one is found.
func DisciplineFromHeader(text string, disciplineMarkers, programMarkers []string) string {
	discipline := ""
	for _, marker := range disciplineMarkers {
		if marker == "" {
			continue
		}
		idx := strings.Index(text, marker)
		if idx < 0 {
			continue
		}

		lineStart := strings.LastIndexByte(text[:idx], '\n')
		if lineStart < 0 {
			lineStart = 0
		}
		line := strings.TrimSpace(text[lineStart:idx])

		for _, program := range programMarkers {
			if program == "" {
				continue
			}
			if pos := strings.Index(line, program); pos >= 0 {
				discipline = strings.TrimSpace(line[pos+len(program):])
				break
			}
		}
		if discipline == "" {
			discipline = line
		}
		break
	}
	return strings.TrimSpace(strings.ReplaceAll(discipline, "\r", ""))
}
