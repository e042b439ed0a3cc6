package domain

type AuthorStat struct {
	Author      string   `json:"author"`
	Disciplines []string `json:"disciplines"`
}

type DisciplineStat struct {
	Discipline string `json:"discipline"`
	Mentions   int    `json:"mentions"`
	Hours      int    `json:"hours"`
}

// Statistics is a point-in-time copy of the aggregate store, sorted by name.
type Statistics struct {
	Authors     []AuthorStat     `json:"authors"`
	Disciplines []DisciplineStat `json:"disciplines"`
}

type BatchSummary struct {
	RunID     string            `json:"run_id"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Outcomes  []DocumentOutcome `json:"outcomes"`
	Stats     Statistics        `json:"statistics"`
}
