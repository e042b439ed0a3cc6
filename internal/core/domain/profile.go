package domain

// LayoutProfile carries the literal markers the heuristics look for. The
// defaults match the department's work-programme templates; a YAML file may
// override any list.
type LayoutProfile struct {
	FamilyMarkers     FamilyMarkers `yaml:"family_markers"`
	AuthorLabel       string        `yaml:"author_label"`
	TableAuthorKey    string        `yaml:"table_author_keyword"`
	DisciplineMarkers []string      `yaml:"discipline_markers"`
	ProgramMarkers    []string      `yaml:"program_markers"`
}

type FamilyMarkers struct {
	AIUS string `yaml:"aius"`
	PIOA string `yaml:"pioa"`
	TSAU string `yaml:"tsau"`
}

func DefaultLayoutProfile() LayoutProfile {
	return LayoutProfile{
		FamilyMarkers: FamilyMarkers{
			AIUS: "РП АИУС",
			PIOA: "РП ПиОА",
			TSAU: "РП ТСАУ",
		},
		AuthorLabel:    "Автор:",
		TableAuthorKey: "автор",
		DisciplineMarkers: []string{
			"(название дисциплины)",
			"(вид практики)",
			"(название)",
		},
		ProgramMarkers: []string{
			"РАБОЧАЯ ПРОГРАММА УЧЕБНОЙ ДИСЦИПЛИНЫ",
			"РАБОЧАЯ УЧЕБНАЯ ПРОГРАММА ПО ДИСЦИПЛИНЕ",
			"ПРОГРАММА ПРАКТИКИ",
		},
	}
}

// WithDefaults fills empty fields from DefaultLayoutProfile.
func (p LayoutProfile) WithDefaults() LayoutProfile {
	def := DefaultLayoutProfile()
	if p.FamilyMarkers.AIUS == "" {
		p.FamilyMarkers.AIUS = def.FamilyMarkers.AIUS
	}
	if p.FamilyMarkers.PIOA == "" {
		p.FamilyMarkers.PIOA = def.FamilyMarkers.PIOA
	}
	if p.FamilyMarkers.TSAU == "" {
		p.FamilyMarkers.TSAU = def.FamilyMarkers.TSAU
	}
	if p.AuthorLabel == "" {
		p.AuthorLabel = def.AuthorLabel
	}
	if p.TableAuthorKey == "" {
		p.TableAuthorKey = def.TableAuthorKey
	}
	if len(p.DisciplineMarkers) == 0 {
		p.DisciplineMarkers = def.DisciplineMarkers
	}
	if len(p.ProgramMarkers) == 0 {
		p.ProgramMarkers = def.ProgramMarkers
	}
	return p
}
