package domain

// Family is the layout category of a work-programme document. It is picked
// once per document from its file name and selects the extraction pipeline.
type Family int

const (
	FamilyDefault Family = iota
	FamilyAIUS
	FamilyPIOA
	FamilyTSAU
)

func (f Family) String() string {
	switch f {
	case FamilyAIUS:
		return "aius"
	case FamilyPIOA:
		return "pioa"
	case FamilyTSAU:
		return "tsau"
	default:
		return "default"
	}
}
