package models

// ProblemCode identifies one entry of the fixed problem catalog shared by the
// rating form and the cleaner panel. Codes are stable wire values.
type ProblemCode int

const (
	ProblemNoToiletPaper ProblemCode = iota + 1
	ProblemNoSoap
	ProblemNoNapkins
	ProblemTrashFull
	ProblemSeatDirty
	ProblemOther
)

// ProblemCatalog maps each reportable problem code to its human label.
// Read-only, process-wide.
var ProblemCatalog = map[ProblemCode]string{
	ProblemNoToiletPaper: "No toilet paper",
	ProblemNoSoap:        "No soap",
	ProblemNoNapkins:     "No napkins",
	ProblemTrashFull:     "Trash bin full",
	ProblemSeatDirty:     "Toilet seat dirty",
	ProblemOther:         "Other",
}

func (p ProblemCode) IsValid() bool {
	_, ok := ProblemCatalog[p]
	return ok
}

func (p ProblemCode) Label() string {
	return ProblemCatalog[p]
}
