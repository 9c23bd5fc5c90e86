package models

import (
	"gorm.io/datatypes"
)

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating is a visitor-submitted quality score plus optional problem tags for a
// toilet. Rows are immutable once written and ordered by CreatedAt.
type Rating struct {
	BaseModel
	ToiletID  int                      `gorm:"not null;index:idx_ratings_toilet_created" json:"toilet_id"`
	Toilet    *Toilet                  `gorm:"foreignKey:ToiletID"                       json:"-"`
	Rating    int                      `gorm:"not null"                                  json:"rating"`
	Problems  datatypes.JSONSlice[int] `gorm:"type:jsonb"                                json:"problems"`
	OtherText string                   `gorm:"type:text"                                 json:"other_text"`
}

// HasProblems reports whether the rating carries at least one problem tag.
func (r *Rating) HasProblems() bool {
	return len(r.Problems) > 0
}

func (r *Rating) ProblemCount() int {
	return len(r.Problems)
}

// HasProblem reports whether a specific catalog code was tagged.
func (r *Rating) HasProblem(code ProblemCode) bool {
	for _, p := range r.Problems {
		if ProblemCode(p) == code {
			return true
		}
	}
	return false
}
