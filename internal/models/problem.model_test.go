package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestProblemCatalog(t *testing.T) {
	// The catalog is a fixed contract with the kiosk firmware: exactly codes
	// 1 through 6, every one labeled.
	assert.Len(t, ProblemCatalog, 6)

	for code := 1; code <= 6; code++ {
		assert.True(t, ProblemCode(code).IsValid(), "code %d should be valid", code)
		assert.NotEmpty(t, ProblemCode(code).Label(), "code %d should have a label", code)
	}

	assert.False(t, ProblemCode(0).IsValid())
	assert.False(t, ProblemCode(7).IsValid())
	assert.False(t, ProblemCode(-1).IsValid())
}

func TestRatingProblemHelpers(t *testing.T) {
	clean := Rating{Rating: 5}
	assert.False(t, clean.HasProblems())
	assert.Equal(t, 0, clean.ProblemCount())

	dirty := Rating{
		Rating:   1,
		Problems: datatypes.JSONSlice[int]{int(ProblemNoToiletPaper), int(ProblemSeatDirty)},
	}
	assert.True(t, dirty.HasProblems())
	assert.Equal(t, 2, dirty.ProblemCount())
	assert.True(t, dirty.HasProblem(ProblemNoToiletPaper))
	assert.False(t, dirty.HasProblem(ProblemOther))
}
