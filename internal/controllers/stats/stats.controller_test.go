package statsController

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "rounds half up", input: 12.345, want: 12.35},
		{name: "rounds down", input: 7.344, want: 7.34},
		{name: "integer stays", input: 30, want: 30},
		{name: "zero stays", input: 0, want: 0},
		{name: "no-data sentinel passes through", input: -1, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, roundMinutes(tt.input), 0.0001)
		})
	}
}

func TestRoundTwo(t *testing.T) {
	// Decimal rounding avoids the float drift of math.Round(x*100)/100.
	assert.InDelta(t, 3.67, roundTwo(3.666666), 0.0001)
	assert.InDelta(t, 1.01, roundTwo(1.005), 0.0001)
}
