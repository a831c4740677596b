package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name  string
		q     Question
		input string
		want  Answer
	}{
		{"mc commas", sameLineMC(), "1,3", Selection{0, 2}},
		{"mc spaces and repeats", sameLineMC(), " 2 2  4 ", Selection{1, 3}},
		{"mc empty", sameLineMC(), "", Selection(nil)},
		{"fib trimmed", distanceFIB(), "  5.0 ", Text("5.0")},
		{"pac lower", beamPAC(), "b", Hotspot("B")},
		{"dnd pairs", soilDnD(), "1=2, 2=1", Matches{"z1": "i2", "z2": "i1"}},
		{"dnd later pair wins", soilDnD(), "1=1;1=2", Matches{"z1": "i2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswer(tt.q, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnswer_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		q     Question
		input string
	}{
		{"mc out of range", sameLineMC(), "5"},
		{"mc zero", sameLineMC(), "0"},
		{"mc word", sameLineMC(), "first"},
		{"pac unknown label", beamPAC(), "E"},
		{"dnd missing equals", soilDnD(), "1-2"},
		{"dnd bad item", soilDnD(), "1=3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnswer(tt.q, tt.input)
			assert.ErrorIs(t, err, ErrBadInput)
		})
	}
}

func TestParseAnswer_RoundTripsThroughEvaluate(t *testing.T) {
	a, err := ParseAnswer(soilDnD(), "1=1,2=2")
	require.NoError(t, err)
	assert.True(t, Evaluate(soilDnD(), a))

	a, err = ParseAnswer(sameLineMC(), "3,1,2")
	require.NoError(t, err)
	assert.True(t, Evaluate(sameLineMC(), a))
}
