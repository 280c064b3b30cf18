package predict

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultDecoding(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		label Label
		conf  Confidence
	}{
		{"strings", `{"prediction":"7","confidence":"93.25"}`, "7", 93.25},
		{"numbers", `{"prediction":4,"confidence":12.5}`, "4", 12.5},
		{"null confidence", `{"prediction":"2","confidence":null}`, "2", 0},
		{"absent confidence", `{"prediction":"2"}`, "2", 0},
		{"garbage confidence", `{"prediction":"9","confidence":"n/a"}`, "9", 0},
		{"suffix", `{"prediction":"9","confidence":"88.1%"}`, "9", 88.1},
		{"padded", `{"prediction":"0","confidence":"  42 "}`, "0", 42},
		{"null label", `{"prediction":null,"confidence":1}`, "", 1},
		{"float label", `{"prediction":7.0,"confidence":1}`, "7", 1},
		{"exponent label", `{"prediction":7e0,"confidence":1}`, "7", 1},
		{"string label kept", `{"prediction":"7.0","confidence":1}`, "7.0", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Result
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			assert.Equal(t, tt.label, r.Prediction)
			assert.InDelta(t, float64(tt.conf), float64(r.Confidence), 1e-9)
		})
	}
}

func TestParseConfidence(t *testing.T) {
	tests := map[string]float64{
		"":       0,
		"abc":    0,
		"-":      0,
		".":      0,
		"50":     50,
		"50.":    50,
		".5":     0.5,
		"-3.5x":  -3.5,
		"1e2":    100,
		"1e":     1,
		"7.25.3": 7.25,
	}
	for in, want := range tests {
		assert.InDelta(t, want, ParseConfidence(in), 1e-9, "input %q", in)
	}
}

func TestSequence(t *testing.T) {
	var s Sequence
	a := s.Next()
	assert.True(t, s.IsCurrent(a))

	b := s.Next()
	assert.False(t, s.IsCurrent(a))
	assert.True(t, s.IsCurrent(b))

	s.Invalidate()
	assert.False(t, s.IsCurrent(b))
}
