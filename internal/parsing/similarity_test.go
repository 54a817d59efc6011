package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "tiling", "tiling", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "tiling", "", 0.0},
		{"disjoint", "abc", "xyz", 0.0},
		{"shifted", "abcd", "bcde", 0.75},
		{"typo", "tiling", "tilling", 12.0 / 13.0},
		{"multibyte characters", "m²", "m²", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRatio_PhraseAgainstLongText(t *testing.T) {
	text := "we would like the whole bathroom redone including tiling and a new vanity"
	assert.Less(t, Ratio("tiling", text), DefaultFuzzyThreshold)
}
