package parsing

import (
	"fmt"
	"strings"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// PhraseRule maps a transcript phrase to the task it signals
type PhraseRule struct {
	Phrase      string
	Code        types.TaskCode
	MaterialKey string
}

// Rules is the immutable configuration of the transcript interpreter.
// Cities and Phrases are scanned in order.
type Rules struct {
	Cities       []string
	FallbackCity string
	Phrases      []PhraseRule
	// FuzzyThreshold is the similarity ratio a phrase must exceed against the whole transcript
	FuzzyThreshold float64
}

// DefaultFuzzyThreshold is the similarity ratio above which a phrase counts as present
const DefaultFuzzyThreshold = 0.75

// DefaultRules returns the built-in city list and phrase table
func DefaultRules() Rules {
	return Rules{
		Cities:       []string{"Marseille", "Paris"},
		FallbackCity: "Marseille",
		Phrases: []PhraseRule{
			{"remove old tiles", types.TaskTileRemoval, "tile_removal_supplies"},
			{"tile removal", types.TaskTileRemoval, "tile_removal_supplies"},
			{"tiling", types.TaskTiling, "tiles"},
			{"ceramic floor tiles", types.TaskTiling, "tiles"},
			{"redo the plumbing", types.TaskPlumbing, "plumbing_kit"},
			{"plumbing", types.TaskPlumbing, "plumbing_kit"},
			{"replace the toilet", types.TaskToiletInstallation, "toilet"},
			{"toilet", types.TaskToiletInstallation, "toilet"},
			{"install a vanity", types.TaskVanityInstallation, "vanity"},
			{"vanity", types.TaskVanityInstallation, "vanity"},
			{"repaint the walls", types.TaskPainting, "paint"},
			{"painting", types.TaskPainting, "paint"},
		},
		FuzzyThreshold: DefaultFuzzyThreshold,
	}
}

// validate checks the rule set and returns a normalized copy
func (r Rules) validate() (Rules, error) {
	if strings.TrimSpace(r.FallbackCity) == "" {
		return Rules{}, &ValidationError{Field: "fallback_city", Message: "fallback city is required"}
	}
	if len(r.Phrases) == 0 {
		return Rules{}, &ValidationError{Field: "phrases", Message: "phrase table is empty"}
	}

	out := Rules{
		Cities:         append([]string(nil), r.Cities...),
		FallbackCity:   r.FallbackCity,
		Phrases:        make([]PhraseRule, 0, len(r.Phrases)),
		FuzzyThreshold: r.FuzzyThreshold,
	}
	if out.FuzzyThreshold <= 0 {
		out.FuzzyThreshold = DefaultFuzzyThreshold
	}

	for i, p := range r.Phrases {
		phrase := strings.ToLower(strings.TrimSpace(p.Phrase))
		if phrase == "" {
			return Rules{}, &ValidationError{Field: fmt.Sprintf("phrases[%d].phrase", i), Message: "phrase is required"}
		}
		if p.Code == "" {
			return Rules{}, &ValidationError{Field: fmt.Sprintf("phrases[%d].code", i), Message: "task code is required"}
		}
		if p.MaterialKey == "" {
			return Rules{}, &ValidationError{Field: fmt.Sprintf("phrases[%d].material", i), Message: "material key is required"}
		}
		out.Phrases = append(out.Phrases, PhraseRule{Phrase: phrase, Code: p.Code, MaterialKey: p.MaterialKey})
	}

	return out, nil
}
