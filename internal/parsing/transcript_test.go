package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/renovation-quoter/internal/types"
)

func newDefaultInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	in, err := NewInterpreter(DefaultRules())
	require.NoError(t, err)
	return in
}

func TestParse_FullTranscript(t *testing.T) {
	in := newDefaultInterpreter(t)

	job := in.Parse("Renovate a 5m2 bathroom in Paris: remove old tiles, tiling, replace the toilet")

	assert.Equal(t, "Paris", job.City)
	assert.Equal(t, 5.0, job.SizeM2)
	assert.Equal(t, []types.TaskRequest{
		{Code: types.TaskTileRemoval, MaterialKey: "tile_removal_supplies"},
		{Code: types.TaskTiling, MaterialKey: "tiles"},
		{Code: types.TaskToiletInstallation, MaterialKey: "toilet"},
	}, job.Tasks)
	assert.Equal(t, 1.0, job.Confidence)
}

func TestParse_DeduplicatesByTaskCode(t *testing.T) {
	in := newDefaultInterpreter(t)

	job, matches := in.ParseWithMatches("We need tiling with ceramic floor tiles in a 4 m² room")

	require.Len(t, job.Tasks, 1)
	assert.Equal(t, types.TaskTiling, job.Tasks[0].Code)
	assert.Equal(t, "tiles", job.Tasks[0].MaterialKey)
	assert.Len(t, matches, 2, "both phrases count as matches")
	assert.Equal(t, 4.0, job.SizeM2)
	// 2 matches is below 30% of 12 phrases
	assert.Equal(t, 0.8, job.Confidence)
}

func TestParse_CityDetection(t *testing.T) {
	in := newDefaultInterpreter(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact case", "bathroom in Paris", "Paris"},
		{"upper case", "BATHROOM IN PARIS", "Paris"},
		{"first city in list wins", "moving from Paris to Marseille", "Marseille"},
		{"unknown city falls back", "bathroom in Lyon", "Marseille"},
		{"no city at all", "just a bathroom", "Marseille"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, in.Parse(tt.text).City)
		})
	}
}

func TestParse_AreaExtraction(t *testing.T) {
	in := newDefaultInterpreter(t)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"m2 suffix", "a 12m2 bathroom", 12},
		{"superscript unit", "about 7.5 m² in total", 7.5},
		{"upper case unit", "6 M2 of floor", 6},
		{"first value wins", "3m2 shower and 9m2 floor", 3},
		{"no unit", "a 12 meter bathroom", 0},
		{"no number", "a small bathroom", 0},
		{"arabic-indic digits", "حمام ١٢ m2", 12},
		{"fullwidth digits", "a ４.５m² room", 4.5},
		{"devanagari digits", "about ७ m2", 7},
		{"no-break space before unit", "a 5\u00a0m²", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, in.Parse(tt.text).SizeM2)
		})
	}
}

func TestParse_FuzzyMatchOnShortTranscript(t *testing.T) {
	in := newDefaultInterpreter(t)

	job, matches := in.ParseWithMatches("tilling")

	require.Len(t, job.Tasks, 1)
	assert.Equal(t, types.TaskTiling, job.Tasks[0].Code)
	require.Len(t, matches, 1)
	assert.False(t, matches[0].Exact)
	assert.Greater(t, matches[0].Ratio, 0.75)
	assert.Equal(t, 0.6, job.Confidence)
}

func TestParse_LongTranscriptSuppressesFuzzyMatch(t *testing.T) {
	in := newDefaultInterpreter(t)

	job := in.Parse("We would like some tilling done in the bathroom next month if possible")

	assert.Empty(t, job.Tasks)
}

func TestParse_ConfidenceScoring(t *testing.T) {
	in := newDefaultInterpreter(t)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"everything found", "5m2 in Paris: remove old tiles, tiling, replace the toilet", 1.0},
		{"no area", "in Paris: remove old tiles, tiling, replace the toilet", 0.8},
		{"few matches", "5m2 bathroom, plumbing only", 0.8},
		{"no area and few matches", "plumbing only", 0.6},
		{"area but no tasks", "a 5m2 room, please call me back", 0.4},
		{"nothing found", "Hello, can you call me back tomorrow?", 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := in.Parse(tt.text)
			assert.Equal(t, tt.want, job.Confidence)
			assert.GreaterOrEqual(t, job.Confidence, 0.0)
			assert.LessOrEqual(t, job.Confidence, 1.0)
		})
	}
}

func TestParse_ConfidenceDropsWithFewerSignals(t *testing.T) {
	in := newDefaultInterpreter(t)

	withSignals := in.Parse("a 6m2 bathroom: remove old tiles, tiling, redo the plumbing")
	withoutSignals := in.Parse("please call me back")

	assert.Equal(t, "Marseille", withSignals.City)
	assert.GreaterOrEqual(t, withSignals.Confidence, withoutSignals.Confidence)
}

func TestParse_EmptyTranscript(t *testing.T) {
	in := newDefaultInterpreter(t)

	job := in.Parse("")

	assert.Equal(t, "Marseille", job.City)
	assert.Equal(t, 0.0, job.SizeM2)
	assert.Empty(t, job.Tasks)
	assert.Equal(t, 0.2, job.Confidence)
}

func TestNewInterpreter_Validation(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		field string
	}{
		{
			name:  "missing fallback city",
			rules: Rules{Phrases: DefaultRules().Phrases},
			field: "fallback_city",
		},
		{
			name:  "empty phrase table",
			rules: Rules{FallbackCity: "Paris"},
			field: "phrases",
		},
		{
			name: "blank phrase",
			rules: Rules{FallbackCity: "Paris", Phrases: []PhraseRule{
				{Phrase: "  ", Code: types.TaskTiling, MaterialKey: "tiles"},
			}},
			field: "phrases[0].phrase",
		},
		{
			name: "missing material",
			rules: Rules{FallbackCity: "Paris", Phrases: []PhraseRule{
				{Phrase: "tiling", Code: types.TaskTiling},
			}},
			field: "phrases[0].material",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewInterpreter(tt.rules)
			assert.Nil(t, in)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestNewInterpreter_NormalizesPhrases(t *testing.T) {
	in, err := NewInterpreter(Rules{
		Cities:       []string{"Lyon"},
		FallbackCity: "Lyon",
		Phrases: []PhraseRule{
			{Phrase: " Wall Painting ", Code: types.TaskPainting, MaterialKey: "paint"},
		},
	})
	require.NoError(t, err)

	job := in.Parse("Some wall painting in LYON, 10m2")
	assert.Equal(t, "Lyon", job.City)
	require.Len(t, job.Tasks, 1)
	assert.Equal(t, types.TaskPainting, job.Tasks[0].Code)
	assert.Equal(t, 1.0, job.Confidence)
}

func TestASCIIDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12.5", "12.5"},
		{"٠١٢٣٤٥٦٧٨٩", "0123456789"},
		{"０９", "09"},
		{"𝟎𝟗𝟘𝟡", "0909"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, asciiDigits(tt.input))
		})
	}
}
