// Package parsing interprets renovation transcripts into structured jobs using
// substring and fuzzy phrase matching.
package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/renovation-quoter/internal/mathutil"
	"github.com/jonathan/renovation-quoter/internal/types"
)

// Confidence penalties
const (
	missingAreaPenalty    = 0.2
	fewMatchesPenalty     = 0.2
	noMatchesPenalty      = 0.4
	minMatchedPhraseShare = 0.3
)

// Digits and spaces follow Unicode, so "٥ m²" and "5\u00a0m2" both count
var areaPattern = regexp.MustCompile(`(\p{Nd}+(?:\.\p{Nd}+)?)[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*(?:m²|m2)`)

// Interpreter extracts city, area, tasks and a confidence score from transcripts
type Interpreter struct {
	rules Rules
}

// NewInterpreter validates the rules and returns an Interpreter over them
func NewInterpreter(rules Rules) (*Interpreter, error) {
	normalized, err := rules.validate()
	if err != nil {
		return nil, err
	}
	return &Interpreter{rules: normalized}, nil
}

// Match records which phrases fired for a transcript
type Match struct {
	Rule  PhraseRule
	Exact bool
	Ratio float64
}

// Parse interprets a transcript. It never fails; ambiguity lowers the confidence.
func (in *Interpreter) Parse(text string) types.ParsedJob {
	job, _ := in.ParseWithMatches(text)
	return job
}

// ParseWithMatches interprets a transcript and also returns every phrase match
func (in *Interpreter) ParseWithMatches(text string) (types.ParsedJob, []Match) {
	normalized := Normalize(text)

	size := extractArea(normalized)
	city := in.extractCity(normalized)
	matches := in.matchPhrases(normalized)
	tasks := dedupeTasks(matches)

	return types.ParsedJob{
		City:       city,
		SizeM2:     size,
		Tasks:      tasks,
		Confidence: in.confidence(size, len(matches)),
	}, matches
}

// Normalize case-folds a transcript for matching
func Normalize(text string) string {
	return strings.ToLower(text)
}

// extractArea returns the first "<number> m²" or "<number>m2" value, or 0
func extractArea(normalized string) float64 {
	m := areaPattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0
	}
	size, err := strconv.ParseFloat(asciiDigits(m[1]), 64)
	if err != nil {
		return 0
	}
	return size
}

// asciiDigits maps every decimal digit to 0-9. Decimal digits are encoded in
// contiguous runs that start at zero, so the offset from the run start gives
// the value.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII || !unicode.Is(unicode.Nd, r) {
			return r
		}
		zero := r
		for unicode.Is(unicode.Nd, zero-1) {
			zero--
		}
		return '0' + (r-zero)%10
	}, s)
}

func (in *Interpreter) extractCity(normalized string) string {
	for _, city := range in.rules.Cities {
		if city != "" && strings.Contains(normalized, strings.ToLower(city)) {
			return city
		}
	}
	return in.rules.FallbackCity
}

// matchPhrases compares each phrase with the whole transcript, not with a window of it
func (in *Interpreter) matchPhrases(normalized string) []Match {
	var matches []Match
	for _, rule := range in.rules.Phrases {
		exact := strings.Contains(normalized, rule.Phrase)
		ratio := Ratio(rule.Phrase, normalized)
		if exact || ratio > in.rules.FuzzyThreshold {
			matches = append(matches, Match{Rule: rule, Exact: exact, Ratio: ratio})
		}
	}
	return matches
}

// dedupeTasks keeps the first match per task code, in phrase-table order
func dedupeTasks(matches []Match) []types.TaskRequest {
	tasks := make([]types.TaskRequest, 0, len(matches))
	seen := make(map[types.TaskCode]bool)
	for _, m := range matches {
		if seen[m.Rule.Code] {
			continue
		}
		seen[m.Rule.Code] = true
		tasks = append(tasks, types.TaskRequest{Code: m.Rule.Code, MaterialKey: m.Rule.MaterialKey})
	}
	return tasks
}

func (in *Interpreter) confidence(size float64, matched int) float64 {
	confidence := 1.0
	if size == 0 {
		confidence -= missingAreaPenalty
	}
	if float64(matched) < float64(len(in.rules.Phrases))*minMatchedPhraseShare {
		confidence -= fewMatchesPenalty
	}
	if matched == 0 {
		confidence -= noMatchesPenalty
	}
	return mathutil.Round2(mathutil.Clamp(confidence, 0, 1))
}
