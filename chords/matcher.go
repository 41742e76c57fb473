package chords

import (
	"sort"

	"github.com/modetrail/harmonia/logging"
	"github.com/modetrail/harmonia/theory"
)

// Match is one ranked chord interpretation of a note set. Matches are
// built fresh per call and never mutated afterwards.
type Match struct {
	ChordSymbol     string   `json:"chord_symbol"`
	ChordName       string   `json:"chord_name"`
	Root            int      `json:"root"`
	RootName        string   `json:"root_name"`
	Intervals       []int    `json:"intervals"`
	Confidence      float64  `json:"confidence"`
	Inversion       string   `json:"inversion"`
	BassNote        int      `json:"bass_note"`
	IsPartial       bool     `json:"is_partial"`
	MissingNotes    []string `json:"missing_notes,omitempty"`
	Completion      string   `json:"completion_suggestion,omitempty"`
	PedagogicalNote string   `json:"pedagogical_note,omitempty"`
}

// MatcherParams contains parameters for chord matching. The penalty and
// bonus values are empirically tuned.
type MatcherParams struct {
	MaxMatches       int     `json:"max_matches"`        // result cap
	ExtraNotePenalty float64 `json:"extra_note_penalty"` // per unexpected pitch class
	ExactMatchBonus  float64 `json:"exact_match_bonus"`  // no extras, exact size
}

// DefaultMatcherParams returns the default matching parameters
func DefaultMatcherParams() MatcherParams {
	return MatcherParams{
		MaxMatches:       5,
		ExtraNotePenalty: 0.08,
		ExactMatchBonus:  0.10,
	}
}

// Matcher turns raw note sets into ranked chord candidates
type Matcher struct {
	params MatcherParams
	logger logging.Logger
}

// NewMatcher creates a chord matcher with default parameters
func NewMatcher() *Matcher {
	return NewMatcherWithParams(DefaultMatcherParams())
}

// NewMatcherWithParams creates a chord matcher with custom parameters
func NewMatcherWithParams(params MatcherParams) *Matcher {
	if params.MaxMatches <= 0 {
		params.MaxMatches = DefaultMatcherParams().MaxMatches
	}
	return &Matcher{
		params: params,
		logger: logging.WithFields(logging.Fields{"component": "chord_matcher"}),
	}
}

// FindMatches identifies chord candidates for a set of raw note numbers.
// Only the pitch class of each note matters for matching; the numerically
// lowest raw value determines the bass. Fewer than two distinct pitch
// classes yields an empty result. The result is sorted by descending
// confidence and capped.
func (m *Matcher) FindMatches(notes []int) []Match {
	if len(notes) == 0 {
		return nil
	}

	distinct := theory.DistinctPitchClasses(notes)
	if len(distinct) < 2 {
		return nil
	}

	bass := notes[0]
	for _, n := range notes[1:] {
		if n < bass {
			bass = n
		}
	}
	bassPC := theory.PitchClass(bass)

	var rule TriadRule
	var hasRule bool
	if len(distinct) == 3 {
		rule, hasRule = OverrideFor(TriadKey{distinct[0], distinct[1], distinct[2]})
	}

	var matches []Match
	for _, root := range distinct {
		if hasRule {
			forced := false
			for _, reading := range rule.Readings {
				if reading.Root != root {
					continue
				}
				forced = true
				if tpl, ok := TemplateByID(reading.TemplateID); ok {
					matches = append(matches, m.buildMatch(tpl, root, bassPC, len(distinct), clamp(reading.Confidence)))
				}
			}
			if forced {
				continue
			}
		}

		intervals := theory.Set(0)
		for _, pc := range distinct {
			intervals = intervals.Add(theory.Interval(root, pc))
		}

		for _, tpl := range templates {
			if tpl.MinNotes > len(distinct) {
				continue
			}
			if hasRule && rule.SuppressSuspended && suspendedTemplate(tpl) {
				continue
			}
			if !intervals.ContainsAll(theory.NewSet(tpl.Intervals...)) {
				continue
			}

			matched := len(tpl.Intervals) // superset test guarantees full coverage
			base := tpl.Confidence
			if base == 0 {
				base = float64(matched) / float64(len(tpl.Intervals))
			}

			extras := len(distinct) - len(tpl.Intervals)
			confidence := base - m.params.ExtraNotePenalty*float64(extras)
			if extras == 0 {
				confidence += m.params.ExactMatchBonus
			}

			matches = append(matches, m.buildMatch(tpl, root, bassPC, len(distinct), clamp(confidence)))
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	if len(matches) > m.params.MaxMatches {
		matches = matches[:m.params.MaxMatches]
	}

	m.logger.Debug("chord matching complete", logging.Fields{
		"distinct": len(distinct),
		"matches":  len(matches),
	})

	return matches
}

func (m *Matcher) buildMatch(tpl Template, root, bassPC, noteCount int, confidence float64) Match {
	rootName := theory.NoteName(root)
	symbol := rootName + tpl.Symbol

	inversion := ""
	if bassPC != root {
		inversion = "/" + theory.NoteName(bassPC)
		symbol += inversion
	}

	match := Match{
		ChordSymbol: symbol,
		ChordName:   tpl.Name,
		Root:        root,
		RootName:    rootName,
		Intervals:   append([]int(nil), tpl.Intervals...),
		Confidence:  confidence,
		Inversion:   inversion,
		BassNote:    bassPC,
		IsPartial:   tpl.Partial || noteCount < 3,
	}

	if len(tpl.Missing) > 0 {
		match.MissingNotes = make([]string, 0, len(tpl.Missing))
		for _, iv := range tpl.Missing {
			match.MissingNotes = append(match.MissingNotes, theory.NoteName(root+iv))
		}
		match.Completion = tpl.Completion
	}
	if note, ok := pedagogicalNotes[tpl.ID]; ok {
		match.PedagogicalNote = note
	}

	return match
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
