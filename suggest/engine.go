package suggest

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/modetrail/harmonia/chords"
	"github.com/modetrail/harmonia/logging"
	"github.com/modetrail/harmonia/scales"
	"github.com/modetrail/harmonia/theory"
)

// Suggestion is one ranked scale recommendation. Scales sharing a literal
// pitch-class set (relative modes) are reported as a single combined
// suggestion and never duplicated.
type Suggestion struct {
	Name         string             `json:"name"`
	MatchCount   int                `json:"match_count"`
	Confidence   float64            `json:"confidence"`
	PitchClasses []int              `json:"pitch_classes"`
	Scales       []*scales.Instance `json:"scales"`
	Partial      bool               `json:"partial,omitempty"`
	Detail       string             `json:"detail,omitempty"`
}

// Detection is one entry of the collection-size classification pass
type Detection struct {
	Category  string           `json:"category"` // "pentatonic", "hexatonic", "complete"
	Name      string           `json:"name"`
	Closeness float64          `json:"closeness"`
	Scale     *scales.Instance `json:"scale"`
}

// EngineParams contains parameters for the suggestion engine. The partial
// threshold and degree weights are empirically tuned.
type EngineParams struct {
	MaxSuggestions   int     `json:"max_suggestions"`
	PartialThreshold float64 `json:"partial_threshold"` // minimum played-note coverage
	MaxKeyGuesses    int     `json:"max_key_guesses"`
	TonicWeight      float64 `json:"tonic_weight"`
	DominantWeight   float64 `json:"dominant_weight"` // also subdominant
	OtherWeight      float64 `json:"other_weight"`

	// Cadence detection and region classification thresholds
	CadenceStrengthScale       float64 `json:"cadence_strength_scale"`
	ModulationKeyThreshold     float64 `json:"modulation_key_threshold"`     // minimum local key confidence
	ModulationCadenceThreshold float64 `json:"modulation_cadence_threshold"` // minimum cadence strength
}

// DefaultEngineParams returns the default engine parameters
func DefaultEngineParams() EngineParams {
	return EngineParams{
		MaxSuggestions:   5,
		PartialThreshold: 0.60,
		MaxKeyGuesses:    5,
		TonicWeight:      3,
		DominantWeight:   2,
		OtherWeight:      1,

		CadenceStrengthScale:       2.5,
		ModulationKeyThreshold:     0.80,
		ModulationCadenceThreshold: 0.60,
	}
}

// Engine orchestrates the chord matcher and the scale catalog into
// ranked suggestions, key classification, and key guessing. Its only
// mutable state is the chord history, guarded for concurrent callers.
type Engine struct {
	params  EngineParams
	catalog *scales.Catalog
	matcher *chords.Matcher
	logger  logging.Logger

	mu      sync.Mutex
	history []chords.Match
}

// NewEngine creates a suggestion engine with default parameters. Nil
// collaborators are replaced by defaults so independent engines never
// share state.
func NewEngine(catalog *scales.Catalog, matcher *chords.Matcher) *Engine {
	return NewEngineWithParams(catalog, matcher, DefaultEngineParams())
}

// NewEngineWithParams creates a suggestion engine with custom parameters
func NewEngineWithParams(catalog *scales.Catalog, matcher *chords.Matcher, params EngineParams) *Engine {
	if catalog == nil {
		catalog = scales.NewCatalog()
	}
	if matcher == nil {
		matcher = chords.NewMatcher()
	}
	if params.MaxSuggestions <= 0 {
		params.MaxSuggestions = DefaultEngineParams().MaxSuggestions
	}
	if params.MaxKeyGuesses <= 0 {
		params.MaxKeyGuesses = DefaultEngineParams().MaxKeyGuesses
	}
	return &Engine{
		params:  params,
		catalog: catalog,
		matcher: matcher,
		logger:  logging.WithFields(logging.Fields{"component": "suggestion_engine"}),
	}
}

// Catalog returns the engine's scale catalog
func (e *Engine) Catalog() *scales.Catalog {
	return e.catalog
}

// IdentifyChord identifies chord candidates for raw note numbers
func (e *Engine) IdentifyChord(notes []int) []chords.Match {
	return e.matcher.FindMatches(notes)
}

// AddChord appends a chord to the session history. A symbol already in
// the history is suppressed so the history never holds duplicates.
func (e *Engine) AddChord(match chords.Match) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.history {
		if existing.ChordSymbol == match.ChordSymbol {
			return
		}
	}
	e.history = append(e.history, match)
}

// History returns a snapshot of the chord history
func (e *Engine) History() []chords.Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]chords.Match, len(e.history))
	copy(out, e.history)
	return out
}

// ClearHistory empties the chord history
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
}

// SuggestScales ranks scales against the played notes. Exact matches
// (scale contains every played note) are grouped by their literal
// pitch-class set; when none exist, scales covering at least the partial
// threshold of the played notes are offered instead.
func (e *Engine) SuggestScales(played []int) []Suggestion {
	playedSet := theory.NewSet(played...)
	n := playedSet.Size()
	if n == 0 {
		return nil
	}

	instances := e.catalog.Instances()

	suggestions := e.groupExact(instances, playedSet, n)
	if len(suggestions) == 0 {
		suggestions = e.groupPartial(instances, playedSet, n)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].MatchCount != suggestions[j].MatchCount {
			return suggestions[i].MatchCount > suggestions[j].MatchCount
		}
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > e.params.MaxSuggestions {
		suggestions = suggestions[:e.params.MaxSuggestions]
	}

	e.logger.Debug("scale suggestions computed", logging.Fields{
		"played":      n,
		"suggestions": len(suggestions),
	})

	return suggestions
}

func (e *Engine) groupExact(instances []*scales.Instance, playedSet theory.Set, n int) []Suggestion {
	groups := make(map[theory.Set][]*scales.Instance)
	var order []theory.Set
	for _, inst := range instances {
		if !inst.PitchClasses.ContainsAll(playedSet) {
			continue
		}
		if _, seen := groups[inst.PitchClasses]; !seen {
			order = append(order, inst.PitchClasses)
		}
		groups[inst.PitchClasses] = append(groups[inst.PitchClasses], inst)
	}

	suggestions := make([]Suggestion, 0, len(order))
	for _, key := range order {
		members := groups[key]
		suggestions = append(suggestions, Suggestion{
			Name:         joinNames(members),
			MatchCount:   n,
			Confidence:   1.0,
			PitchClasses: key.PitchClasses(),
			Scales:       members,
		})
	}
	return suggestions
}

func (e *Engine) groupPartial(instances []*scales.Instance, playedSet theory.Set, n int) []Suggestion {
	groups := make(map[theory.Set][]*scales.Instance)
	counts := make(map[theory.Set]int)
	var order []theory.Set
	for _, inst := range instances {
		k := inst.PitchClasses.CountIn(playedSet)
		if float64(k)/float64(n) < e.params.PartialThreshold {
			continue
		}
		if _, seen := groups[inst.PitchClasses]; !seen {
			order = append(order, inst.PitchClasses)
			counts[inst.PitchClasses] = k
		}
		groups[inst.PitchClasses] = append(groups[inst.PitchClasses], inst)
	}

	suggestions := make([]Suggestion, 0, len(order))
	for _, key := range order {
		members := groups[key]
		k := counts[key]
		suggestions = append(suggestions, Suggestion{
			Name:         joinNames(members),
			MatchCount:   k,
			Confidence:   float64(k) / float64(n),
			PitchClasses: key.PitchClasses(),
			Scales:       members,
			Partial:      true,
			Detail:       fmt.Sprintf("Partial match (%d/%d)", k, n),
		})
	}
	return suggestions
}

func joinNames(members []*scales.Instance) string {
	names := make([]string, 0, len(members))
	for _, inst := range members {
		names = append(names, inst.Name)
	}
	return strings.Join(names, " / ")
}

// DetectScaleForms classifies containing scales by collection size:
// pentatonic and hexatonic matches always outrank complete (seven-note
// and larger) scales, with closeness breaking ties inside each bucket.
// Intended for 5- and 6-note played sets, where the short-scale reading
// competes with incomplete seven-note collections.
func (e *Engine) DetectScaleForms(played []int) []Detection {
	playedSet := theory.NewSet(played...)
	n := playedSet.Size()
	if n == 0 {
		return nil
	}

	var detections []Detection
	for _, inst := range e.catalog.Instances() {
		if !inst.PitchClasses.ContainsAll(playedSet) {
			continue
		}
		size := len(inst.Intervals)
		category := "complete"
		switch size {
		case 5:
			category = "pentatonic"
		case 6:
			category = "hexatonic"
		}
		detections = append(detections, Detection{
			Category:  category,
			Name:      inst.Name,
			Closeness: float64(n) / float64(size),
			Scale:     inst,
		})
	}

	sort.SliceStable(detections, func(i, j int) bool {
		ri, rj := categoryRank(detections[i].Category), categoryRank(detections[j].Category)
		if ri != rj {
			return ri < rj
		}
		return detections[i].Closeness > detections[j].Closeness
	})

	return detections
}

func categoryRank(category string) int {
	if category == "complete" {
		return 1
	}
	return 0
}
