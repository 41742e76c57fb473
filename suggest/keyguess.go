package suggest

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/modetrail/harmonia/scales"
	"github.com/modetrail/harmonia/theory"
)

// KeyCandidate scores one candidate key against the chord history
type KeyCandidate struct {
	Key        string           `json:"key"`
	Root       int              `json:"root"`
	MatchCount int              `json:"match_count"`
	Confidence float64          `json:"confidence"`
	Scale      *scales.Instance `json:"scale,omitempty"` // backing Ionian instance
}

// KeyGuessResult ranks candidate keys and classifies the most recent
// chord against the winner.
type KeyGuessResult struct {
	Candidates []KeyCandidate  `json:"candidates"`
	Current    *Classification `json:"current,omitempty"`
}

// GuessKeys scores each of the twelve major keys against the accumulated
// chord history. Tonic matches weigh heaviest, dominant and subdominant
// next, anything else least; the table is recomputed in full on every
// call. The most recent chord is classified against the top-ranked key.
func (e *Engine) GuessKeys() KeyGuessResult {
	history := e.History()
	if len(history) == 0 {
		return KeyGuessResult{}
	}

	var candidates []KeyCandidate
	for root := 0; root < 12; root++ {
		table := e.DiatonicChords(root, false)

		confidence := 0.0
		matchCount := 0
		for _, chord := range history {
			match, _, ok := MatchSymbol(chord.ChordSymbol, table)
			if !ok {
				continue
			}
			matchCount++
			switch match.Degree {
			case 1:
				confidence += e.params.TonicWeight
			case 4, 5:
				confidence += e.params.DominantWeight
			default:
				confidence += e.params.OtherWeight
			}
		}
		if matchCount == 0 {
			continue
		}

		backing, _ := e.catalog.ByID(fmt.Sprintf("major-%s-0", theory.NoteName(root)))
		candidates = append(candidates, KeyCandidate{
			Key:        keyLabel(root, false),
			Root:       root,
			MatchCount: matchCount,
			Confidence: confidence,
			Scale:      backing,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].MatchCount > candidates[j].MatchCount
	})
	if len(candidates) > e.params.MaxKeyGuesses {
		candidates = candidates[:e.params.MaxKeyGuesses]
	}

	result := KeyGuessResult{Candidates: candidates}
	if len(candidates) > 0 {
		latest := history[len(history)-1]
		classification := e.ClassifyChord(latest.ChordSymbol, candidates[0].Root, false)
		result.Current = &classification
	}
	return result
}

// Krumhansl-Schmuckler key profiles: average perceived stability of each
// pitch class relative to a tonal center, from probe-tone experiments.
var ksProfiles = map[string][]float64{
	"major": {6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88},
	"minor": {6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17},
}

// modeNamesByProfile maps a winning profile to its church-mode name
var modeNamesByProfile = map[string]string{
	"major": "Ionian",
	"minor": "Aeolian",
}

// ProfileKeyResult is the best-correlating key for a weight vector
type ProfileKeyResult struct {
	Key        string  `json:"key"`
	Tonic      string  `json:"tonic"`
	Mode       string  `json:"mode"` // church-mode name of the winning profile
	Confidence float64 `json:"confidence"`
}

// ProfileKey finds the best-fitting key for a 12-bin pitch-class weight
// vector by Pearson correlation against the Krumhansl-Schmuckler
// profiles at every transposition. Confidence is the winning correlation
// rescaled from [-1,1] to [0,1]. A missing or near-silent vector yields
// no result.
func (e *Engine) ProfileKey(weights []float64) (ProfileKeyResult, bool) {
	if len(weights) != 12 || floats.Norm(weights, 2) < 1e-6 {
		return ProfileKeyResult{}, false
	}

	best := ProfileKeyResult{Confidence: -1}
	for tonic := 0; tonic < 12; tonic++ {
		for _, profileName := range []string{"major", "minor"} {
			profile := ksProfiles[profileName]
			rotated := make([]float64, 12)
			for i, v := range profile {
				rotated[(i+tonic)%12] = v
			}

			r := stat.Correlation(weights, rotated, nil)
			if r != r { // NaN for constant input
				continue
			}
			confidence := (r + 1) / 2

			if confidence > best.Confidence {
				tonicName := theory.NoteName(tonic)
				best = ProfileKeyResult{
					Key:        tonicName + " " + profileName,
					Tonic:      tonicName,
					Mode:       modeNamesByProfile[profileName],
					Confidence: confidence,
				}
			}
		}
	}

	if best.Confidence < 0 {
		return ProfileKeyResult{}, false
	}
	return best, true
}
