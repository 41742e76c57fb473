package suggest

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/modetrail/harmonia/theory"
)

// Region classification constants. The stable confidence and the
// per-borrowed-note penalty are empirically tuned.
const (
	stableConfidence  = 0.95
	modalShiftPenalty = 0.15
	modalShiftFloor   = 0.5
)

// Cadence reports tonic-dominant harmonic prominence in a weight vector
type Cadence struct {
	Detected bool    `json:"detected"`
	Strength float64 `json:"strength"`
}

// KeyCenter names a key by tonic pitch class and mode
type KeyCenter struct {
	Root  int  `json:"root"`
	Minor bool `json:"minor"`
}

// RegionClassification relates a local key reading to the global key
type RegionClassification struct {
	Type       string   `json:"type"` // "stable", "modulation", "modal_shift"
	Confidence float64  `json:"confidence"`
	Borrowed   []string `json:"borrowed"`
}

// DetectCadence looks for V-I (or V-i) prominence in a 12-bin pitch-class
// weight vector: both the tonic and its dominant must rank among the three
// most prominent bins. Strength is their combined share of the total
// energy, rescaled and capped at 1. A missing or near-silent vector yields
// no detection.
func (e *Engine) DetectCadence(weights []float64, tonic int) Cadence {
	if len(weights) != 12 || floats.Norm(weights, 2) < 1e-6 {
		return Cadence{}
	}

	tonic = theory.PitchClass(tonic)
	dominant := theory.PitchClass(tonic + 7)

	idx := make([]int, 12)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return weights[idx[i]] < weights[idx[j]]
	})

	tonicTop, dominantTop := false, false
	for _, pc := range idx[9:] {
		if pc == tonic {
			tonicTop = true
		}
		if pc == dominant {
			dominantTop = true
		}
	}
	if !tonicTop || !dominantTop {
		return Cadence{}
	}

	strength := (weights[tonic] + weights[dominant]) / floats.Sum(weights)
	strength *= e.params.CadenceStrengthScale
	if strength > 1 {
		strength = 1
	}
	return Cadence{Detected: true, Strength: strength}
}

// ClassifyRegion classifies a local key reading against the global key:
// stable (same key), modulation (the local key is strongly established
// and cadence-confirmed), or modal shift (borrowed harmony without a full
// key change). Borrowed lists the local key's pitch classes absent from
// the global key.
func (e *Engine) ClassifyRegion(global, local KeyCenter, localConfidence float64, cadence Cadence) RegionClassification {
	global.Root = theory.PitchClass(global.Root)
	local.Root = theory.PitchClass(local.Root)

	if global == local {
		return RegionClassification{Type: "stable", Confidence: stableConfidence, Borrowed: []string{}}
	}

	globalSet := e.keyPitchClasses(global)
	localSet := e.keyPitchClasses(local)

	borrowed := []string{}
	for pc := 0; pc < 12; pc++ {
		if localSet.Contains(pc) && !globalSet.Contains(pc) {
			borrowed = append(borrowed, theory.NoteName(pc))
		}
	}

	if localConfidence > e.params.ModulationKeyThreshold &&
		cadence.Detected && cadence.Strength > e.params.ModulationCadenceThreshold {
		return RegionClassification{
			Type:       "modulation",
			Confidence: localConfidence*0.5 + cadence.Strength*0.5,
			Borrowed:   borrowed,
		}
	}

	confidence := 1.0 - modalShiftPenalty*float64(len(borrowed))
	if confidence < modalShiftFloor {
		confidence = modalShiftFloor
	}
	return RegionClassification{
		Type:       "modal_shift",
		Confidence: confidence,
		Borrowed:   borrowed,
	}
}

// keyPitchClasses resolves a key center to its scale collection: the
// Ionian instance for major keys, the Aeolian (natural minor) instance
// for minor keys.
func (e *Engine) keyPitchClasses(k KeyCenter) theory.Set {
	mode := 0
	if k.Minor {
		mode = 5
	}
	inst, ok := e.catalog.ByID(fmt.Sprintf("major-%s-%d", theory.NoteName(k.Root), mode))
	if !ok {
		return theory.Set(0)
	}
	return inst.PitchClasses
}
