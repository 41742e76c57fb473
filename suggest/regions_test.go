package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatWeights(base float64) []float64 {
	w := make([]float64, 12)
	for i := range w {
		w[i] = base
	}
	return w
}

func TestDetectCadence_TonicDominantProminent(t *testing.T) {
	e := newTestEngine(t)

	w := flatWeights(1.0)
	w[0] = 1.5 // tonic
	w[7] = 1.4 // dominant
	w[4] = 1.2

	cadence := e.DetectCadence(w, 0)
	require.True(t, cadence.Detected)
	// (1.5 + 1.4) / 13.1, rescaled by 2.5
	assert.InDelta(t, 2.9/13.1*2.5, cadence.Strength, 1e-9)
}

func TestDetectCadence_StrengthCappedAtOne(t *testing.T) {
	e := newTestEngine(t)

	w := flatWeights(0.1)
	w[0] = 1.0
	w[7] = 0.8
	w[4] = 0.5

	cadence := e.DetectCadence(w, 0)
	require.True(t, cadence.Detected)
	assert.Equal(t, 1.0, cadence.Strength)
}

func TestDetectCadence_DominantNotProminent(t *testing.T) {
	e := newTestEngine(t)

	w := flatWeights(1.0)
	w[0] = 1.5
	w[2] = 1.2
	w[4] = 1.3
	w[7] = 0.1

	cadence := e.DetectCadence(w, 0)
	assert.False(t, cadence.Detected)
	assert.Equal(t, 0.0, cadence.Strength)
}

func TestDetectCadence_TonicWraps(t *testing.T) {
	e := newTestEngine(t)

	w := flatWeights(0.1)
	w[0] = 1.0
	w[7] = 0.9

	assert.True(t, e.DetectCadence(w, 12).Detected)
	assert.True(t, e.DetectCadence(w, -12).Detected)
}

func TestDetectCadence_DegenerateInput(t *testing.T) {
	e := newTestEngine(t)

	assert.False(t, e.DetectCadence(nil, 0).Detected)
	assert.False(t, e.DetectCadence(make([]float64, 11), 0).Detected)
	assert.False(t, e.DetectCadence(make([]float64, 12), 0).Detected) // silent
}

func TestClassifyRegion_Stable(t *testing.T) {
	e := newTestEngine(t)

	result := e.ClassifyRegion(KeyCenter{Root: 7, Minor: true}, KeyCenter{Root: 7, Minor: true}, 0.99, Cadence{})
	assert.Equal(t, "stable", result.Type)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
	assert.Empty(t, result.Borrowed)

	// Roots are compared as pitch classes
	result = e.ClassifyRegion(KeyCenter{Root: 12}, KeyCenter{Root: 0}, 0.99, Cadence{})
	assert.Equal(t, "stable", result.Type)
}

func TestClassifyRegion_Modulation(t *testing.T) {
	e := newTestEngine(t)

	// C major to G major, strongly established and cadence-confirmed
	result := e.ClassifyRegion(KeyCenter{Root: 0}, KeyCenter{Root: 7}, 0.9, Cadence{Detected: true, Strength: 0.8})
	assert.Equal(t, "modulation", result.Type)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9) // mean of key and cadence confidence
	assert.Equal(t, []string{"F#"}, result.Borrowed)
}

func TestClassifyRegion_ModulationRequiresCadence(t *testing.T) {
	e := newTestEngine(t)

	// Same key change without cadence confirmation stays a modal shift
	result := e.ClassifyRegion(KeyCenter{Root: 0}, KeyCenter{Root: 7}, 0.9, Cadence{})
	assert.Equal(t, "modal_shift", result.Type)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9) // one borrowed note
	assert.Equal(t, []string{"F#"}, result.Borrowed)

	// A weak cadence is not enough either
	result = e.ClassifyRegion(KeyCenter{Root: 0}, KeyCenter{Root: 7}, 0.9, Cadence{Detected: true, Strength: 0.5})
	assert.Equal(t, "modal_shift", result.Type)
}

func TestClassifyRegion_ParallelMinorShift(t *testing.T) {
	e := newTestEngine(t)

	result := e.ClassifyRegion(KeyCenter{Root: 0}, KeyCenter{Root: 0, Minor: true}, 0.7, Cadence{})
	assert.Equal(t, "modal_shift", result.Type)
	assert.Equal(t, []string{"D#", "G#", "A#"}, result.Borrowed)
	assert.InDelta(t, 0.55, result.Confidence, 1e-9) // three borrowed notes
}

func TestClassifyRegion_ModalShiftConfidenceFloor(t *testing.T) {
	e := newTestEngine(t)

	// C major to F# major borrows five notes; confidence bottoms out at 0.5
	result := e.ClassifyRegion(KeyCenter{Root: 0}, KeyCenter{Root: 6}, 0.7, Cadence{})
	assert.Equal(t, "modal_shift", result.Type)
	assert.Len(t, result.Borrowed, 5)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}

func TestClassifyRegion_RelativeKeysShareEveryNote(t *testing.T) {
	e := newTestEngine(t)

	// A minor holds no notes outside C major, so the shift costs nothing
	result := e.ClassifyRegion(KeyCenter{Root: 0}, KeyCenter{Root: 9, Minor: true}, 0.7, Cadence{})
	assert.Equal(t, "modal_shift", result.Type)
	assert.Empty(t, result.Borrowed)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
}
