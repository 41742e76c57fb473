package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modetrail/harmonia/chords"
	"github.com/modetrail/harmonia/scales"
)

func cMajorTable(t *testing.T) []scales.DiatonicChord {
	t.Helper()
	e := NewEngine(scales.NewCatalog(), chords.NewMatcher())
	return e.DiatonicChords(0, false)
}

func TestMatchSymbol_StageEscalation(t *testing.T) {
	table := cMajorTable(t)

	tests := []struct {
		name      string
		symbol    string
		wantChord string
		wantStage string
	}{
		{"exact", "F", "F", "exact"},
		{"case fold", "f", "F", "case"},
		{"surrounding whitespace", " G ", "G", "whitespace"},
		{"inner whitespace", "D m", "Dm", "whitespace"},
		{"degree sign", "B°", "Bdim", "symbols"},
		{"masculine ordinal", "Bº", "Bdim", "structural"}, // NFKC folds º to "o" before the replacer sees it
		{"spelled-out quality", "Cmaj", "C", "structural"},
		{"dash minor", "D-", "Dm", "structural"},
		{"enharmonic root", "A♭", "", "miss"}, // Ab is not diatonic to C
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chord, stage, ok := MatchSymbol(tt.symbol, table)
			if tt.wantStage == "miss" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantChord, chord.Symbol)
			assert.Equal(t, tt.wantStage, stage)
		})
	}
}

func TestMatchSymbol_EnharmonicAcrossSpellings(t *testing.T) {
	// The Aeolian-on-C triad table carries G# for the flat sixth degree;
	// a player typing Ab must still land on it.
	e := NewEngine(scales.NewCatalog(), chords.NewMatcher())
	c := e.Catalog()
	inst, ok := c.ByID("major-C-5")
	require.True(t, ok)

	chord, stage, ok := MatchSymbol("Ab", inst.Chords)
	require.True(t, ok)
	assert.Equal(t, "G#", chord.Symbol)
	assert.Equal(t, "structural", stage)
}

func TestMatchSymbol_EmptyTable(t *testing.T) {
	_, _, ok := MatchSymbol("C", nil)
	assert.False(t, ok)
}

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		symbol      string
		wantRoot    int
		wantQuality string
		ok          bool
	}{
		{"C", 0, "major", true},
		{"Cmaj", 0, "major", true},
		{"f#m", 6, "minor", true},
		{"Bb-", 10, "minor", true},
		{"G♯dim", 8, "diminished", true},
		{"E+", 4, "augmented", true},
		{"Ao", 9, "diminished", true},
		{"", 0, "", false},
		{"H", 0, "", false},
		{"Csus4", 0, "", false}, // quality unknown to the parser
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			root, quality, ok := parseSymbol(tt.symbol)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.wantRoot, root)
				assert.Equal(t, tt.wantQuality, quality)
			}
		})
	}
}

func TestStructuralEqual(t *testing.T) {
	assert.True(t, structuralEqual("Cmaj", "C"))
	assert.True(t, structuralEqual("Db", "C#"))
	assert.True(t, structuralEqual("d-", "Dm"))
	assert.False(t, structuralEqual("C", "Cm"))
	assert.False(t, structuralEqual("Csus4", "Csus4")) // unparsable quality
}

func TestEnharmonicEqual(t *testing.T) {
	// Catches what the structural parser cannot: quality suffixes outside
	// its alias table, compared loosely after sharp respelling of the root
	assert.True(t, enharmonicEqual("A♭sus4", "G#sus4"))
	assert.True(t, enharmonicEqual("Dbm7", "C#m7"))
	assert.False(t, enharmonicEqual("Absus4", "Asus4"))
	assert.False(t, enharmonicEqual("Xsus4", "Csus4"))
	assert.False(t, enharmonicEqual("", "C"))
}

func TestRespellRoot(t *testing.T) {
	got, ok := respellRoot("Ab7")
	require.True(t, ok)
	assert.Equal(t, "G#7", got)

	got, ok = respellRoot("c")
	require.True(t, ok)
	assert.Equal(t, "C", got)

	_, ok = respellRoot("?!")
	assert.False(t, ok)
}
