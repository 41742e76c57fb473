package suggest

import (
	"github.com/modetrail/harmonia/scales"
	"github.com/modetrail/harmonia/theory"
)

// Major-key diatonic triad pattern: scale-degree roots and qualities.
// The minor-key table is not built independently; it is the relative
// major's table rotated to start on the sixth degree.
var (
	majorDegreeOffsets = [7]int{0, 2, 4, 5, 7, 9, 11}
	majorQualities     = [7]string{"major", "minor", "minor", "major", "major", "minor", "diminished"}
	majorRomans        = [7]string{"I", "ii", "iii", "IV", "V", "vi", "vii°"}
	minorRomans        = [7]string{"i", "ii°", "III", "iv", "v", "VI", "VII"}

	qualitySuffixes = map[string]string{
		"major":      "",
		"minor":      "m",
		"diminished": "dim",
	}
)

// DiatonicChords derives the seven diatonic triads of a key
func (e *Engine) DiatonicChords(keyRoot int, minor bool) []scales.DiatonicChord {
	if minor {
		relative := e.DiatonicChords(theory.PitchClass(keyRoot+3), false)
		table := make([]scales.DiatonicChord, 7)
		for i := 0; i < 7; i++ {
			chord := relative[(5+i)%7]
			chord.Degree = i + 1
			chord.Roman = minorRomans[i]
			table[i] = chord
		}
		return table
	}

	table := make([]scales.DiatonicChord, 7)
	for i := 0; i < 7; i++ {
		root := theory.PitchClass(keyRoot + majorDegreeOffsets[i])
		quality := majorQualities[i]
		table[i] = scales.DiatonicChord{
			Degree:   i + 1,
			Roman:    majorRomans[i],
			Root:     root,
			RootName: theory.NoteName(root),
			Symbol:   theory.NoteName(root) + qualitySuffixes[quality],
			Quality:  quality,
		}
	}
	return table
}

// BorrowedSource names a parallel mode that explains a non-diatonic chord
type BorrowedSource struct {
	Mode    string `json:"mode"`
	ScaleID string `json:"scale_id"`
	Roman   string `json:"roman"`
	Degree  int    `json:"degree"`
}

// RelatedKeyMatch names a related key center that explains a chord
type RelatedKeyMatch struct {
	Key      string `json:"key"`
	Relation string `json:"relation"`
	Roman    string `json:"roman"`
	Degree   int    `json:"degree"`
	Symbol   string `json:"symbol"`
}

// Classification relates a chord symbol to a key center
type Classification struct {
	Symbol          string           `json:"symbol"`
	Key             string           `json:"key"`
	Type            string           `json:"type"` // "diatonic", "borrowed", "related", "unknown"
	Roman           string           `json:"roman,omitempty"`
	Degree          int              `json:"degree,omitempty"`
	MatchedSymbol   string           `json:"matched_symbol,omitempty"`
	MatchedBy       string           `json:"matched_by,omitempty"` // comparator stage
	BorrowedSources []BorrowedSource `json:"borrowed_sources,omitempty"`
	RelatedKey      *RelatedKeyMatch `json:"related_key,omitempty"`
}

// relatedCenters are the five key centers tested, in order, when a chord
// matches neither the home key nor any parallel mode.
var relatedCenters = []struct {
	offset   int
	minor    bool
	relation string
}{
	{7, false, "dominant"},
	{5, false, "subdominant"},
	{9, true, "relative minor"},
	{2, true, "supertonic"},
	{4, true, "mediant"},
}

// ClassifyChord classifies a chord symbol against a key center:
// diatonic to the key, borrowed from a parallel mode on the same tonic,
// or belonging to one of the five related keys. Unresolvable symbols
// classify as unknown rather than failing.
func (e *Engine) ClassifyChord(symbol string, keyRoot int, minor bool) Classification {
	keyRoot = theory.PitchClass(keyRoot)
	result := Classification{
		Symbol: symbol,
		Key:    keyLabel(keyRoot, minor),
		Type:   "unknown",
	}

	if chord, stage, ok := MatchSymbol(symbol, e.DiatonicChords(keyRoot, minor)); ok {
		result.Type = "diatonic"
		result.Roman = chord.Roman
		result.Degree = chord.Degree
		result.MatchedSymbol = chord.Symbol
		result.MatchedBy = stage
		return result
	}

	if sources := e.borrowedSources(symbol, keyRoot, minor); len(sources) > 0 {
		result.Type = "borrowed"
		result.BorrowedSources = sources
		return result
	}

	if related := e.relatedKeyMatch(symbol, keyRoot); related != nil {
		result.Type = "related"
		result.RelatedKey = related
	}
	return result
}

// borrowedSources scans every parallel mode sharing the key's tonic for
// a diatonic reading of the chord, reporting each explaining mode.
func (e *Engine) borrowedSources(symbol string, keyRoot int, minor bool) []BorrowedSource {
	homeMode := 0 // Ionian
	if minor {
		homeMode = 5 // Aeolian
	}

	parallels := e.catalog.FilteredScales(scales.Filter{
		Root:     &keyRoot,
		FamilyID: "major",
	})

	var sources []BorrowedSource
	for _, inst := range parallels {
		if inst.ModeIndex == homeMode {
			continue
		}
		if chord, _, ok := MatchSymbol(symbol, inst.Chords); ok {
			sources = append(sources, BorrowedSource{
				Mode:    inst.ModeName,
				ScaleID: inst.ID,
				Roman:   chord.Roman,
				Degree:  chord.Degree,
			})
		}
	}
	return sources
}

func (e *Engine) relatedKeyMatch(symbol string, keyRoot int) *RelatedKeyMatch {
	for _, center := range relatedCenters {
		root := theory.PitchClass(keyRoot + center.offset)
		if chord, _, ok := MatchSymbol(symbol, e.DiatonicChords(root, center.minor)); ok {
			return &RelatedKeyMatch{
				Key:      keyLabel(root, center.minor),
				Relation: center.relation,
				Roman:    chord.Roman,
				Degree:   chord.Degree,
				Symbol:   chord.Symbol,
			}
		}
	}
	return nil
}

func keyLabel(root int, minor bool) string {
	if minor {
		return theory.NoteName(root) + " minor"
	}
	return theory.NoteName(root) + " major"
}
