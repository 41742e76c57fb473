package chords

// Template describes one chord shape as a set of defining intervals from
// the root. Templates with Confidence == 0 derive their base confidence
// from interval coverage at match time; a non-zero value pins it.
// Partial templates describe reduced voicings (shells, omitted fifths)
// and carry completion metadata for the caller to surface.
type Template struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"` // suffix appended to the root name
	Name       string  `json:"name"`
	Intervals  []int   `json:"intervals"`
	MinNotes   int     `json:"min_notes"`
	Confidence float64 `json:"confidence,omitempty"`
	Partial    bool    `json:"partial,omitempty"`
	Missing    []int   `json:"missing,omitempty"` // intervals absent from the full voicing
	Completion string  `json:"completion,omitempty"`
}

// templates is the fixed chord catalog, loaded once. Order is only a
// tie-break for equal-confidence matches.
var templates = []Template{
	// Triads
	{ID: "major", Symbol: "", Name: "Major", Intervals: []int{0, 4, 7}, MinNotes: 3},
	{ID: "minor", Symbol: "m", Name: "Minor", Intervals: []int{0, 3, 7}, MinNotes: 3},
	{ID: "dim", Symbol: "dim", Name: "Diminished", Intervals: []int{0, 3, 6}, MinNotes: 3},
	{ID: "aug", Symbol: "aug", Name: "Augmented", Intervals: []int{0, 4, 8}, MinNotes: 3},

	// Suspended shapes are inherently ambiguous (every sus2 is some other
	// root's sus4), so they carry a pinned confidence below the triads.
	{ID: "sus2", Symbol: "sus2", Name: "Suspended 2nd", Intervals: []int{0, 2, 7}, MinNotes: 3, Confidence: 0.85},
	{ID: "sus4", Symbol: "sus4", Name: "Suspended 4th", Intervals: []int{0, 5, 7}, MinNotes: 3, Confidence: 0.85},

	// Added-tone triads
	{ID: "add4", Symbol: "add4", Name: "Major Add 4th", Intervals: []int{0, 4, 5}, MinNotes: 3, Confidence: 0.72},
	{ID: "madd4", Symbol: "madd4", Name: "Minor Add 4th", Intervals: []int{0, 3, 5}, MinNotes: 3, Confidence: 0.72},
	{ID: "add9", Symbol: "add9", Name: "Major Add 9th", Intervals: []int{0, 2, 4, 7}, MinNotes: 4},

	// Sixths and sevenths
	{ID: "6", Symbol: "6", Name: "Major 6th", Intervals: []int{0, 4, 7, 9}, MinNotes: 4},
	{ID: "m6", Symbol: "m6", Name: "Minor 6th", Intervals: []int{0, 3, 7, 9}, MinNotes: 4},
	{ID: "7", Symbol: "7", Name: "Dominant 7th", Intervals: []int{0, 4, 7, 10}, MinNotes: 4},
	{ID: "maj7", Symbol: "maj7", Name: "Major 7th", Intervals: []int{0, 4, 7, 11}, MinNotes: 4},
	{ID: "m7", Symbol: "m7", Name: "Minor 7th", Intervals: []int{0, 3, 7, 10}, MinNotes: 4},
	{ID: "mmaj7", Symbol: "mMaj7", Name: "Minor-Major 7th", Intervals: []int{0, 3, 7, 11}, MinNotes: 4},
	{ID: "dim7", Symbol: "dim7", Name: "Diminished 7th", Intervals: []int{0, 3, 6, 9}, MinNotes: 4},
	{ID: "m7b5", Symbol: "m7b5", Name: "Half-Diminished 7th", Intervals: []int{0, 3, 6, 10}, MinNotes: 4},

	// Ninths
	{ID: "9", Symbol: "9", Name: "Dominant 9th", Intervals: []int{0, 2, 4, 7, 10}, MinNotes: 5},
	{ID: "maj9", Symbol: "maj9", Name: "Major 9th", Intervals: []int{0, 2, 4, 7, 11}, MinNotes: 5},
	{ID: "m9", Symbol: "m9", Name: "Minor 9th", Intervals: []int{0, 2, 3, 7, 10}, MinNotes: 5},

	// Partial voicings. Reduced minimum note counts; each names what the
	// full voicing would add.
	{ID: "power", Symbol: "5", Name: "Power Chord", Intervals: []int{0, 7}, MinNotes: 2,
		Confidence: 0.80, Partial: true, Missing: []int{4},
		Completion: "add a major 3rd for a major triad, or a minor 3rd for a minor triad"},
	{ID: "majno5", Symbol: "(no5)", Name: "Major (no 5th)", Intervals: []int{0, 4}, MinNotes: 2,
		Confidence: 0.70, Partial: true, Missing: []int{7},
		Completion: "add the perfect 5th to complete the major triad"},
	{ID: "minno5", Symbol: "m(no5)", Name: "Minor (no 5th)", Intervals: []int{0, 3}, MinNotes: 2,
		Confidence: 0.70, Partial: true, Missing: []int{7},
		Completion: "add the perfect 5th to complete the minor triad"},
	{ID: "sus4no5", Symbol: "sus4(no5)", Name: "Suspended 4th (no 5th)", Intervals: []int{0, 5}, MinNotes: 2,
		Confidence: 0.60, Partial: true, Missing: []int{7},
		Completion: "add the perfect 5th to complete the suspended 4th chord"},
	{ID: "7no5", Symbol: "7(no5)", Name: "Dominant 7th (no 5th)", Intervals: []int{0, 4, 10}, MinNotes: 3,
		Confidence: 0.82, Partial: true, Missing: []int{7},
		Completion: "add the perfect 5th to complete the dominant 7th"},
	{ID: "m7no5", Symbol: "m7(no5)", Name: "Minor 7th (no 5th)", Intervals: []int{0, 3, 10}, MinNotes: 3,
		Confidence: 0.82, Partial: true, Missing: []int{7},
		Completion: "add the perfect 5th to complete the minor 7th"},
	{ID: "maj7no5", Symbol: "maj7(no5)", Name: "Major 7th (no 5th)", Intervals: []int{0, 4, 11}, MinNotes: 3,
		Confidence: 0.82, Partial: true, Missing: []int{7},
		Completion: "add the perfect 5th to complete the major 7th"},
}

// pedagogicalNotes keys fixed teaching hints by template ID. Only partial
// voicings carry one.
var pedagogicalNotes = map[string]string{
	"power":   "A power chord is neither major nor minor; the 3rd decides its quality.",
	"majno5":  "The 3rd alone implies major quality; the 5th adds stability but little color.",
	"minno5":  "The 3rd alone implies minor quality; the 5th adds stability but little color.",
	"sus4no5": "The 4th replaces the 3rd entirely in suspended chords and usually resolves down.",
	"7no5":    "Guide-tone shell: the 3rd and 7th alone define dominant function.",
	"m7no5":   "Guide-tone shell: the b3 and b7 alone define minor 7th quality.",
	"maj7no5": "Guide-tone shell: the 3rd and 7th alone define major 7th quality.",
}

// Templates returns a copy of the chord template catalog
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateByID returns the template with the given ID
func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
