package chords

// TriadKey is a sorted triple of distinct pitch classes
type TriadKey [3]int

// TriadReading is one forced interpretation of an ambiguous triple: the
// template applied at a specific candidate root with a pinned confidence.
type TriadReading struct {
	Root       int     `json:"root"`
	TemplateID string  `json:"template_id"`
	Confidence float64 `json:"confidence"`
}

// TriadRule collects the forced readings for one pitch-class triple.
// When SuppressSuspended is set, no suspended-chord template may match
// the triple at any root.
type TriadRule struct {
	Readings          []TriadReading `json:"readings"`
	SuppressSuspended bool           `json:"suppress_suspended"`
}

// triadOverrides bypasses the generic superset test for specific literal
// pitch-class triples whose generic readings are musically wrong or
// incomplete. Hand-tuned data: the confidences here are empirically fixed
// and should be reviewed by a domain expert before changing.
//
// {0,2,9} (A-C-D): root + minor 3rd + 4th. Only the minor-add-4th reading
// is musically sound; any suspended reading of this rotation is noise.
//
// {1,2,9} (A-C#-D): root + major 3rd + 4th. Genuinely ambiguous between a
// suspended 4th without its 5th and a major triad with an added 4th; both
// readings are kept with distinct confidences.
var triadOverrides = map[TriadKey]TriadRule{
	{0, 2, 9}: {
		Readings: []TriadReading{
			{Root: 9, TemplateID: "madd4", Confidence: 0.88},
		},
		SuppressSuspended: true,
	},
	{1, 2, 9}: {
		Readings: []TriadReading{
			{Root: 9, TemplateID: "sus4no5", Confidence: 0.92},
			{Root: 9, TemplateID: "add4", Confidence: 0.75},
		},
	},
}

// OverrideFor returns the override rule for a sorted pitch-class triple
func OverrideFor(key TriadKey) (TriadRule, bool) {
	rule, ok := triadOverrides[key]
	return rule, ok
}

// suspendedTemplate reports whether a template is a suspended-chord shape
func suspendedTemplate(t Template) bool {
	return t.ID == "sus2" || t.ID == "sus4" || t.ID == "sus4no5"
}
