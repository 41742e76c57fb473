package scales

// Family is the source definition for one scale family: the interval
// pattern of each mode, the mode names, and the spelled degree formulas.
// Definitions are immutable data; the catalog materializes them.
type Family struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Diatonic      bool     `json:"diatonic"`
	ModeNames     []string `json:"mode_names"`
	Formulas      []string `json:"formulas"`
	ModeIntervals [][]int  `json:"mode_intervals"`
}

// modesOf derives every rotation of a parent interval pattern, each
// renormalized to start at 0.
func modesOf(parent []int) [][]int {
	n := len(parent)
	modes := make([][]int, n)
	for m := 0; m < n; m++ {
		intervals := make([]int, n)
		for i := 0; i < n; i++ {
			intervals[i] = (parent[(m+i)%n] - parent[m] + 12) % 12
		}
		modes[m] = intervals
	}
	return modes
}

var families = []Family{
	{
		ID:       "major",
		Name:     "Major",
		Diatonic: true,
		ModeNames: []string{
			"Ionian", "Dorian", "Phrygian", "Lydian", "Mixolydian", "Aeolian", "Locrian",
		},
		Formulas: []string{
			"1 2 3 4 5 6 7",
			"1 2 b3 4 5 6 b7",
			"1 b2 b3 4 5 b6 b7",
			"1 2 3 #4 5 6 7",
			"1 2 3 4 5 6 b7",
			"1 2 b3 4 5 b6 b7",
			"1 b2 b3 4 b5 b6 b7",
		},
		ModeIntervals: modesOf([]int{0, 2, 4, 5, 7, 9, 11}),
	},
	{
		ID:   "harmonic-minor",
		Name: "Harmonic Minor",
		ModeNames: []string{
			"Harmonic Minor", "Locrian Natural 6", "Ionian #5", "Dorian #4",
			"Phrygian Dominant", "Lydian #2", "Super Locrian bb7",
		},
		Formulas: []string{
			"1 2 b3 4 5 b6 7",
			"1 b2 b3 4 b5 6 b7",
			"1 2 3 4 #5 6 7",
			"1 2 b3 #4 5 6 b7",
			"1 b2 3 4 5 b6 b7",
			"1 #2 3 #4 5 6 7",
			"1 b2 b3 b4 b5 b6 bb7",
		},
		ModeIntervals: modesOf([]int{0, 2, 3, 5, 7, 8, 11}),
	},
	{
		ID:   "melodic-minor",
		Name: "Melodic Minor",
		ModeNames: []string{
			"Melodic Minor", "Dorian b2", "Lydian Augmented", "Lydian Dominant",
			"Mixolydian b6", "Locrian Natural 2", "Altered",
		},
		Formulas: []string{
			"1 2 b3 4 5 6 7",
			"1 b2 b3 4 5 6 b7",
			"1 2 3 #4 #5 6 7",
			"1 2 3 #4 5 6 b7",
			"1 2 3 4 5 b6 b7",
			"1 2 b3 4 b5 b6 b7",
			"1 b2 b3 b4 b5 b6 b7",
		},
		ModeIntervals: modesOf([]int{0, 2, 3, 5, 7, 9, 11}),
	},
	{
		ID:   "pentatonic",
		Name: "Pentatonic",
		ModeNames: []string{
			"Major Pentatonic", "Egyptian", "Blues Minor", "Ritusen", "Minor Pentatonic",
		},
		Formulas: []string{
			"1 2 3 5 6",
			"1 2 4 5 b7",
			"1 b3 4 b6 b7",
			"1 2 4 5 6",
			"1 b3 4 5 b7",
		},
		ModeIntervals: modesOf([]int{0, 2, 4, 7, 9}),
	},
	{
		ID:            "blues",
		Name:          "Blues",
		ModeNames:     []string{"Blues"},
		Formulas:      []string{"1 b3 4 b5 5 b7"},
		ModeIntervals: [][]int{{0, 3, 5, 6, 7, 10}},
	},
	{
		ID:            "whole-tone",
		Name:          "Whole Tone",
		ModeNames:     []string{"Whole Tone"},
		Formulas:      []string{"1 2 3 #4 #5 b7"},
		ModeIntervals: [][]int{{0, 2, 4, 6, 8, 10}},
	},
}

// Families returns the supported scale family definitions
func Families() []Family {
	out := make([]Family, len(families))
	copy(out, families)
	return out
}

// TotalModes returns the number of modes across all families
func TotalModes() int {
	total := 0
	for _, f := range families {
		total += len(f.ModeNames)
	}
	return total
}
