package theory

import "strings"

// SharpNames spells each pitch class with sharps (0=C, 1=C#, ..., 11=B).
// All output uses this spelling; flat input is folded in by ParseNote.
var SharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// letterClasses maps natural note letters to their pitch class
var letterClasses = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// PitchClass reduces any note number to a pitch class in [0, 11].
// Negative and out-of-range values are folded in rather than rejected.
func PitchClass(n int) int {
	pc := n % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// NoteName returns the sharp spelling for a pitch class
func NoteName(pc int) string {
	return SharpNames[PitchClass(pc)]
}

// ParseNote parses a note name of the form [A-G](#|♯|b|♭)? into a pitch
// class. Both ASCII and Unicode accidentals are accepted. The second
// return value reports whether the name was recognized.
func ParseNote(name string) (int, bool) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, false
	}

	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	base, ok := letterClasses[letter]
	if !ok {
		return 0, false
	}

	rest := s[1:]
	switch rest {
	case "":
		return base, true
	case "#", "♯":
		return PitchClass(base + 1), true
	case "b", "♭":
		return PitchClass(base - 1), true
	}
	return 0, false
}

// Enharmonic reports whether two note names spell the same pitch class,
// e.g. C# and Db. Unrecognized names never match.
func Enharmonic(a, b string) bool {
	pa, okA := ParseNote(a)
	pb, okB := ParseNote(b)
	return okA && okB && pa == pb
}

// Interval returns the interval in semitones from root up to note, mod 12
func Interval(root, note int) int {
	return PitchClass(note - root)
}

// DistinctPitchClasses reduces raw note numbers to their sorted distinct
// pitch classes. Octave duplicates collapse.
func DistinctPitchClasses(notes []int) []int {
	var set Set
	for _, n := range notes {
		set = set.Add(PitchClass(n))
	}
	return set.PitchClasses()
}
