package theory

import "math/bits"

// Set is a pitch-class set packed into a 12-bit mask. Bit i is set when
// pitch class i is a member. The zero value is the empty set, and two
// sets holding the same pitch classes compare equal with ==, which makes
// Set usable directly as a map key for grouping enharmonically identical
// collections.
type Set uint16

// NewSet builds a Set from raw note numbers (reduced mod 12)
func NewSet(notes ...int) Set {
	var s Set
	for _, n := range notes {
		s = s.Add(PitchClass(n))
	}
	return s
}

// Add returns the set with pc included
func (s Set) Add(pc int) Set {
	return s | 1<<uint(PitchClass(pc))
}

// Contains reports whether pc is a member
func (s Set) Contains(pc int) bool {
	return s&(1<<uint(PitchClass(pc))) != 0
}

// ContainsAll reports whether every member of other is a member of s
func (s Set) ContainsAll(other Set) bool {
	return s&other == other
}

// Size returns the number of distinct pitch classes in the set
func (s Set) Size() int {
	return bits.OnesCount16(uint16(s))
}

// CountIn returns how many members of other are also members of s
func (s Set) CountIn(other Set) int {
	return bits.OnesCount16(uint16(s & other))
}

// PitchClasses returns the members in ascending order
func (s Set) PitchClasses() []int {
	pcs := make([]int, 0, s.Size())
	for pc := 0; pc < 12; pc++ {
		if s.Contains(pc) {
			pcs = append(pcs, pc)
		}
	}
	return pcs
}
