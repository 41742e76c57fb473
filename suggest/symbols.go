package suggest

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/modetrail/harmonia/scales"
	"github.com/modetrail/harmonia/theory"
)

// symbolReplacer folds common chord-symbol notation variants into ASCII
var symbolReplacer = strings.NewReplacer(
	"♯", "#",
	"♭", "b",
	"°", "dim",
	"º", "dim",
	"+", "aug",
)

// qualityAliases normalizes a parsed quality suffix to a canonical
// quality name. Symbol substitution runs first, so "°" and "+" arrive
// here as "dim" and "aug".
var qualityAliases = map[string]string{
	"":           "major",
	"maj":        "major",
	"major":      "major",
	"m":          "minor",
	"min":        "minor",
	"minor":      "minor",
	"-":          "minor",
	"dim":        "diminished",
	"o":          "diminished",
	"diminished": "diminished",
	"aug":        "augmented",
	"augmented":  "augmented",
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// symbolMatcher is one stage of the layered chord-symbol comparator.
// Stages are tried strictly in order; a later stage runs only when every
// earlier one failed for the whole table, because looser normalization
// can make technically compatible notations collide.
type symbolMatcher struct {
	name  string
	match func(played, candidate string) bool
}

func canonEqual(canon func(string) string) func(string, string) bool {
	return func(a, b string) bool { return canon(a) == canon(b) }
}

var symbolMatchers = []symbolMatcher{
	{"exact", canonEqual(func(s string) string { return s })},
	{"case", canonEqual(strings.ToLower)},
	{"whitespace", canonEqual(func(s string) string {
		return strings.ToLower(stripSpace(s))
	})},
	{"unicode", canonEqual(func(s string) string {
		return strings.ToLower(stripSpace(norm.NFKC.String(s)))
	})},
	{"symbols", canonEqual(func(s string) string {
		return strings.ToLower(stripSpace(symbolReplacer.Replace(norm.NFKC.String(s))))
	})},
	{"structural", structuralEqual},
	{"enharmonic", enharmonicEqual},
}

// MatchSymbol resolves a free-text chord symbol against a diatonic chord
// table through the ordered comparator chain. It returns the matched
// chord and the name of the stage that resolved it; a full miss is not
// an error.
func MatchSymbol(symbol string, table []scales.DiatonicChord) (scales.DiatonicChord, string, bool) {
	for _, matcher := range symbolMatchers {
		for _, chord := range table {
			if matcher.match(symbol, chord.Symbol) {
				return chord, matcher.name, true
			}
		}
	}
	return scales.DiatonicChord{}, "", false
}

// parseSymbol splits a chord symbol into its root pitch class and
// canonical quality. Unknown qualities fail the parse.
func parseSymbol(symbol string) (root int, quality string, ok bool) {
	s := stripSpace(symbolReplacer.Replace(norm.NFKC.String(symbol)))
	if s == "" {
		return 0, "", false
	}

	rootLen := 1
	if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
		rootLen = 2
	}
	root, ok = theory.ParseNote(s[:rootLen])
	if !ok {
		return 0, "", false
	}

	quality, ok = qualityAliases[strings.ToLower(s[rootLen:])]
	if !ok {
		return 0, "", false
	}
	return root, quality, true
}

// structuralEqual compares two symbols by parsed root (with enharmonic
// equivalence) and canonical quality.
func structuralEqual(played, candidate string) bool {
	pr, pq, ok := parseSymbol(played)
	if !ok {
		return false
	}
	cr, cq, ok := parseSymbol(candidate)
	if !ok {
		return false
	}
	return pr == cr && pq == cq
}

// enharmonicEqual is the legacy comparator: the root prefix is respelled
// to its sharp name and the remainder compared loosely, so symbols whose
// quality suffix the structural parser does not know can still line up
// across enharmonic root spellings.
func enharmonicEqual(played, candidate string) bool {
	a, okA := respellRoot(played)
	b, okB := respellRoot(candidate)
	return okA && okB && a == b
}

func respellRoot(symbol string) (string, bool) {
	s := strings.ToLower(stripSpace(symbolReplacer.Replace(norm.NFKC.String(symbol))))
	if s == "" {
		return "", false
	}

	rootLen := 1
	if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
		rootLen = 2
	}
	root, ok := theory.ParseNote(s[:rootLen])
	if !ok {
		return "", false
	}
	return theory.NoteName(root) + s[rootLen:], true
}
