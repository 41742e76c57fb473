package scales

import (
	"fmt"
	"strings"
	"time"

	"github.com/modetrail/harmonia/logging"
	"github.com/modetrail/harmonia/theory"
)

// DiatonicChord is one stacked-third triad of a seven-note scale instance
type DiatonicChord struct {
	Degree   int    `json:"degree"` // 1-based scale degree
	Roman    string `json:"roman"`
	Root     int    `json:"root"`
	RootName string `json:"root_name"`
	Symbol   string `json:"symbol"`
	Quality  string `json:"quality"`
}

// Instance is one fully materialized scale: a family mode at a concrete
// root. Instances are built once at catalog construction and never
// mutated; filtering produces views, not copies.
type Instance struct {
	ID           string          `json:"id"` // "<family>-<root>-<mode>", reconstructible
	Root         int             `json:"root"`
	RootName     string          `json:"root_name"`
	ModeIndex    int             `json:"mode_index"`
	ModeName     string          `json:"mode_name"`
	Name         string          `json:"name"` // "<root> <mode>"
	Formula      string          `json:"formula"`
	Intervals    []int           `json:"intervals"`
	PitchClasses theory.Set      `json:"pitch_classes"`
	Notes        []string        `json:"notes"`
	FamilyID     string          `json:"family_id"`
	FamilyName   string          `json:"family_name"`
	Diatonic     bool            `json:"diatonic"`
	ParentRoot   int             `json:"parent_root"`
	ParentName   string          `json:"parent_name"`
	Chords       []DiatonicChord `json:"chords,omitempty"` // seven-note modes only
}

// CatalogParams contains parameters for the scale catalog
type CatalogParams struct {
	MaxFilterResults       int           `json:"max_filter_results"`
	MaxMIDISuggestions     int           `json:"max_midi_suggestions"`
	NavigationHighlightTTL time.Duration `json:"navigation_highlight_ttl"`
}

// DefaultCatalogParams returns the default catalog parameters
func DefaultCatalogParams() CatalogParams {
	return CatalogParams{
		MaxFilterResults:       100,
		MaxMIDISuggestions:     20,
		NavigationHighlightTTL: 5 * time.Second,
	}
}

// Catalog holds every scale instance (all families, all 12 roots, all
// modes) plus the mutable highlight registry. The instance table is
// immutable after construction; the highlight registry is mutex-guarded.
type Catalog struct {
	params    CatalogParams
	instances []*Instance
	byID      map[string]*Instance
	logger    logging.Logger

	highlightRegistry
}

// NewCatalog builds the full scale catalog with default parameters
func NewCatalog() *Catalog {
	return NewCatalogWithParams(DefaultCatalogParams())
}

// NewCatalogWithParams builds the full scale catalog
func NewCatalogWithParams(params CatalogParams) *Catalog {
	c := &Catalog{
		params: params,
		byID:   make(map[string]*Instance),
		logger: logging.WithFields(logging.Fields{"component": "scale_catalog"}),
	}
	c.highlightRegistry.init()

	for _, family := range families {
		parentPattern := family.ModeIntervals[0]
		for root := 0; root < 12; root++ {
			for mode := range family.ModeNames {
				inst := buildInstance(family, parentPattern, root, mode)
				c.instances = append(c.instances, inst)
				c.byID[inst.ID] = inst
			}
		}
	}

	c.logger.Debug("scale catalog built", logging.Fields{
		"families":  len(families),
		"instances": len(c.instances),
	})

	return c
}

func buildInstance(family Family, parentPattern []int, root, mode int) *Instance {
	intervals := family.ModeIntervals[mode]
	rootName := theory.NoteName(root)

	set := theory.Set(0)
	notes := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		pc := theory.PitchClass(root + iv)
		set = set.Add(pc)
		notes = append(notes, theory.NoteName(pc))
	}

	parentRoot := theory.PitchClass(root - parentPattern[mode])

	inst := &Instance{
		ID:           fmt.Sprintf("%s-%s-%d", family.ID, rootName, mode),
		Root:         root,
		RootName:     rootName,
		ModeIndex:    mode,
		ModeName:     family.ModeNames[mode],
		Name:         rootName + " " + family.ModeNames[mode],
		Formula:      family.Formulas[mode],
		Intervals:    intervals,
		PitchClasses: set,
		Notes:        notes,
		FamilyID:     family.ID,
		FamilyName:   family.Name,
		Diatonic:     family.Diatonic,
		ParentRoot:   parentRoot,
		ParentName:   theory.NoteName(parentRoot) + " " + family.ModeNames[0],
	}

	if len(intervals) == 7 {
		inst.Chords = deriveTriads(root, intervals)
	}

	return inst
}

// degreeLabels maps an interval above the scale root to its roman degree
var degreeLabels = [12]string{"I", "bII", "II", "bIII", "III", "IV", "bV", "V", "bVI", "VI", "bVII", "VII"}

// deriveTriads stacks thirds on each degree of a seven-note mode
func deriveTriads(root int, intervals []int) []DiatonicChord {
	chords := make([]DiatonicChord, 0, 7)
	for d := 0; d < 7; d++ {
		chordRoot := theory.PitchClass(root + intervals[d])
		third := theory.PitchClass(intervals[(d+2)%7] - intervals[d])
		fifth := theory.PitchClass(intervals[(d+4)%7] - intervals[d])

		quality, suffix := triadQuality(third, fifth)
		roman := degreeLabels[intervals[d]]
		switch quality {
		case "minor":
			roman = strings.ToLower(roman)
		case "diminished":
			roman = strings.ToLower(roman) + "°"
		case "augmented":
			roman += "+"
		}

		chords = append(chords, DiatonicChord{
			Degree:   d + 1,
			Roman:    roman,
			Root:     chordRoot,
			RootName: theory.NoteName(chordRoot),
			Symbol:   theory.NoteName(chordRoot) + suffix,
			Quality:  quality,
		})
	}
	return chords
}

func triadQuality(third, fifth int) (quality, suffix string) {
	switch {
	case third == 4 && fifth == 7:
		return "major", ""
	case third == 3 && fifth == 7:
		return "minor", "m"
	case third == 3 && fifth == 6:
		return "diminished", "dim"
	case third == 4 && fifth == 8:
		return "augmented", "aug"
	}
	return "other", ""
}

// Instances returns all scale instances in construction order
func (c *Catalog) Instances() []*Instance {
	out := make([]*Instance, len(c.instances))
	copy(out, c.instances)
	return out
}

// ByID returns the instance with the given ID
func (c *Catalog) ByID(id string) (*Instance, bool) {
	inst, ok := c.byID[id]
	return inst, ok
}

// Filter describes a composable scale query. Every set predicate must
// hold for an instance to pass; unset predicates are ignored.
type Filter struct {
	Search             string `json:"search"` // substring over name/root/family/formula
	Root               *int   `json:"root,omitempty"`
	FamilyID           string `json:"family_id,omitempty"`
	ModeIndex          *int   `json:"mode_index,omitempty"`
	ShowOnlyMatches    bool   `json:"show_only_matches"`
	PlayedPitchClasses []int  `json:"played_pitch_classes,omitempty"`
	Limit              int    `json:"limit,omitempty"` // 0 uses the catalog default cap
}

// FilteredScales returns instances passing every predicate of the filter,
// in stable construction order, capped for performance.
func (c *Catalog) FilteredScales(f Filter) []*Instance {
	limit := f.Limit
	if limit <= 0 {
		limit = c.params.MaxFilterResults
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	played := theory.NewSet(f.PlayedPitchClasses...)

	var out []*Instance
	for _, inst := range c.instances {
		if f.Root != nil && inst.Root != theory.PitchClass(*f.Root) {
			continue
		}
		if f.FamilyID != "" && inst.FamilyID != f.FamilyID {
			continue
		}
		if f.ModeIndex != nil && inst.ModeIndex != *f.ModeIndex {
			continue
		}
		if search != "" && !instanceMatchesSearch(inst, search) {
			continue
		}
		if f.ShowOnlyMatches && !inst.PitchClasses.ContainsAll(played) {
			continue
		}
		out = append(out, inst)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func instanceMatchesSearch(inst *Instance, search string) bool {
	return strings.Contains(strings.ToLower(inst.Name), search) ||
		strings.Contains(strings.ToLower(inst.RootName), search) ||
		strings.Contains(strings.ToLower(inst.FamilyName), search) ||
		strings.Contains(strings.ToLower(inst.Formula), search)
}

// MIDIScaleSuggestions returns scales containing every played pitch
// class, capped for live MIDI input. Empty input yields an empty result.
func (c *Catalog) MIDIScaleSuggestions(played []int) []*Instance {
	if len(played) == 0 {
		return nil
	}
	return c.FilteredScales(Filter{
		ShowOnlyMatches:    true,
		PlayedPitchClasses: played,
		Limit:              c.params.MaxMIDISuggestions,
	})
}

// NavigationContext targets a scale by mode-name substring and root name
type NavigationContext struct {
	ModeName string `json:"mode_name"`
	RootName string `json:"root_name"`
}

// NavigateFromAnalysis resolves a navigation request from an analysis
// result to the first matching instance and highlights it. A miss is not
// an error; it returns nil.
func (c *Catalog) NavigateFromAnalysis(ctx NavigationContext) *Instance {
	root, ok := theory.ParseNote(ctx.RootName)
	if !ok || ctx.ModeName == "" {
		return nil
	}

	want := strings.ToLower(ctx.ModeName)
	for _, inst := range c.instances {
		if inst.Root != root {
			continue
		}
		if !strings.Contains(strings.ToLower(inst.ModeName), want) {
			continue
		}
		c.SetHighlight(Highlight{
			CellID:    inst.ID,
			Reason:    "analysis",
			Temporary: true,
			Duration:  c.params.NavigationHighlightTTL,
		})
		return inst
	}
	return nil
}
