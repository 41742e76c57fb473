package scales

import (
	"sync"
	"time"
)

// Highlight marks one catalog cell for the presentation layer. Temporary
// highlights expire on their own after Duration.
type Highlight struct {
	CellID    string        `json:"cell_id"`
	Reason    string        `json:"reason"`
	Temporary bool          `json:"temporary"`
	Duration  time.Duration `json:"duration"`
}

// highlightRegistry is the catalog's only mutable state. Expiry is a
// fire-and-forget timer; the generation counter makes the deferred
// removal a no-op when the entry was cleared or replaced in the meantime.
type highlightRegistry struct {
	mu         sync.Mutex
	highlights map[string]Highlight
	gen        map[string]uint64
}

func (r *highlightRegistry) init() {
	r.highlights = make(map[string]Highlight)
	r.gen = make(map[string]uint64)
}

// SetHighlight registers or replaces a highlight. A temporary highlight
// with a positive duration schedules its own removal.
func (r *highlightRegistry) SetHighlight(h Highlight) {
	r.mu.Lock()
	r.highlights[h.CellID] = h
	r.gen[h.CellID]++
	gen := r.gen[h.CellID]
	r.mu.Unlock()

	if h.Temporary && h.Duration > 0 {
		time.AfterFunc(h.Duration, func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.gen[h.CellID] == gen {
				delete(r.highlights, h.CellID)
			}
		})
	}
}

// ClearHighlight removes the highlight for a cell, if any
func (r *highlightRegistry) ClearHighlight(cellID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.highlights, cellID)
	r.gen[cellID]++
}

// ClearAllHighlights removes every highlight
func (r *highlightRegistry) ClearAllHighlights() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.highlights {
		delete(r.highlights, id)
		r.gen[id]++
	}
}

// HighlightFor returns the highlight for a cell, if present
func (r *highlightRegistry) HighlightFor(cellID string) (Highlight, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.highlights[cellID]
	return h, ok
}

// Highlights returns a snapshot of all current highlights
func (r *highlightRegistry) Highlights() map[string]Highlight {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Highlight, len(r.highlights))
	for id, h := range r.highlights {
		out[id] = h
	}
	return out
}
