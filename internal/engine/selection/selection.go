// Package selection maps an external text-range selection onto entries.
//
// The host renderer reports where each entry currently sits (its rendered
// region) and what range, if any, the user has selected. Compute answers
// which entries that range touches. Selection state is ephemeral: it is
// recomputed from the live environment on every change notification and is
// never part of undo history.
package selection

import "github.com/dshills/linemine/internal/engine/entry"

// Region describes the rendered extent of one entry.
// Units are whatever the renderer measures in (rows for a terminal host);
// the range is half-open. Regions must be supplied in store order.
type Region struct {
	ID    entry.ID
	Start int
	End   int
}

// Range is the active external selection: a contiguous extent plus the raw
// selected text. A collapsed range (caret) selects nothing.
type Range struct {
	Start int
	End   int
	Text  string
}

// Normalized returns the range with Start <= End regardless of the
// direction the selection was made in.
func (r Range) Normalized() Range {
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// IsCollapsed returns true for a caret or otherwise empty range.
func (r Range) IsCollapsed() bool {
	n := r.Normalized()
	return n.End <= n.Start
}

// Selection is the set of entries the active range touches.
// IDs are in store order, independent of selection direction.
type Selection struct {
	Text string
	IDs  []entry.ID
}

// Count returns the number of selected entries.
func (s Selection) Count() int {
	return len(s.IDs)
}

// Compute resolves the active range against the rendered regions.
// It returns ok=false when there is no range-type selection to resolve;
// a valid range that happens to touch no entry region yields an empty id
// set with ok=true.
func Compute(r Range, regions []Region) (Selection, bool) {
	if r.IsCollapsed() {
		return Selection{}, false
	}
	n := r.Normalized()

	sel := Selection{Text: r.Text}
	for _, region := range regions {
		if region.End <= region.Start {
			continue
		}
		if region.Start < n.End && n.Start < region.End {
			sel.IDs = append(sel.IDs, region.ID)
		}
	}
	return sel, true
}
