package tui

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/linemine/internal/engine"
	"github.com/dshills/linemine/internal/engine/selection"
)

// Row is one rendered screen row of an entry.
type Row struct {
	ID     engine.ID
	Text   string
	First  bool
	Edited bool
}

// Layout is the rendered form of the entry list at one width: the rows to
// draw plus each entry's row region, which is what mouse selections
// resolve against.
type Layout struct {
	Rows    []Row
	Regions []selection.Region
}

// LayoutEntries wraps every entry to the given display width.
// Regions come out in store order, one per entry, half-open over rows.
func LayoutEntries(views []engine.View, width int) Layout {
	var l Layout
	for _, v := range views {
		start := len(l.Rows)
		for _, line := range strings.Split(v.Content, "\n") {
			for _, text := range wrap(line, width) {
				l.Rows = append(l.Rows, Row{
					ID:     v.ID,
					Text:   text,
					First:  len(l.Rows) == start,
					Edited: v.Edited,
				})
			}
		}
		l.Regions = append(l.Regions, selection.Region{ID: v.ID, Start: start, End: len(l.Rows)})
	}
	return l
}

// EntryIndex returns the position of the entry covering row, -1 if none.
func (l Layout) EntryIndex(row int) int {
	for i, region := range l.Regions {
		if row >= region.Start && row < region.End {
			return i
		}
	}
	return -1
}

// RangeOver builds the selection range for a drag from one row to another,
// inclusive on both ends. Text is the visible text of the covered rows.
func (l Layout) RangeOver(from, to int) selection.Range {
	if to < from {
		from, to = to, from
	}
	if from < 0 {
		from = 0
	}
	if to >= len(l.Rows) {
		to = len(l.Rows) - 1
	}
	if from > to {
		return selection.Range{}
	}

	texts := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		texts = append(texts, l.Rows[i].Text)
	}
	return selection.Range{Start: from, End: to + 1, Text: strings.Join(texts, "\n")}
}

// wrap breaks one logical line into rows of at most width display cells,
// never splitting a grapheme cluster. Wide runes count double per uniseg.
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	if s == "" {
		return []string{""}
	}

	var lines []string
	var b strings.Builder
	w := 0

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cw := g.Width()
		if w > 0 && w+cw > width {
			lines = append(lines, b.String())
			b.Reset()
			w = 0
		}
		b.WriteString(g.Str())
		w += cw
	}
	return append(lines, b.String())
}
