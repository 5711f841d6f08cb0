// Package distribute derives new entry content for a selected run of
// entries from their labels.
//
// Each selected entry is rewritten to show its own label framed by the
// labels of the other selected entries: the labels before it and after it
// are newline-joined and wrapped in full-width parentheses, and empty
// segments are dropped entirely. The result is a list of edits in store
// order; callers batch them into a single atomic update.
package distribute

import (
	"strings"

	"github.com/dshills/linemine/internal/engine/entry"
)

// Selected names one selected entry and the label used to build content.
// The slice passed to Edits must be in ascending store order.
type Selected struct {
	ID    entry.ID
	Label string
}

// Edits builds one content edit per selected entry, in the given order.
// It does not apply anything. A single selected entry yields its own bare
// label; an empty selection yields no edits.
func Edits(selected []Selected) []entry.Edit {
	if len(selected) == 0 {
		return nil
	}

	labels := make([]string, len(selected))
	for i, sel := range selected {
		labels[i] = sel.Label
	}

	edits := make([]entry.Edit, len(selected))
	for i, sel := range selected {
		edits[i] = entry.Edit{
			ID:      sel.ID,
			Content: compose(labels[:i], labels[i], labels[i+1:]),
		}
	}
	return edits
}

// compose joins the wrapped neighbor segments around the entry's own
// label, skipping segments that are empty.
func compose(before []string, own string, after []string) string {
	parts := make([]string, 0, 3)
	if w := wrap(before); w != "" {
		parts = append(parts, w)
	}
	parts = append(parts, own)
	if w := wrap(after); w != "" {
		parts = append(parts, w)
	}
	return strings.Join(parts, "\n")
}

// wrap newline-joins labels and surrounds the result with full-width
// parentheses. An empty input produces an empty string, not "（）".
func wrap(labels []string) string {
	joined := strings.Join(labels, "\n")
	if joined == "" {
		return ""
	}
	return "（" + joined + "）"
}
