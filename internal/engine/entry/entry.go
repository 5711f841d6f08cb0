package entry

// ID uniquely identifies an entry for its whole lifetime.
// IDs are assigned by the store from a monotonically increasing counter
// and are never reused, so they stay valid across structural changes.
type ID int64

// Entry is one collected line of text.
// Label holds the text as it was originally ingested; Content is the
// current, possibly edited, text. Only Content is ever mutated.
type Entry struct {
	// Label is the original text of the entry.
	Label string

	// Content is the current text of the entry.
	Content string

	// Version counts content changes. Renderers can use it as a cheap
	// redraw key without diffing the text itself.
	Version int
}

// New creates an entry whose content starts equal to its label.
func New(text string) Entry {
	return Entry{Label: text, Content: text}
}

// IsEdited returns true if the content differs from the original label.
func (e Entry) IsEdited() bool {
	return e.Content != e.Label
}

// Snapshot pairs an entry with its identity.
// Snapshots are the unit of wholesale store replacement and persistence.
type Snapshot struct {
	ID    ID
	Entry Entry
}
