package engine

import (
	"strings"
	"sync"

	"github.com/dshills/linemine/internal/engine/distribute"
	"github.com/dshills/linemine/internal/engine/entry"
	"github.com/dshills/linemine/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// ID is a stable entry identity.
	ID = entry.ID

	// Entry is one collected line with label and current content.
	Entry = entry.Entry

	// Snapshot pairs an entry with its id for persistence.
	Snapshot = entry.Snapshot

	// Update is a reversible store mutation.
	Update = entry.Update
)

// View is the read-only row shape handed to renderers.
type View struct {
	ID      ID
	Label   string
	Content string
	Version int
	Edited  bool
}

// Engine is the document engine facade: the entry store, the undo/redo
// controller and the change notification hook behind one mutex.
//
// The execution model is single-threaded and event-driven; the mutex only
// guards against accidental cross-goroutine use by hosts (the WebSocket
// feed delivers on its own goroutine). Every mutation runs to completion
// before the change listener fires.
type Engine struct {
	mu sync.Mutex

	store   *entry.Store
	history *history.History

	// Configuration
	maxUndoEntries int

	// Initialization
	initEntries []entry.Snapshot
	initUndos   []entry.Update
	initRedos   []entry.Update

	onChange func()
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(e)
	}

	// Persisted ids compact to 0..n-1 unless restored history still
	// references them.
	if len(e.initUndos) == 0 && len(e.initRedos) == 0 {
		e.store = entry.FromSnapshots(e.initEntries)
	} else {
		e.store = entry.Restore(e.initEntries)
	}

	e.history = history.New(e.maxUndoEntries)
	if len(e.initUndos) > 0 || len(e.initRedos) > 0 {
		e.history.Restore(e.initUndos, e.initRedos)
	}

	return e
}

// notifyChanged reports a completed mutation to the host.
// Called without the engine lock held.
func (e *Engine) notifyChanged() {
	if e.onChange != nil {
		e.onChange()
	}
}

// ============================================================================
// Read Operations
// ============================================================================

// Entries returns the current entry sequence in store order.
func (e *Engine) Entries() []View {
	e.mu.Lock()
	defer e.mu.Unlock()

	views := make([]View, 0, e.store.Len())
	for _, snap := range e.store.Snapshots() {
		views = append(views, View{
			ID:      snap.ID,
			Label:   snap.Entry.Label,
			Content: snap.Entry.Content,
			Version: snap.Entry.Version,
			Edited:  snap.Entry.IsEdited(),
		})
	}
	return views
}

// Count returns the number of entries.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}

// IsEmpty returns true if there are no entries.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.IsEmpty()
}

// Get returns the entry for id.
func (e *Engine) Get(id ID) (Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Get(id)
}

// ============================================================================
// Forward Operations
// ============================================================================

// Append creates one new entry from a block of ingested text.
// The text is trimmed; whitespace-only blocks are ignored and reported
// false. Label and content both start as the trimmed text.
func (e *Engine) Append(text string) (ID, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	e.mu.Lock()
	id := e.store.AllocateID()
	err := e.history.Record(e.store, entry.Add{ID: id, Entry: entry.New(text)})
	e.mu.Unlock()

	if err != nil {
		// Fresh ids cannot collide; nothing was recorded.
		return 0, false
	}
	e.notifyChanged()
	return id, true
}

// Remove deletes the entry with the given id.
func (e *Engine) Remove(id ID) error {
	e.mu.Lock()
	err := e.history.Record(e.store, entry.Remove{ID: id})
	e.mu.Unlock()

	if err != nil {
		return err
	}
	e.notifyChanged()
	return nil
}

// SetContent replaces the content of an entry with the trimmed text.
// Setting content equal to the current content records nothing and
// returns false.
func (e *Engine) SetContent(id ID, text string) (bool, error) {
	text = strings.TrimSpace(text)

	e.mu.Lock()
	cur, ok := e.store.Get(id)
	if !ok {
		e.mu.Unlock()
		return false, entry.ErrEntryNotFound
	}
	if cur.Content == text {
		e.mu.Unlock()
		return false, nil
	}
	err := e.history.Record(e.store, entry.Edit{ID: id, Content: text})
	e.mu.Unlock()

	if err != nil {
		return false, err
	}
	e.notifyChanged()
	return true, nil
}

// Revert resets an entry's content back to its original label.
// A no-op when the entry is unedited.
func (e *Engine) Revert(id ID) error {
	e.mu.Lock()
	cur, ok := e.store.Get(id)
	if !ok {
		e.mu.Unlock()
		return entry.ErrEntryNotFound
	}
	if !cur.IsEdited() {
		e.mu.Unlock()
		return nil
	}
	err := e.history.Record(e.store, entry.Edit{ID: id, Content: cur.Label})
	e.mu.Unlock()

	if err != nil {
		return err
	}
	e.notifyChanged()
	return nil
}

// DistributeSelected rewrites each selected entry to carry its neighbors'
// labels as context, as one atomic multi-edit with a single undo entry.
// Fewer than two selected ids is a defined no-op reported false. Ids must
// be in store order.
func (e *Engine) DistributeSelected(ids []ID) (bool, error) {
	if len(ids) < 2 {
		return false, nil
	}

	e.mu.Lock()
	selected := make([]distribute.Selected, len(ids))
	for i, id := range ids {
		cur, ok := e.store.Get(id)
		if !ok {
			e.mu.Unlock()
			return false, entry.ErrEntryNotFound
		}
		selected[i] = distribute.Selected{ID: id, Label: cur.Label}
	}
	err := e.history.Record(e.store, entry.Distribute{Edits: distribute.Edits(selected)})
	e.mu.Unlock()

	if err != nil {
		return false, err
	}
	e.notifyChanged()
	return true, nil
}

// Clear removes every entry as a single undoable action.
// A no-op on an empty store, reported false.
func (e *Engine) Clear() bool {
	e.mu.Lock()
	if e.store.IsEmpty() {
		e.mu.Unlock()
		return false
	}
	err := e.history.Record(e.store, entry.Clear{})
	e.mu.Unlock()

	if err != nil {
		return false
	}
	e.notifyChanged()
	return true
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the most recent action.
func (e *Engine) Undo() error {
	e.mu.Lock()
	err := e.history.Undo(e.store)
	e.mu.Unlock()

	if err != nil {
		return err
	}
	e.notifyChanged()
	return nil
}

// Redo reapplies the most recently undone action.
func (e *Engine) Redo() error {
	e.mu.Lock()
	err := e.history.Redo(e.store)
	e.mu.Unlock()

	if err != nil {
		return err
	}
	e.notifyChanged()
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of available undo operations.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of available redo operations.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// ============================================================================
// Persistence Snapshots
// ============================================================================

// EntriesSnapshot returns the full entry sequence for persistence.
func (e *Engine) EntriesSnapshot() []Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Snapshots()
}

// HistorySnapshot returns both history stacks, oldest first.
func (e *Engine) HistorySnapshot() (undos, redos []Update) {
	return e.history.Snapshot()
}
