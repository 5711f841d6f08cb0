package history

import (
	"errors"
	"sync"

	"github.com/dshills/linemine/internal/engine/entry"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is the undo stack bound used when none is configured.
const DefaultMaxEntries = 1000

// History manages undo/redo state for an entry store.
//
// Both stacks hold inverse updates: the top of the undo stack restores the
// state immediately before the most recent forward action. Recording a new
// forward action abandons any redo branch.
type History struct {
	mu sync.Mutex

	undoStack []entry.Update
	redoStack []entry.Update

	maxEntries int
}

// New creates a new history manager.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record applies a forward update to the store and pushes its inverse onto
// the undo stack. The redo stack is cleared. If the update fails its
// precondition the store is untouched and nothing is recorded.
func (h *History) Record(s *entry.Store, u entry.Update) error {
	inverse, err := u.Apply(s)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, inverse)
	h.redoStack = nil
	h.truncateLocked()
	return nil
}

// truncateLocked drops the oldest undo entries beyond the bound.
func (h *History) truncateLocked() {
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = append([]entry.Update(nil), h.undoStack[excess:]...)
	}
}

// Undo applies the top of the undo stack and pushes the resulting inverse
// onto the redo stack. Returns ErrNothingToUndo on an empty stack.
func (h *History) Undo(s *entry.Store) error {
	return h.step(s, &h.undoStack, &h.redoStack, ErrNothingToUndo)
}

// Redo applies the top of the redo stack and pushes the resulting inverse
// onto the undo stack. Returns ErrNothingToRedo on an empty stack.
func (h *History) Redo(s *entry.Store) error {
	return h.step(s, &h.redoStack, &h.undoStack, ErrNothingToRedo)
}

// step pops one update from the from stack, applies it, and pushes the
// returned inverse onto the to stack.
func (h *History) step(s *entry.Store, from, to *[]entry.Update, empty error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(*from) == 0 {
		return empty
	}

	u := (*from)[len(*from)-1]
	inverse, err := u.Apply(s)
	if err != nil {
		// Leave the entry in place; the store was not mutated.
		return err
	}

	*from = (*from)[:len(*from)-1]
	*to = append(*to, inverse)
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}

// Snapshot returns copies of both stacks, oldest first, for persistence.
func (h *History) Snapshot() (undos, redos []entry.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	undos = append([]entry.Update(nil), h.undoStack...)
	redos = append([]entry.Update(nil), h.redoStack...)
	return undos, redos
}

// Restore replaces both stacks from persisted state.
// The undo stack is re-truncated to the bound, oldest entries first.
func (h *History) Restore(undos, redos []entry.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append([]entry.Update(nil), undos...)
	h.redoStack = append([]entry.Update(nil), redos...)
	h.truncateLocked()
}

// MaxEntries returns the undo stack bound.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
