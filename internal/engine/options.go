package engine

import (
	"github.com/dshills/linemine/internal/engine/entry"
	"github.com/dshills/linemine/internal/engine/history"
)

// DefaultMaxUndoEntries is the undo history bound.
const DefaultMaxUndoEntries = history.DefaultMaxEntries

// Option configures an Engine during creation.
type Option func(*Engine)

// WithEntries sets the initial entry sequence, typically loaded from the
// persistence layer.
func WithEntries(snaps []entry.Snapshot) Option {
	return func(e *Engine) {
		e.initEntries = snaps
	}
}

// WithHistory restores persisted undo/redo stacks, oldest first.
func WithHistory(undos, redos []entry.Update) Option {
	return func(e *Engine) {
		e.initUndos = undos
		e.initRedos = redos
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithChangeListener registers a callback fired after every completed
// mutation, including undo and redo. Hosts drain it into storage.
func WithChangeListener(fn func()) Option {
	return func(e *Engine) {
		e.onChange = fn
	}
}
