package engine

import (
	"github.com/dshills/linemine/internal/engine/entry"
	"github.com/dshills/linemine/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrEntryNotFound indicates an operation referenced a nonexistent entry.
	ErrEntryNotFound = entry.ErrEntryNotFound

	// ErrDuplicateID indicates an insertion collided with a live entry id.
	ErrDuplicateID = entry.ErrDuplicateID

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo
)
