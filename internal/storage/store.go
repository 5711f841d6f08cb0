package storage

// Keys under which the core's state is persisted.
const (
	// KeyEntries holds the serialized entry list.
	KeyEntries = "entries"

	// KeyUndoStack holds the serialized undo stack, oldest first.
	KeyUndoStack = "undoStack"

	// KeyRedoStack holds the serialized redo stack, oldest first.
	KeyRedoStack = "redoStack"

	// KeyFontSize holds the display font size preference.
	KeyFontSize = "fontSize"
)

// Store is the persistence collaborator: opaque JSON values under fixed
// keys. Writes are fire-and-forget from the core's perspective; hosts log
// failures and move on.
type Store interface {
	// Load returns the raw JSON stored under key, or ok=false if absent.
	Load(key string) (raw []byte, ok bool, err error)

	// Save stores raw JSON under key.
	Save(key string, raw []byte) error
}
