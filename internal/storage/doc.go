// Package storage persists the document engine's state.
//
// State lives under four fixed keys (entries, undoStack, redoStack,
// fontSize) in one JSON document; FileStore maps that namespace onto a
// single file with atomic replacement. The codec keeps the wire shapes
// (entryRecord, updateRecord) separate from engine types so the persisted
// format can evolve without touching the engine.
package storage
