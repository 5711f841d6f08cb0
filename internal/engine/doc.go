// Package engine provides the core document engine for linemine.
//
// The engine owns an ordered collection of text entries and a bounded
// undo/redo history, combined behind a single facade. Entries carry a
// fixed original label and a mutable content string; every mutation is
// expressed as a reversible update whose inverse lands on the undo stack.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - entry: id-keyed ordered entry store and the Update protocol
//   - history: two-stack undo/redo controller with a 1000-entry bound
//   - selection: maps external text-range selections to entry ids
//   - distribute: derives neighbor-context content for a selected run
//
// # Basic Usage
//
//	e := engine.New()
//	id, _ := e.Append("見せてもらおうか")
//	e.SetContent(id, "corrected line")
//	e.Undo() // back to the original text
//
// # Change Notification
//
// Hosts register a change listener and drain state into storage after each
// mutation; the engine itself never touches the persistence layer:
//
//	e := engine.New(engine.WithChangeListener(func() { saveState() }))
package engine
