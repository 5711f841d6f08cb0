// Package entry implements the entry store and its reversible update
// protocol.
//
// The store is an ordered collection of text entries keyed by stable,
// monotonically increasing ids. All mutation flows through the Update
// interface: applying an update returns the update that undoes it, which
// is what the history package pushes onto its stacks.
//
//	s := entry.NewStore()
//	inv, _ := entry.Add{ID: s.AllocateID(), Entry: entry.New("line")}.Apply(s)
//	// inv is the Remove that deletes the line again.
package entry
