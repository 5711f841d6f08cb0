// Package history provides the undo/redo controller for the entry store.
//
// Every forward mutation is recorded through History.Record, which applies
// the update and keeps its inverse. Undo and redo are symmetric: each pops
// one stack, applies the popped update, and pushes the inverse it returned
// onto the other stack. History is linear; a new forward action discards
// the redo branch. The undo stack is bounded (default 1000 entries) and
// silently drops its oldest entries past the bound.
package history
