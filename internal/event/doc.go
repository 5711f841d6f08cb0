// Package event provides the change notification bus between the document
// engine and its host.
//
// The engine reports "state changed"; the host subscribes and drains the
// new state into storage after each mutation. Delivery is synchronous and
// ordered, which keeps the persistence write-behind free of interleaving.
package event
