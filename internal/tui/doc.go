// Package tui renders the entry list in the terminal and translates keys
// and mouse drags into engine operations. The screen is redrawn from the
// engine on every change notification; the UI keeps no document state of
// its own beyond scroll position and the active selection.
package tui
