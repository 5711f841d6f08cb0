// Package ingest brings externally produced text into the document engine.
//
// Sources are a WebSocket feed and piped stdin, both funneled through one
// Ingestor that normalizes blocks, drops whitespace and selection echoes,
// and applies an optional user Lua filter before the block becomes an
// entry.
package ingest
