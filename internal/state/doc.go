// Package state persists the rename history between renamr invocations.
//
// The engine keeps its history stack in memory. The CLI runs one command per
// process, so it loads the stack from disk before a command and writes it
// back afterwards. State is a single JSON file (default
// ~/.renamr/history.json) written atomically.
//
// Key concepts:
//   - HistoryFile: on-disk schema wrapping the engine's operation logs
//   - HistoryStore: interface for loading and saving the stack
//   - FileHistoryStore: JSON implementation backed by fsops.FS
package state
