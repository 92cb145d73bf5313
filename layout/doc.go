// Package layout is a terminal-cell layout engine for buffer.Storage.
//
// The engine splits the document into paragraphs and lays each one out as a
// Fragment: one or more soft-wrapped lines of characters with per-character
// cell offsets. Geometry is measured in cells (X counts columns, Y counts
// rows) so a terminal host can paint fragments directly.
//
// Fragments are identity-stable: an edit replaces only the fragments it
// touches. Fragments after the edit keep their ID and shift with it.
package layout
