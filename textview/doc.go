// Package textview is the editing core of a textkit surface.
//
// It has three parts:
//
//   - Coordinator routes every mutation through a paired will/did-change
//     transaction and keeps the selected and marked ranges consistent.
//   - View exposes the text-input protocol: position arithmetic, geometry
//     queries for carets and selections, tokenizing, and editing actions.
//   - ViewportController materializes rendering surfaces only for the
//     fragments that intersect the visible window.
//
// Text storage, text layout and drawing are collaborators described by the
// interfaces in this package. buffer.Storage and layout.Engine implement the
// storage and layout contracts; the editor package provides a terminal host.
//
// Nothing in this package is safe for concurrent use. All calls must come
// from the goroutine that drives the host, such as a Bubble Tea update loop.
package textview
