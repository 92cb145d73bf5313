// Package editor provides a Bubble Tea component that hosts a textview.View
// in a terminal.
//
// The package is responsible for input handling, scrolling, and rendering
// the fragment surfaces the viewport controller materializes. Editing,
// selection and geometry live in textview; this package only translates
// terminal events into those calls.
package editor
