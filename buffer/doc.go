// Package buffer implements the text storage behind a textkit surface.
//
// The document is a sequence of characters, where one character is one
// extended grapheme cluster and a line break is exactly one character.
// Positions are 0-based character offsets and ranges are half-open: [Start, End).
//
// Every mutation runs inside an editing transaction. Observers receive one
// EditInfo per outermost transaction describing the edited interval and the
// change in length.
package buffer
