////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package editor declares the host text-buffer collaborator consumed by the
// core and provides an in-memory implementation for tests and the CLI.
package editor

// Position addresses a point in the buffer. Ch is a byte offset within the
// line.
type Position struct {
	Line int
	Ch   int
}

// Buffer is the host editor's text buffer.
type Buffer interface {
	// LineCount returns the number of lines.
	LineCount() int

	// GetLine returns line n, without its trailing newline. Out-of-range
	// lines return "".
	GetLine(n int) string

	// Cursor returns the current cursor position.
	Cursor() Position

	// ReplaceRange replaces [from, to) with text.
	ReplaceRange(text string, from, to Position)

	// ReplaceSelection inserts text at the cursor, replacing any
	// selection.
	ReplaceSelection(text string)
}
