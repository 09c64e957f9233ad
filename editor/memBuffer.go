////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package editor

import "strings"

// MemBuffer is a minimal in-memory Buffer. Single-line edits only; it exists
// for tests and the CLI, not for hosting a real editor.
type MemBuffer struct {
	lines  []string
	cursor Position
}

// NewMemBuffer creates a buffer from text, split on newlines.
func NewMemBuffer(text string) *MemBuffer {
	return &MemBuffer{lines: strings.Split(text, "\n")}
}

// LineCount returns the number of lines.
func (b *MemBuffer) LineCount() int { return len(b.lines) }

// GetLine returns line n or "" when out of range.
func (b *MemBuffer) GetLine(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// Cursor returns the cursor position.
func (b *MemBuffer) Cursor() Position { return b.cursor }

// SetCursor moves the cursor.
func (b *MemBuffer) SetCursor(p Position) { b.cursor = p }

// ReplaceRange replaces [from, to) with text. Both positions must be on the
// same line; the cursor lands after the inserted text.
func (b *MemBuffer) ReplaceRange(text string, from, to Position) {
	if from.Line != to.Line || from.Line < 0 || from.Line >= len(b.lines) {
		return
	}
	line := b.lines[from.Line]
	if from.Ch < 0 || to.Ch > len(line) || from.Ch > to.Ch {
		return
	}
	b.lines[from.Line] = line[:from.Ch] + text + line[to.Ch:]
	b.cursor = Position{Line: from.Line, Ch: from.Ch + len(text)}
}

// ReplaceSelection inserts text at the cursor.
func (b *MemBuffer) ReplaceSelection(text string) {
	b.ReplaceRange(text, b.cursor, b.cursor)
}

// Text returns the whole buffer joined with newlines.
func (b *MemBuffer) Text() string { return strings.Join(b.lines, "\n") }
