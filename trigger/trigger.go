////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package trigger decides, per keystroke, whether the text behind the cursor
// opens an emoji suggestion session and with what query. Detection is
// stateless: it is recomputed from the current line and cursor every time,
// so a session stays implicitly active exactly as long as detection keeps
// succeeding.
package trigger

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Char opens a suggestion session.
const Char = ':'

// run matches the trigger character plus the contiguous word-character run
// that reaches the cursor.
var run = regexp.MustCompile(`:(\w*)$`)

// Context describes one active suggestion session. Offsets are byte offsets
// into the line; Start addresses the trigger character, End the cursor. The
// span [Start, End) is what selection replaces.
type Context struct {
	Start int
	End   int
	Query string
}

// Detect evaluates the line text before the cursor. It returns the session
// context and true when a suggestion session is active.
//
// The rules are strict: the trigger must be the first character of a word
// (line start or preceded by whitespace) and the query must be non-empty.
// A trigger glued to a preceding word ("a:smile") is mid-word punctuation,
// not a session.
func Detect(line string, cursor int) (Context, bool) {
	if cursor < 0 || cursor > len(line) {
		return Context{}, false
	}
	text := line[:cursor]

	m := run.FindStringSubmatchIndex(text)
	if m == nil {
		return Context{}, false
	}
	start := m[0]
	query := text[m[2]:m[3]]

	if query == "" {
		return Context{}, false
	}
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if !unicode.IsSpace(prev) {
			return Context{}, false
		}
	}

	return Context{Start: start, End: cursor, Query: query}, true
}
