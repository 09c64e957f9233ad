////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package boundary decides whether a shortcode occurrence sits inside a
// protected region (code or math) where substitution must not happen. All
// functions are pure. Over-skipping is acceptable; corrupting code is not,
// so every rule errs toward skip.
package boundary

import (
	"strings"

	"gitlab.com/elixxir/emojipicker/shortcode"
)

// Tags of structural ancestors that protect their text from substitution.
var protectedTags = map[string]struct{}{
	"code": {},
	"pre":  {},
	"math": {},
}

// SkipLine reports whether a raw source line must be left alone by the live
// renderer. A line is skipped when it is indented like a code block (four
// spaces or a tab), contains a code fence or block-math delimiter, or has a
// shortcode-like token inside matched backtick or $...$ spans. The check is
// per line; fence state across lines is not tracked, which only ever
// over-skips.
func SkipLine(line string) bool {
	if strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
		return true
	}
	if strings.Contains(line, "```") || strings.Contains(line, "$$") {
		return true
	}

	tokens := shortcode.Scan(line)
	if len(tokens) == 0 {
		return false
	}
	spans := append(pairSpans(line, '`'), pairSpans(line, '$')...)
	for _, tok := range tokens {
		for _, sp := range spans {
			if tok.Start >= sp[0] && tok.End <= sp[1] {
				return true
			}
		}
	}
	return false
}

// pairSpans returns the [start, end) intervals between consecutive pairs of
// the delimiter character. A trailing unmatched delimiter opens no span.
func pairSpans(line string, delim byte) [][2]int {
	var spans [][2]int
	open := -1
	for i := 0; i < len(line); i++ {
		if line[i] != delim {
			continue
		}
		if open < 0 {
			open = i
		} else {
			spans = append(spans, [2]int{open + 1, i})
			open = -1
		}
	}
	return spans
}

// SkipNode reports whether a text fragment in a rendered document tree must
// be left alone by the static renderer. The fragment is protected when any
// structural ancestor is a code or math element, or when the surrounding
// text shows an unclosed inline code or math span: an odd number of
// delimiters before the fragment with at least one after it.
func SkipNode(ancestorTags []string, before, after string) bool {
	for _, tag := range ancestorTags {
		if _, ok := protectedTags[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return openSpan(before, after, "`") || openSpan(before, after, "$")
}

// openSpan reports an open-but-not-yet-closed inline span relative to local
// context.
func openSpan(before, after, delim string) bool {
	return strings.Count(before, delim)%2 == 1 &&
		strings.Count(after, delim) > 0
}
