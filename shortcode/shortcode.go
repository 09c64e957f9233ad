////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package shortcode finds :name: tokens in text and resolves them to emoji
// glyphs.
package shortcode

import (
	"regexp"

	"gitlab.com/elixxir/emojipicker/emoji"
)

// tokenRegex matches a shortcode token: a colon, one or more id characters,
// and a closing colon. Matches are non-overlapping and left to right, so
// ":a:b:" yields only ":a:".
var tokenRegex = regexp.MustCompile(`:([A-Za-z0-9_+\-]+):`)

// Token is one shortcode occurrence found by Scan. Offsets are byte offsets
// into the scanned text.
type Token struct {
	// Match is the full matched text, including both colons.
	Match string

	// ID is the shortcode id between the colons.
	ID string

	// Start and End delimit Match within the scanned text.
	Start, End int
}

// Scan returns every shortcode token in text in offset order. Returns nil
// when there are none.
func Scan(text string) []Token {
	idxs := tokenRegex.FindAllStringSubmatchIndex(text, -1)
	if idxs == nil {
		return nil
	}
	tokens := make([]Token, len(idxs))
	for i, m := range idxs {
		tokens[i] = Token{
			Match: text[m[0]:m[1]],
			ID:    text[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		}
	}
	return tokens
}

// Resolver maps shortcode ids to glyphs through the emoji store's direct
// lookup map, so rendering never pays search-ranking cost.
type Resolver struct {
	store *emoji.Store
}

// NewResolver creates a Resolver over the given store.
func NewResolver(store *emoji.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the glyph for a shortcode id with the given skin tone
// preference applied. The id is tried case-sensitively first, then through
// the store's normalizing fallbacks. Unknown ids return ("", false) so the
// caller leaves the source text untouched; a known id never resolves to an
// empty string (the emoji's name is the final fallback).
func (r *Resolver) Resolve(id string, skin emoji.SkinTone) (string, bool) {
	e := r.store.Lookup(id)
	if e == nil {
		return "", false
	}
	return e.Skin(skin), true
}
