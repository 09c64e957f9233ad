////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package emoji

import (
	"github.com/forPelevin/gomoji"
	"github.com/pkg/errors"
	"github.com/rivo/uniseg"
)

var (
	// InvalidGlyph is returned if the passed string is not a single emoji
	// glyph.
	InvalidGlyph = errors.New(
		"the glyph is not valid, it must be a single emoji")
)

// ValidateGlyph checks that the string contains exactly one emoji and
// nothing else. Used as a sanity check before a unicode-format insertion.
// Returns InvalidGlyph if the check fails.
func ValidateGlyph(glyph string) error {
	clusters := 0
	gr := uniseg.NewGraphemes(glyph)
	for gr.Next() {
		clusters++
	}
	if clusters != 1 {
		// Zero or multiple grapheme clusters
		return InvalidGlyph
	}

	emojisList := gomoji.CollectAll(glyph)
	if len(emojisList) < 1 {
		// No emojis found
		return InvalidGlyph
	} else if emojisList[0].Character != glyph {
		// Non-emoji characters found alongside an emoji
		return InvalidGlyph
	}

	return nil
}
