////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package emoji provides the searchable emoji dataset behind suggestion and
// shortcode rendering. The dataset is built once, lazily, from either the
// gomoji library or an emoji-mart JSON file and kept immutable for the life
// of the process.
package emoji

import (
	"strings"
)

// SkinTone selects a Fitzpatrick-scale skin tone variant for an emoji.
// Default (0) means no preference.
type SkinTone uint8

const (
	Default SkinTone = iota
	Light
	MediumLight
	Medium
	MediumDark
	Dark
)

// NumSkinTones is the number of valid SkinTone values, including Default.
const NumSkinTones = 6

// skinToneModifiers are the Unicode modifier codepoints U+1F3FB through
// U+1F3FF, indexed by SkinTone-1.
var skinToneModifiers = []rune{
	'\U0001F3FB', '\U0001F3FC', '\U0001F3FD', '\U0001F3FE', '\U0001F3FF',
}

// Valid returns true if the skin tone is within the defined range.
func (t SkinTone) Valid() bool {
	return t < NumSkinTones
}

// Emoji is a single entry in the dataset. It is immutable once built.
type Emoji struct {
	// ID is the canonical shortcode identifier (e.g. "waving_hand").
	ID string

	// Name is the human-readable name (e.g. "waving hand"). It doubles as
	// the fallback identity key for legacy stored data.
	Name string

	// Skins holds the glyph per skin tone. Index 0 is the default glyph
	// and is always present; entries 1 through 5 may be empty when the
	// emoji has no variant for that tone.
	Skins []string

	// Keywords are the search terms associated with the emoji.
	Keywords []string
}

// Glyph returns the default (untoned) glyph, or the name as literal text if
// the dataset entry somehow carries no glyph at all.
func (e *Emoji) Glyph() string {
	if len(e.Skins) > 0 && e.Skins[0] != "" {
		return e.Skins[0]
	}
	return e.Name
}

// Skin returns the glyph for the requested tone, falling back to the default
// glyph when the tone is Default, out of range, or has no variant, and
// finally to the name as literal text.
func (e *Emoji) Skin(t SkinTone) string {
	if t != Default && t.Valid() && int(t) < len(e.Skins) &&
		e.Skins[t] != "" {
		return e.Skins[t]
	}
	return e.Glyph()
}

// Dataset is the full emoji collection produced by a Source. Emojis preserves
// the source ordering; Aliases maps alternate ids to canonical ids;
// Categories maps a category name (see Categories in category.go) to the
// ordered canonical ids of its members.
type Dataset struct {
	Emojis     []Emoji
	Aliases    map[string]string
	Categories map[string][]string
}

// Source produces a Dataset. Building may be slow (parsing, network, large
// JSON); the Store guarantees a source runs at most once per cache fill.
type Source func() (*Dataset, error)

// NormalizeID canonicalizes a shortcode id for lookups: lowercased with
// hyphens folded to underscores. Both separators appear in the wild.
func NormalizeID(id string) string {
	return strings.ReplaceAll(strings.ToLower(id), "-", "_")
}
