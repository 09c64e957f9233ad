////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package emoji

import (
	"regexp"
	"sort"
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/pkg/errors"
)

// unicodeVersionTag matches the emoji version prefix some datasets carry in
// their names (e.g. "E0.6 grinning face").
var unicodeVersionTag = regexp.MustCompile(`^[Ee]\d+(\.\d+)?\s+`)

// slugVersionTag is the same version prefix in slug form ("e0-6-grinning-face").
var slugVersionTag = regexp.MustCompile(`^e\d+(-\d+)?-`)

// GomojiSource builds the dataset from the gomoji library's embedded emoji
// list. Skin tone variants are folded into their base emoji by stripping the
// Fitzpatrick modifier runes from the variant's character.
func GomojiSource() Source {
	return buildFromGomoji
}

func buildFromGomoji() (*Dataset, error) {
	all := gomoji.AllEmojis()
	if len(all) == 0 {
		return nil, errors.New("gomoji returned an empty emoji list")
	}

	// AllEmojis returns map order; sort for a stable dataset.
	sort.Slice(all, func(i, j int) bool {
		if all[i].Group != all[j].Group {
			return all[i].Group < all[j].Group
		}
		if all[i].SubGroup != all[j].SubGroup {
			return all[i].SubGroup < all[j].SubGroup
		}
		return all[i].Slug < all[j].Slug
	})

	var bases []gomoji.Emoji
	type variant struct {
		baseKey string
		tone    SkinTone
		glyph   string
	}
	var variants []variant

	for _, gm := range all {
		tones := distinctTones(gm.Character)
		switch len(tones) {
		case 0:
			bases = append(bases, gm)
		case 1:
			variants = append(variants, variant{
				baseKey: glyphKey(stripTones(gm.Character)),
				tone:    tones[0],
				glyph:   gm.Character,
			})
		default:
			// Multi-person, multi-tone sequences have no single
			// tone slot; they stay out of the dataset.
		}
	}

	ds := &Dataset{
		Emojis:     make([]Emoji, 0, len(bases)),
		Aliases:    make(map[string]string),
		Categories: make(map[string][]string),
	}
	byKey := make(map[string]int, len(bases))

	for _, gm := range bases {
		e := Emoji{
			ID:       NormalizeID(cleanSlug(gm.Slug)),
			Name:     cleanName(gm.UnicodeName),
			Skins:    []string{gm.Character},
			Keywords: keywordsFor(gm),
		}
		byKey[glyphKey(gm.Character)] = len(ds.Emojis)
		ds.Emojis = append(ds.Emojis, e)

		if cat := categorize(gm.Group, gm.SubGroup); cat != "" {
			ds.Categories[cat] = append(ds.Categories[cat], e.ID)
		}
	}

	for _, v := range variants {
		idx, ok := byKey[v.baseKey]
		if !ok {
			continue
		}
		e := &ds.Emojis[idx]
		for len(e.Skins) < NumSkinTones {
			e.Skins = append(e.Skins, "")
		}
		e.Skins[v.tone] = v.glyph
	}

	return ds, nil
}

// distinctTones returns the distinct skin tones present in a glyph, in
// modifier order.
func distinctTones(glyph string) []SkinTone {
	var tones []SkinTone
	for i, mod := range skinToneModifiers {
		if strings.ContainsRune(glyph, mod) {
			tones = append(tones, SkinTone(i+1))
		}
	}
	return tones
}

// stripTones removes all skin tone modifier runes from a glyph.
func stripTones(glyph string) string {
	return strings.Map(func(r rune) rune {
		for _, mod := range skinToneModifiers {
			if r == mod {
				return -1
			}
		}
		return r
	}, glyph)
}

// glyphKey strips the emoji variation selector (U+FE0F) so that a toned
// sequence matches its base even when only one of the two carries it.
func glyphKey(glyph string) string {
	return strings.Map(func(r rune) rune {
		if r == '\uFE0F' {
			return -1
		}
		return r
	}, glyph)
}

// cleanName drops the emoji version tag some dataset names carry.
func cleanName(name string) string {
	return unicodeVersionTag.ReplaceAllString(strings.TrimSpace(name), "")
}

// cleanSlug drops the slugified version tag.
func cleanSlug(slug string) string {
	return slugVersionTag.ReplaceAllString(slug, "")
}

// keywordsFor derives search keywords from the slug and subgroup tokens.
func keywordsFor(gm gomoji.Emoji) []string {
	seen := make(map[string]struct{})
	var kws []string
	add := func(tok string) {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if len(tok) < 2 {
			return
		}
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		kws = append(kws, tok)
	}
	for _, tok := range strings.Split(cleanSlug(gm.Slug), "-") {
		add(tok)
	}
	for _, tok := range strings.Split(normalizeGroup(gm.SubGroup), "-") {
		add(tok)
	}
	return kws
}
