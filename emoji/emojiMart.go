////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package emoji

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// martID represents the alias for an emoji in an emoji-mart dataset. For
// example, the alias for the emoji 💯 would be "100".
type martID string

// codepoint represents the Unicode codepoint for an emoji. For example, the
// emoji 💯 would have the codepoint "1f4af".
type codepoint string

// martData adheres to the JSON file format of the emoji-mart library.
//
// Doc: https://github.com/missive/emoji-mart/
// JSON example: https://github.com/missive/emoji-mart/blob/main/packages/emoji-mart-data/sets/14/native.json
type martData struct {
	Categories []martCategory    `json:"categories"`
	Emojis     map[martID]mart   `json:"emojis"`
	Aliases    map[string]martID `json:"aliases"`
}

// martCategory adheres to the category field within the emoji-mart JSON file
// (see martData for more detail).
type martCategory struct {
	Emojis []martID `json:"emojis"`
	Id     string   `json:"id"`
}

// mart adheres to the emoji field found within the emoji-mart JSON file (see
// martData for more detail).
type mart struct {
	Id       martID     `json:"id"`
	Name     string     `json:"name"`
	Keywords []string   `json:"keywords"`
	Skins    []martSkin `json:"skins"`
	Version  float32    `json:"version"`
}

// martSkin adheres to the skin field within the emoji field of the emoji-mart
// JSON file. Index 0 is the default skin; indices 1 through 5 follow the
// Fitzpatrick tone order.
type martSkin struct {
	Unified codepoint `json:"unified"`
	Native  string    `json:"native"`
}

// MartFileSource builds the dataset from an emoji-mart native JSON file on
// disk.
func MartFileSource(path string) Source {
	return func() (*Dataset, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(
				err, "failed to read emoji-mart file %q", path)
		}
		return parseMart(data)
	}
}

// parseMart converts raw emoji-mart JSON into a Dataset.
func parseMart(data []byte) (*Dataset, error) {
	var md martData
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, errors.Wrap(
			err, "failed to parse emoji-mart JSON")
	}
	if len(md.Emojis) == 0 {
		return nil, errors.New("emoji-mart JSON contains no emojis")
	}

	ds := &Dataset{
		Aliases:    make(map[string]string, len(md.Aliases)),
		Categories: make(map[string][]string),
	}

	// The categories section fixes the ordering; emojis absent from every
	// category are appended afterward in id order so nothing is lost and
	// the tail is stable.
	placed := make(map[martID]struct{}, len(md.Emojis))
	for _, cat := range md.Categories {
		for _, id := range cat.Emojis {
			me, ok := md.Emojis[id]
			if !ok {
				continue
			}
			e := convertMart(id, me)
			if IsCategory(cat.Id) {
				ds.Categories[cat.Id] =
					append(ds.Categories[cat.Id], e.ID)
			}
			if _, dup := placed[id]; !dup {
				placed[id] = struct{}{}
				ds.Emojis = append(ds.Emojis, e)
			}
		}
	}
	leftover := make([]martID, 0, len(md.Emojis)-len(placed))
	for id := range md.Emojis {
		if _, ok := placed[id]; !ok {
			leftover = append(leftover, id)
		}
	}
	sort.Slice(leftover, func(a, b int) bool {
		return leftover[a] < leftover[b]
	})
	for _, id := range leftover {
		ds.Emojis = append(ds.Emojis, convertMart(id, md.Emojis[id]))
	}

	for alias, id := range md.Aliases {
		ds.Aliases[NormalizeID(alias)] = NormalizeID(string(id))
	}

	return ds, nil
}

// convertMart maps a single emoji-mart record onto the internal Emoji type.
func convertMart(id martID, me mart) Emoji {
	skins := make([]string, 0, len(me.Skins))
	for _, s := range me.Skins {
		skins = append(skins, s.Native)
	}
	if len(skins) == 0 {
		skins = []string{""}
	}
	if len(skins) > NumSkinTones {
		skins = skins[:NumSkinTones]
	}
	return Emoji{
		ID:       NormalizeID(string(id)),
		Name:     me.Name,
		Skins:    skins,
		Keywords: append([]string(nil), me.Keywords...),
	}
}
