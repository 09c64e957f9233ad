////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package emoji

import "strings"

// Categories is the fixed set of semantic categories used by empty-query
// aggregation. The names follow the emoji-mart category ids.
var Categories = []string{
	"activity", "animals", "face", "flags", "foods", "frequent", "nature",
	"objects", "people", "places", "symbols", "travel",
}

// CategoryFrequent is special-cased: its contents come from the caller's
// recents, not the dataset, so the Store always returns an empty (non-error)
// result for it.
const CategoryFrequent = "frequent"

// validCategories is Categories as a membership set.
var validCategories = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// IsCategory returns true if name is one of the fixed categories.
func IsCategory(name string) bool {
	_, ok := validCategories[name]
	return ok
}

// normalizeGroup folds a Unicode emoji-test group or subgroup name to a
// lowercase hyphenated token so that both the unicode.org spelling
// ("Smileys & Emotion") and the slugified spelling ("smileys-emotion")
// compare equal.
func normalizeGroup(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// categorize maps a group/subgroup pair onto one of the fixed categories.
// Unmapped pairs (e.g. the component group holding the bare skin-tone
// modifiers) return "".
func categorize(group, subGroup string) string {
	g, sg := normalizeGroup(group), normalizeGroup(subGroup)
	switch g {
	case "smileys-emotion":
		return "face"
	case "people-body":
		return "people"
	case "activities":
		return "activity"
	case "food-drink":
		return "foods"
	case "objects":
		return "objects"
	case "symbols":
		return "symbols"
	case "flags":
		return "flags"
	case "animals-nature":
		if strings.HasPrefix(sg, "animal-") {
			return "animals"
		}
		return "nature"
	case "travel-places":
		switch {
		case strings.HasPrefix(sg, "transport-"), sg == "hotel":
			return "travel"
		case sg == "sky-weather":
			return "nature"
		case sg == "time":
			return "symbols"
		default:
			return "places"
		}
	default:
		return ""
	}
}
