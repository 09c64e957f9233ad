////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package emoji

import "testing"

func TestValidateGlyph(t *testing.T) {
	testGlyphs := []string{
		"🚀", "😂", "🤣", "👍", "😭", "🙏", "😘", "🥰", "😍", "😊",
		"A", "b", "AA", "1", "", "🚀🚀", "🚀A", "👍👍👍", "👍😘A",
	}

	expected := []error{
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		InvalidGlyph, InvalidGlyph, InvalidGlyph, InvalidGlyph,
		InvalidGlyph, InvalidGlyph, InvalidGlyph, InvalidGlyph,
		InvalidGlyph,
	}

	for i, g := range testGlyphs {
		err := ValidateGlyph(g)
		if err != expected[i] {
			t.Errorf("Got incorrect response for %q (%d): "+
				"`%s` vs `%s`", g, i, err, expected[i])
		}
	}
}
