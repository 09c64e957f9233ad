////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package render

import (
	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/emojipicker/boundary"
	"gitlab.com/elixxir/emojipicker/emoji"
	"gitlab.com/elixxir/emojipicker/shortcode"
)

// Static is the render pass for a fully rendered, read-only surface. It
// walks the document tree once per invocation; the first invocation blocks
// on the lazy emoji dataset build.
type Static struct {
	resolver *shortcode.Resolver
	skin     func() emoji.SkinTone
}

// NewStatic creates the static pass. skin supplies the user's current tone
// preference per pass.
func NewStatic(resolver *shortcode.Resolver, skin func() emoji.SkinTone) *Static {
	return &Static{resolver: resolver, skin: skin}
}

// Render substitutes every resolvable, unprotected shortcode token under
// root with a glyph element and returns the substitution count. For each
// text node, all matches are resolved and ordered before one combined
// replacement is applied, so partial edits can never corrupt offsets.
// Unresolvable tokens and protected text stay byte-for-byte unchanged.
func (s *Static) Render(root *Node) int {
	if root == nil || root.Type != Element {
		return 0
	}
	full := root.PlainText()
	tone := s.skin()

	var leaves []textLeaf
	collectTextLeaves(root, nil, 0, &leaves)

	substituted := 0
	// Reverse order keeps earlier sibling indices valid while splicing.
	for i := len(leaves) - 1; i >= 0; i-- {
		leaf := leaves[i]
		text := leaf.parent.Children[leaf.index].Text
		segments, count := s.substitute(leaf, text, full, tone)
		if count == 0 {
			continue
		}
		substituted += count
		children := leaf.parent.Children
		spliced := make([]*Node, 0, len(children)+len(segments)-1)
		spliced = append(spliced, children[:leaf.index]...)
		spliced = append(spliced, segments...)
		spliced = append(spliced, children[leaf.index+1:]...)
		leaf.parent.Children = spliced
	}

	jww.TRACE.Printf("Static pass substituted %d shortcodes", substituted)
	return substituted
}

// substitute builds the replacement node sequence for one text node. Each
// token occurrence is gated by the boundary classifier with the flattened
// document text surrounding that occurrence as context. Tokens that are
// protected or do not resolve are folded back into the surrounding text
// unchanged. Returns the segments and the number of glyphs substituted;
// count 0 means the node must not be touched.
func (s *Static) substitute(leaf textLeaf, text, full string,
	tone emoji.SkinTone) ([]*Node, int) {
	tokens := shortcode.Scan(text)
	if len(tokens) == 0 {
		return nil, 0
	}

	type resolved struct {
		tok   shortcode.Token
		glyph string
	}
	var hits []resolved
	for _, tok := range tokens {
		before := full[:leaf.offset+tok.Start]
		after := full[leaf.offset+tok.End:]
		if boundary.SkipNode(leaf.ancestors, before, after) {
			continue
		}
		if glyph, ok := s.resolver.Resolve(tok.ID, tone); ok {
			hits = append(hits, resolved{tok, glyph})
		}
	}
	if len(hits) == 0 {
		return nil, 0
	}

	var segments []*Node
	cursor := 0
	for _, h := range hits {
		if h.tok.Start > cursor {
			segments = append(segments,
				NewText(text[cursor:h.tok.Start]))
		}
		segments = append(segments, &Node{
			Type:  Element,
			Tag:   GlyphTag,
			Text:  h.glyph,
			Token: h.tok.Match,
		})
		cursor = h.tok.End
	}
	if cursor < len(text) {
		segments = append(segments, NewText(text[cursor:]))
	}
	return segments, len(hits)
}
