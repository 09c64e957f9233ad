////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package render swaps shortcode tokens for glyphs on two surfaces: a
// static, fully rendered document tree and a live, viewport-driven line
// view. Tokens inside protected regions and tokens that do not resolve are
// left byte-for-byte untouched.
package render

import "strings"

// NodeType distinguishes tree node kinds.
type NodeType int

const (
	// Element is a structural node with a tag and children.
	Element NodeType = iota

	// Text is a leaf carrying document text.
	Text
)

// GlyphTag is the tag of inline elements produced by substitution.
const GlyphTag = "emoji"

// Node is one node of a rendered document tree, the static pass's input and
// output shape. Substituted glyph elements carry the original shortcode in
// Token so the raw text can be recovered (e.g. for copy operations).
type Node struct {
	Type     NodeType
	Tag      string
	Text     string
	Token    string
	Children []*Node
}

// NewElement creates an element node.
func NewElement(tag string, children ...*Node) *Node {
	return &Node{Type: Element, Tag: tag, Children: children}
}

// NewText creates a text leaf.
func NewText(text string) *Node {
	return &Node{Type: Text, Text: text}
}

// PlainText flattens the subtree's text. Glyph elements contribute their
// glyph text.
func (n *Node) PlainText() string {
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	if n.Type == Text {
		b.WriteString(n.Text)
		return
	}
	b.WriteString(n.Text)
	for _, c := range n.Children {
		c.appendText(b)
	}
}

// textLeaf locates one text node within its parent, with enough context for
// a boundary decision and an in-place splice.
type textLeaf struct {
	parent    *Node
	index     int
	ancestors []string
	offset    int // start offset within the flattened document text
}

// collectTextLeaves walks the tree in document order gathering every text
// leaf. The returned cursor is the flattened-text length consumed so far.
func collectTextLeaves(n *Node, ancestors []string, cursor int,
	out *[]textLeaf) int {
	cursor += len(n.Text)
	if n.Type != Element {
		return cursor
	}
	tags := append(append([]string(nil), ancestors...), n.Tag)
	for i, c := range n.Children {
		if c.Type == Text {
			*out = append(*out, textLeaf{
				parent:    n,
				index:     i,
				ancestors: tags,
				offset:    cursor,
			})
			cursor += len(c.Text)
			continue
		}
		cursor = collectTextLeaves(c, tags, cursor, out)
	}
	return cursor
}
