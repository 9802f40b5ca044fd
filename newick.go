// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"fmt"
	"strings"
)

// Parse reads a tree in newick format.
//
// The tree is resolved by groups:
// at each pass all innermost groups
// (a parenthesis without nested parenthesis)
// are replaced by a new internal node,
// with a synthetic ID assigned in the order
// in which the groups are resolved.
// The root is the last resolved group.
//
// Text after a closing parenthesis
// is stored as the label of the internal node.
// Branch lengths are stored as they were read.
//
// If the root has three children,
// the tree is taken as unrooted.
func Parse(s string) (*Tree, error) {
	return parse(s, nil)
}

// ParseRooted reads a tree in newick format
// with an explicit rootedness.
// A rooted tree must have a root with two children,
// an unrooted tree must have a root
// with three or more children.
func ParseRooted(s string, rooted bool) (*Tree, error) {
	return parse(s, &rooted)
}

func parse(s string, rooted *bool) (*Tree, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		nodes: make(map[string]*node),
	}

	// terminals are added first,
	// so synthetic IDs never use a terminal name.
	for i, tk := range toks {
		if !isName(toks, i) {
			continue
		}
		if tk.text == "" {
			return nil, fmt.Errorf("%w: empty terminal name at position %d", ErrParse, tk.pos)
		}
		if _, dup := t.nodes[tk.text]; dup {
			return nil, fmt.Errorf("%w: repeated terminal %q", ErrParse, tk.text)
		}
		n := &node{
			id:   tk.text,
			term: true,
		}
		t.nodes[n.id] = n
		t.tips = append(t.tips, n.id)
	}
	if len(t.tips) == 0 {
		return nil, fmt.Errorf("%w: tree without terminals", ErrParse)
	}

	if toks[len(toks)-1].kind == tokEnd {
		toks = toks[:len(toks)-1]
	}
	for hasGroup(toks) {
		toks, err = t.reduce(toks)
		if err != nil {
			return nil, err
		}
	}

	if toks[0].kind != tokNode {
		return nil, fmt.Errorf("%w: expecting a parenthesis at position %d", ErrParse, toks[0].pos)
	}
	switch rest := toks[1:]; {
	case len(rest) == 0:
	case len(rest) == 2 && rest[0].kind == tokColon && rest[1].kind == tokText:
		// a root length is ignored
		if _, err := parseLength(rest[1].text); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unexpected %v at position %d", ErrParse, rest[0], rest[0].pos)
	}

	t.root = toks[0].node
	nc := len(t.root.children)
	if rooted == nil {
		t.rooted = nc != 3
		return t, nil
	}
	if *rooted && nc != 2 {
		return nil, fmt.Errorf("%w: rooted tree with %d root children", ErrParse, nc)
	}
	if !*rooted && nc < 3 {
		return nil, fmt.Errorf("%w: unrooted tree with %d root children", ErrParse, nc)
	}
	t.rooted = *rooted
	return t, nil
}

func hasGroup(toks []token) bool {
	for _, tk := range toks {
		if tk.kind == tokOpen {
			return true
		}
	}
	return false
}

// Reduce replaces all innermost groups
// with a node token.
func (t *Tree) reduce(toks []token) ([]token, error) {
	out := make([]token, 0, len(toks))
	last := 0
	open := -1
	for i := 0; i < len(toks); i++ {
		switch toks[i].kind {
		case tokOpen:
			open = i
			continue
		case tokClose:
		default:
			continue
		}
		if open < 0 {
			// the group contains a group
			// already resolved in this pass
			continue
		}

		n, err := t.group(toks[open+1:i], toks[open].pos)
		if err != nil {
			return nil, err
		}
		end := i + 1
		if end < len(toks) && toks[end].kind == tokText {
			n.label = toks[end].text
			end++
		}

		out = append(out, toks[last:open]...)
		out = append(out, token{kind: tokNode, pos: toks[open].pos, node: n})
		last = end
		i = end - 1
		open = -1
	}
	out = append(out, toks[last:]...)
	return out, nil
}

// Group creates a new internal node
// from the members of a group.
func (t *Tree) group(toks []token, pos int) (*node, error) {
	n := &node{id: t.newID()}

	start := 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) && toks[i].kind != tokComma {
			continue
		}
		c, err := t.member(toks[start:i], pos)
		if err != nil {
			return nil, err
		}
		c.parent = n
		n.children = append(n.children, c)
		start = i + 1
	}
	if len(n.children) < 2 {
		return nil, fmt.Errorf("%w: group with a single member at position %d", ErrParse, pos)
	}

	t.nodes[n.id] = n
	t.order = append(t.order, n.id)
	return n, nil
}

// Member returns the node of a group member
// and sets its branch length.
func (t *Tree) member(toks []token, pos int) (*node, error) {
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty member in group at position %d", ErrParse, pos)
	}

	var c *node
	switch toks[0].kind {
	case tokText:
		c = t.nodes[toks[0].text]
	case tokNode:
		c = toks[0].node
	}
	if c == nil {
		return nil, fmt.Errorf("%w: unexpected %v at position %d", ErrParse, toks[0], toks[0].pos)
	}

	rest := toks[1:]
	if len(rest) == 0 {
		return c, nil
	}
	if rest[0].kind != tokColon {
		return nil, fmt.Errorf("%w: unexpected %v at position %d", ErrParse, rest[0], rest[0].pos)
	}
	if len(rest) != 2 || rest[1].kind != tokText {
		return nil, fmt.Errorf("%w: expecting a branch length at position %d", ErrParse, rest[0].pos)
	}
	l, err := parseLength(rest[1].text)
	if err != nil {
		return nil, err
	}
	c.brLen = l
	return c, nil
}

// Format is a set of flags
// that define the content of a newick output.
type Format uint8

// Valid format flags.
const (
	// Lengths writes the branch lengths.
	Lengths Format = 1 << iota

	// Labels writes the labels of the internal nodes.
	Labels

	// NodeIDs writes the ID of each internal node
	// (in the form <N>)
	// after its closing parenthesis.
	// It takes precedence over Labels.
	NodeIDs
)

// Newick returns the tree in newick format.
// Branch lengths and labels are written
// as they were read.
func (t *Tree) Newick(f Format) string {
	var b strings.Builder
	t.root.newick(&b, f)
	b.WriteByte(';')
	return b.String()
}

func (n *node) newick(b *strings.Builder, f Format) {
	if n.isTerm() {
		b.WriteString(quote(n.id))
	} else {
		b.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				b.WriteByte(',')
			}
			c.newick(b, f)
		}
		b.WriteByte(')')

		switch {
		case f&NodeIDs != 0:
			b.WriteString(n.id)
		case f&Labels != 0:
			b.WriteString(quote(n.label))
		}
	}

	if f&Lengths != 0 && n.parent != nil && n.brLen.defined() {
		b.WriteByte(':')
		b.WriteString(n.brLen.text)
	}
}
