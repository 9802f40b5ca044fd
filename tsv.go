// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var headerFields = []string{
	"tree",
	"node",
	"parent",
	"kind",
	"length",
	"label",
}

// ReadTSV reads a collection of phylogenetic trees
// from a TSV file.
//
// The TSV must contain the following fields:
//
//	-tree, for the name of the tree
//	-node, for the ID of the node
//	-parent, for of ID of the parent node
//	    (empty for the root)
//	-kind, the kind of the node
//	    (root, internal, or tip)
//	-length, the length of the branch to the parent
//	    (empty if undefined)
//	-label, the label of an internal node
//
// Parent nodes should be defined,
// before any children node.
// The ID of a terminal is its name.
//
// Here is an example file:
//
//	# phylogenetic trees
//	tree	node	parent	kind	length	label
//	OG0001	<2>		root
//	OG0001	A	<2>	tip	1
//	OG0001	<1>	<2>	internal	1	95
//	OG0001	B	<1>	tip	1
//	OG0001	C	<1>	tip	1
//
// As in Parse,
// a tree is taken as unrooted
// if its root has three children.
func ReadTSV(r io.Reader) (*Collection, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range headerFields {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	c := NewCollection()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		// trailing empty fields can be omitted
		for len(row) < len(head) {
			row = append(row, "")
		}

		f := "tree"
		name := strings.Join(strings.Fields(row[fields[f]]), " ")
		if name == "" {
			continue
		}

		t := c.Tree(name)
		if t == nil {
			t = &Tree{
				nodes: make(map[string]*node),
			}
			if err := c.Add(name, t); err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
			}
		}

		f = "node"
		id := strings.TrimSpace(row[fields[f]])
		if id == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty node ID", ln, f)
		}
		if _, dup := t.nodes[id]; dup {
			return nil, fmt.Errorf("on row %d: field %q: %w: %s", ln, f, ErrAddRepeated, id)
		}

		f = "kind"
		k, err := parseKind(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "parent"
		pID := strings.TrimSpace(row[fields[f]])
		var p *node
		if pID != "" {
			var ok bool
			p, ok = t.nodes[pID]
			if !ok {
				return nil, fmt.Errorf("on row %d: field %q: %w: %s", ln, f, ErrAddNoParent, pID)
			}
			if p.term {
				return nil, fmt.Errorf("on row %d: field %q: %w: %s", ln, f, ErrAddTerm, pID)
			}
			if k == KindRoot {
				return nil, fmt.Errorf("on row %d: field %q: root with parent %s", ln, f, pID)
			}
		} else {
			if t.root != nil {
				return nil, fmt.Errorf("on row %d: field %q: root already defined", ln, f)
			}
			if k != KindRoot {
				return nil, fmt.Errorf("on row %d: field %q: node %s without parent", ln, f, id)
			}
		}

		n := &node{
			id:     id,
			parent: p,
			term:   k == KindTip,
		}

		f = "length"
		if v := strings.TrimSpace(row[fields[f]]); v != "" && p != nil {
			l, err := parseLength(v)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %w", ln, f, err)
			}
			n.brLen = l
		}

		f = "label"
		if !n.term {
			n.label = row[fields[f]]
		}

		t.nodes[id] = n
		if n.term {
			t.tips = append(t.tips, id)
		} else {
			t.order = append(t.order, id)
		}
		if p != nil {
			p.children = append(p.children, n)
		} else {
			t.root = n
		}
	}

	for _, name := range c.Names() {
		t := c.Tree(name)
		if t.root == nil {
			return nil, fmt.Errorf("tree %s: undefined root", name)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("tree %s: %w", name, err)
		}
		t.rooted = len(t.root.children) != 3
		t.syncNext()
	}

	return c, nil
}

func parseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tip":
		return KindTip, nil
	case "internal":
		return KindInternal, nil
	case "root":
		return KindRoot, nil
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// TSV encodes a collection of phylogenetic trees
// into a TSV file.
func (c *Collection) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# phylogenetic trees\n")
	fmt.Fprintf(bw, "# data saved on: %s\n", time.Now().Format(time.RFC3339))
	tab := csv.NewWriter(bw)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(headerFields); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	for _, nm := range c.Names() {
		if err := c.trees[nm].root.tsv(tab, nm); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

func (n *node) tsv(w *csv.Writer, name string) error {
	var p string
	k := KindRoot
	if n.parent != nil {
		p = n.parent.id
		k = KindInternal
		if n.isTerm() {
			k = KindTip
		}
	}
	row := []string{
		name,
		n.id,
		p,
		k.String(),
		n.brLen.text,
		n.label,
	}
	if err := w.Write(row); err != nil {
		return err
	}

	for _, c := range n.children {
		if err := c.tsv(w, name); err != nil {
			return err
		}
	}
	return nil
}
