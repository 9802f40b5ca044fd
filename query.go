// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Clade returns the names of the terminals
// descendant of a node.
// The clade of a terminal is the terminal itself.
func (t *Tree) Clade(id string) ([]string, error) {
	n, err := t.node(id)
	if err != nil {
		return nil, err
	}

	terms := n.terms(nil)
	slices.Sort(terms)
	return terms, nil
}

// Split returns the names of the terminals
// that are not descendants of a node.
// It is undefined for the root.
func (t *Tree) Split(id string) ([]string, error) {
	n, err := t.node(id)
	if err != nil {
		return nil, err
	}
	if n.parent == nil {
		return nil, ErrRootSplit
	}
	return t.outside(n), nil
}

// Outside returns the sorted list of terminals
// not in the clade of a node.
func (t *Tree) outside(n *node) []string {
	in := make(map[string]bool)
	for _, term := range n.terms(nil) {
		in[term] = true
	}

	var out []string
	for _, term := range t.tips {
		if in[term] {
			continue
		}
		out = append(out, term)
	}
	slices.Sort(out)
	return out
}

// LCA returns the least common ancestor
// of a set of nodes,
// i.e. the closest node to the given nodes
// that is an ancestor of all of them.
// The LCA of a single node is the node itself.
func (t *Tree) LCA(ids ...string) (string, error) {
	n, err := t.lca(ids)
	if err != nil {
		return "", err
	}
	return n.id, nil
}

func (t *Tree) lca(ids []string) (*node, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyTipSet
	}

	set := make(map[string]bool, len(ids))
	var first *node
	count := make(map[*node]int)
	for _, id := range ids {
		if set[id] {
			continue
		}
		set[id] = true
		n, err := t.node(id)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = n
		}
		for a := n; a != nil; a = a.parent {
			count[a]++
		}
	}

	for a := first; a != nil; a = a.parent {
		if count[a] == len(set) {
			return a, nil
		}
	}
	return t.root, nil
}

// IsMonophyletic returns true if the given terminals
// are exactly the clade of a node of the tree.
func (t *Tree) IsMonophyletic(tips ...string) (bool, error) {
	n, err := t.lca(tips)
	if err != nil {
		return false, err
	}

	set := make(map[string]bool, len(tips))
	for _, tp := range tips {
		set[tp] = true
	}
	clade := n.terms(nil)
	if len(clade) != len(set) {
		return false, nil
	}
	for _, term := range clade {
		if !set[term] {
			return false, nil
		}
	}
	return true, nil
}

// Depth returns the number of branches
// between a node and the root.
func (t *Tree) Depth(id string) (int, error) {
	n, err := t.node(id)
	if err != nil {
		return 0, err
	}
	return n.depth(), nil
}

// LenToRoot returns the sum of the branch lengths
// between a node and the root.
// Undefined branch lengths are taken as 0.
func (t *Tree) LenToRoot(id string) (float64, error) {
	n, err := t.node(id)
	if err != nil {
		return 0, err
	}
	return n.lenToRoot(), nil
}

// Distance returns the sum of the branch lengths
// in the path between two nodes.
// Undefined branch lengths are taken as 0.
func (t *Tree) Distance(a, b string) (float64, error) {
	na, err := t.node(a)
	if err != nil {
		return 0, err
	}
	nb, err := t.node(b)
	if err != nil {
		return 0, err
	}
	anc, err := t.lca([]string{a, b})
	if err != nil {
		return 0, err
	}
	return na.lenToRoot() + nb.lenToRoot() - 2*anc.lenToRoot(), nil
}

// Edges returns the number of branches
// in the path between two nodes.
func (t *Tree) Edges(a, b string) (int, error) {
	na, err := t.node(a)
	if err != nil {
		return 0, err
	}
	nb, err := t.node(b)
	if err != nil {
		return 0, err
	}
	anc, err := t.lca([]string{a, b})
	if err != nil {
		return 0, err
	}
	return na.depth() + nb.depth() - 2*anc.depth(), nil
}

func (n *node) depth() int {
	d := 0
	for a := n.parent; a != nil; a = a.parent {
		d++
	}
	return d
}

func (n *node) lenToRoot() float64 {
	var sum float64
	for a := n; a.parent != nil; a = a.parent {
		sum += a.brLen.value
	}
	return sum
}

// CheckTips returns an error
// if any of the IDs is not a terminal of the tree.
func (t *Tree) checkTips(ids []string) error {
	for _, id := range ids {
		n, err := t.node(id)
		if err != nil {
			return err
		}
		if !n.isTerm() {
			return fmt.Errorf("%w: %q is not a terminal", ErrNodeNotFound, id)
		}
	}
	return nil
}
