// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"strings"

	"golang.org/x/exp/slices"
)

// MapNodes returns a map from the internal nodes of the tree
// (including the root)
// to the equivalent nodes of another tree.
//
// Two nodes are equivalent if they have the same clade,
// or if the clade of a node is the split
// (the complement of the clade)
// of the other node,
// which is the case of trees with a different root.
// Nodes are matched from the terminals to the root,
// and each node of the other tree
// is used at most once.
// Nodes without an equivalent
// are not included in the map.
func (t *Tree) MapNodes(other *Tree) map[string]string {
	clades := make(map[string]string, len(other.order))
	splits := make(map[string]string, len(other.order))
	for _, n := range other.root.nodeList(nil) {
		if n.isTerm() {
			continue
		}
		clades[cladeKey(n.terms(nil))] = n.id
		if n.parent != nil {
			splits[cladeKey(other.outside(n))] = n.id
		}
	}

	m := make(map[string]string)
	used := make(map[string]bool)
	t.root.mapNodes(m, used, clades, splits)
	return m
}

func (n *node) mapNodes(m map[string]string, used map[string]bool, clades, splits map[string]string) {
	if n.isTerm() {
		return
	}
	for _, c := range n.children {
		c.mapNodes(m, used, clades, splits)
	}

	key := cladeKey(n.terms(nil))
	if id, ok := clades[key]; ok && !used[id] {
		m[n.id] = id
		used[id] = true
		return
	}
	if id, ok := splits[key]; ok && !used[id] {
		m[n.id] = id
		used[id] = true
	}
}

// CladeKey returns a string that identifies
// a set of terminals.
func cladeKey(terms []string) string {
	terms = slices.Clone(terms)
	slices.Sort(terms)
	return strings.Join(terms, "\x00")
}
