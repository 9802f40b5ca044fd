// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"fmt"
	"strings"
)

// Unroot returns a new unrooted tree
// by merging one of the children of the root
// with the root,
// so the root becomes a trifurcation.
// The branch lengths of the merged branches are added.
func (t *Tree) Unroot() (*Tree, error) {
	if !t.rooted {
		return nil, ErrAlreadyUnrooted
	}

	nt := t.clone()
	if len(nt.root.children) == 2 && !nt.collapseRoot() {
		return nil, ErrUnrootTips
	}
	nt.rooted = false
	nt.reindex()
	return nt, nil
}

// CollapseRoot merges an internal child
// of a bifurcating root into the root.
// It returns false if the root can not be collapsed.
func (t *Tree) collapseRoot() bool {
	r := t.root
	if len(r.children) != 2 {
		return false
	}
	c, o := r.children[0], r.children[1]
	if c.isTerm() {
		c, o = o, c
	}
	if c.isTerm() {
		return false
	}

	// both branches define the same bipartition
	o.brLen = o.brLen.add(c.brLen)
	if o.label == "" && !o.isTerm() {
		o.label = c.label
	}
	r.replaceChild(c, c.children...)
	return true
}

// RootAt returns a new rooted tree
// with the root placed in the branch
// that connects the indicated node with its parent.
// The length of that branch is split in half
// between the two children of the new root.
//
// If the previous root has only two children,
// it is removed,
// and its two branches are merged.
func (t *Tree) RootAt(id string) (*Tree, error) {
	n, err := t.node(id)
	if err != nil {
		return nil, err
	}
	if n.parent == nil {
		return nil, fmt.Errorf("%w: %s", ErrRootAtRoot, id)
	}
	return t.reroot(id), nil
}

// RootTips returns a new rooted tree
// with the indicated terminals as one of the children
// of the new root.
// If the terminals are not monophyletic,
// but its complement is,
// the complement will be used.
// It returns ErrNonMonophyletic
// if neither the terminals,
// nor the complement are monophyletic.
func (t *Tree) RootTips(tips ...string) (*Tree, error) {
	if len(tips) == 0 {
		return nil, ErrEmptyTipSet
	}
	if err := t.checkTips(tips); err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(tips))
	for _, tp := range tips {
		set[tp] = true
	}
	if len(set) == len(t.tips) {
		return nil, fmt.Errorf("%w: group includes all terminals", ErrNonMonophyletic)
	}

	mono, err := t.IsMonophyletic(tips...)
	if err != nil {
		return nil, err
	}
	if mono {
		n, _ := t.lca(tips)
		return t.reroot(n.id), nil
	}

	var comp []string
	for _, tp := range t.tips {
		if !set[tp] {
			comp = append(comp, tp)
		}
	}
	mono, err = t.IsMonophyletic(comp...)
	if err != nil {
		return nil, err
	}
	if !mono {
		return nil, fmt.Errorf("%w: %s", ErrNonMonophyletic, strings.Join(tips, ", "))
	}
	n, _ := t.lca(comp)
	return t.reroot(n.id), nil
}

// An edge is an undirected branch
// used to re-orient a tree.
type edge struct {
	a, b  *node
	brLen length
	label string
}

func (e *edge) other(n *node) *node {
	if e.a == n {
		return e.b
	}
	return e.a
}

func (t *Tree) reroot(id string) *Tree {
	nt := t.clone()
	target := nt.nodes[id]

	// labels and lengths belong to the branch
	adj := make(map[*node][]*edge)
	up := make(map[*node]*edge)
	for _, n := range nt.root.nodeList(nil) {
		if n.parent == nil {
			continue
		}
		e := &edge{a: n.parent, b: n, brLen: n.brLen, label: n.label}
		adj[n.parent] = append(adj[n.parent], e)
		adj[n] = append(adj[n], e)
		up[n] = e
	}

	old := nt.root
	if len(adj[old]) == 2 {
		e1, e2 := adj[old][0], adj[old][1]
		a, b := e1.other(old), e2.other(old)
		m := &edge{a: a, b: b, brLen: e1.brLen.add(e2.brLen), label: e1.label}
		if m.label == "" {
			m.label = e2.label
		}
		replaceEdge(adj, a, e1, m)
		replaceEdge(adj, b, e2, m)
		if up[target] == e1 || up[target] == e2 {
			up[target] = m
		}
		delete(adj, old)
	}

	e := up[target]
	other := e.other(target)
	root := &node{id: nt.newID()}
	half := e.brLen.half()
	toTarget := &edge{a: root, b: target, brLen: half, label: e.label}
	toOther := &edge{a: root, b: other, brLen: half, label: e.label}
	replaceEdge(adj, target, e, toTarget)
	replaceEdge(adj, other, e, toOther)
	adj[root] = []*edge{toTarget, toOther}

	root.orient(adj, nil)
	nt.root = root
	nt.order = append(nt.order, root.id)
	nt.rooted = true
	nt.reindex()
	return nt
}

func replaceEdge(adj map[*node][]*edge, n *node, old, with *edge) {
	for i, e := range adj[n] {
		if e == old {
			adj[n][i] = with
			return
		}
	}
}

// Orient sets the parent of each node
// from the branches reached from n.
func (n *node) orient(adj map[*node][]*edge, in *edge) {
	n.children = nil
	for _, e := range adj[n] {
		if e == in {
			continue
		}
		c := e.other(n)
		c.parent = n
		c.brLen = e.brLen
		c.label = ""
		if !c.term {
			c.label = e.label
		}
		n.children = append(n.children, c)
		c.orient(adj, e)
	}
}

// Prune returns a new tree
// without the indicated terminals.
// Internal nodes left with a single child are removed,
// and the branch lengths of the removed nodes
// are added to the branch of its child.
//
// It returns ErrEmptyResult
// if less than two terminals will remain in the tree.
func (t *Tree) Prune(tips ...string) (*Tree, error) {
	if err := t.checkTips(tips); err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(tips))
	var ls []string
	for _, tp := range tips {
		if set[tp] {
			continue
		}
		set[tp] = true
		ls = append(ls, tp)
	}
	if len(t.tips)-len(ls) < 2 {
		return nil, fmt.Errorf("%w: pruning %d of %d terminals", ErrEmptyResult, len(ls), len(t.tips))
	}

	nt := t.clone()
	for _, id := range ls {
		n := nt.nodes[id]
		p := n.parent
		p.replaceChild(n)
		nt.splice(p)
	}

	// an unrooted tree must keep its root trifurcation
	if !nt.rooted {
		nt.collapseRoot()
	}
	nt.reindex()
	return nt, nil
}

// Splice removes a node with a single child.
func (t *Tree) splice(p *node) {
	if len(p.children) != 1 {
		return
	}
	c := p.children[0]
	if p.parent == nil {
		c.parent = nil
		c.brLen = length{}
		t.root = c
		return
	}
	c.brLen = c.brLen.add(p.brLen)
	p.parent.replaceChild(p, c)
}

// Rename returns a new tree
// in which the terminals are renamed
// using a map of old to new names.
// Names not in the tree are ignored.
func (t *Tree) Rename(names map[string]string) (*Tree, error) {
	nt := t.clone()
	for i, id := range nt.tips {
		nw, ok := names[id]
		if !ok {
			continue
		}
		nw = strings.TrimSpace(nw)
		if nw == "" || nw == id {
			continue
		}
		nt.nodes[id].id = nw
		nt.tips[i] = nw
	}

	nt.nodes = make(map[string]*node, len(t.nodes))
	for _, n := range nt.root.nodeList(nil) {
		if _, dup := nt.nodes[n.id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrAddRepeated, n.id)
		}
		nt.nodes[n.id] = n
	}
	return nt, nil
}
