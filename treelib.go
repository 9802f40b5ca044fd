// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package treelib implements a parser for phylogenetic trees
// in Newick (parenthetical) format,
// and a set of queries and transformations
// over the parsed trees.
//
// Nodes are identified by strings.
// A terminal is identified by its name,
// and internal nodes by a synthetic identifier
// of the form <N>,
// in which N is an integer assigned during parsing.
// Synthetic identifiers are only valid for the tree
// in which they were assigned;
// use MapNodes to find equivalent nodes
// between two different trees.
package treelib

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	// Newick errors
	ErrParse = errors.New("invalid newick tree")

	// Query errors
	ErrNodeNotFound = errors.New("node not in tree")
	ErrRootSplit    = errors.New("split undefined for the root")
	ErrEmptyTipSet  = errors.New("empty terminal set")

	// Transformation errors
	ErrAlreadyUnrooted = errors.New("tree already unrooted")
	ErrUnrootTips      = errors.New("both root children are terminals")
	ErrNonMonophyletic = errors.New("non monophyletic group")
	ErrRootAtRoot      = errors.New("node is already the root")
	ErrEmptyResult     = errors.New("less than two terminals")

	// Tree adding errors
	ErrAddNoParent = errors.New("parent ID not in tree")
	ErrAddRepeated = errors.New("repeated node ID")
	ErrAddTerm     = errors.New("parent is a terminal")

	// Tree validation errors
	ErrValSingleChild = errors.New("node with less than two descendants")
)

// Kind is the kind of a node.
type Kind int

// Valid node kinds.
const (
	KindTip Kind = iota
	KindInternal
	KindRoot
)

func (k Kind) String() string {
	switch k {
	case KindTip:
		return "tip"
	case KindInternal:
		return "internal"
	case KindRoot:
		return "root"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Tree is a phylogenetic tree,
// a set of nodes with a single common ancestor.
type Tree struct {
	nodes map[string]*node
	root  *node

	// internal nodes in resolution order
	order []string
	// terminals in input order
	tips []string

	rooted bool

	// last synthetic ID
	next int
}

// New returns a new tree with only a root node.
// Rooted sets whether the tree will be treated
// as a rooted tree.
func New(rooted bool) *Tree {
	t := &Tree{
		nodes:  make(map[string]*node),
		rooted: rooted,
	}
	root := &node{id: t.newID()}
	t.nodes[root.id] = root
	t.order = append(t.order, root.id)
	t.root = root

	return t
}

// Add adds a node as a child of the indicated parent
// with the indicated branch length
// (use math.NaN for an undefined length).
// If name is empty,
// the added node will be an internal node,
// otherwise it will be a terminal with that name.
// It returns the ID of the added node.
func (t *Tree) Add(parent string, brLen float64, name string) (string, error) {
	p, ok := t.nodes[parent]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrAddNoParent, parent)
	}
	if p.term {
		return "", fmt.Errorf("%w: %q", ErrAddTerm, parent)
	}

	name = strings.TrimSpace(name)
	n := &node{parent: p}
	if name == "" {
		n.id = t.newID()
		t.order = append(t.order, n.id)
	} else {
		if _, dup := t.nodes[name]; dup {
			return "", fmt.Errorf("%w: %q", ErrAddRepeated, name)
		}
		n.id = name
		n.term = true
		t.tips = append(t.tips, n.id)
	}
	if !math.IsNaN(brLen) {
		n.brLen = newLength(brLen)
	}

	p.children = append(p.children, n)
	t.nodes[n.id] = n
	return n.id, nil
}

// BranchLength returns the length of the branch
// that connects a node with its parent.
// The boolean is false if the length is undefined
// (as is always the case for the root).
func (t *Tree) BranchLength(id string) (float64, bool, error) {
	n, err := t.node(id)
	if err != nil {
		return 0, false, err
	}
	return n.brLen.value, n.brLen.defined(), nil
}

// Children returns the IDs of the children of a node,
// in the order in which they were defined.
// A terminal has no children.
func (t *Tree) Children(id string) ([]string, error) {
	n, err := t.node(id)
	if err != nil {
		return nil, err
	}

	children := make([]string, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, c.id)
	}
	return children, nil
}

// Internals returns the IDs of all non-terminal nodes
// (including the root)
// in the order in which they were resolved.
func (t *Tree) Internals() []string {
	return slices.Clone(t.order)
}

// IsRooted returns true if the tree is rooted.
//
// For trees read with Parse,
// the value is inferred from the number of children of the root:
// a root with three children is taken as an unrooted tree.
// This only works for otherwise bifurcating trees;
// use ParseRooted to set the rootedness explicitly.
func (t *Tree) IsRooted() bool {
	return t.rooted
}

// IsTip returns true if the node is a terminal.
func (t *Tree) IsTip(id string) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	return n.isTerm()
}

// Kind returns the kind of a node.
func (t *Tree) Kind(id string) (Kind, error) {
	n, err := t.node(id)
	if err != nil {
		return 0, err
	}
	switch {
	case n.parent == nil:
		return KindRoot, nil
	case n.isTerm():
		return KindTip, nil
	}
	return KindInternal, nil
}

// Label returns the label of a node
// (for example,
// a support value).
func (t *Tree) Label(id string) (string, error) {
	n, err := t.node(id)
	if err != nil {
		return "", err
	}
	return n.label, nil
}

// Len returns the sum of all branch lengths of the tree.
func (t *Tree) Len() float64 {
	var sum float64
	for _, n := range t.nodes {
		sum += n.brLen.value
	}
	return sum
}

// LengthText returns the branch length of a node
// as it was read.
// It returns an empty string if the length is undefined.
func (t *Tree) LengthText(id string) (string, error) {
	n, err := t.node(id)
	if err != nil {
		return "", err
	}
	return n.brLen.text, nil
}

// Nodes returns the IDs of all nodes of the tree
// in pre-order,
// so a parent is always before its children.
func (t *Tree) Nodes() []string {
	ids := make([]string, 0, len(t.nodes))
	return t.root.preOrder(ids)
}

// Parent returns the ID of the parent of a node.
// The root has no parent,
// so it returns an empty string.
func (t *Tree) Parent(id string) (string, error) {
	n, err := t.node(id)
	if err != nil {
		return "", err
	}
	if n.parent == nil {
		return "", nil
	}
	return n.parent.id, nil
}

// Root returns the ID of the root node.
func (t *Tree) Root() string {
	return t.root.id
}

// Siblings returns the IDs of the nodes
// that share the parent with the indicated node.
func (t *Tree) Siblings(id string) ([]string, error) {
	n, err := t.node(id)
	if err != nil {
		return nil, err
	}
	if n.parent == nil {
		return nil, nil
	}

	var sibs []string
	for _, c := range n.parent.children {
		if c == n {
			continue
		}
		sibs = append(sibs, c.id)
	}
	return sibs, nil
}

// Tips returns the names of all terminals of the tree.
func (t *Tree) Tips() []string {
	tips := slices.Clone(t.tips)
	slices.Sort(tips)
	return tips
}

// Validate will return an error if the tree is invalid.
// A tree is invalid if it has internal nodes
// with less than two children.
func (t *Tree) Validate() error {
	for _, n := range t.nodes {
		if n.term {
			continue
		}
		if len(n.children) < 2 {
			return fmt.Errorf("%w: %s", ErrValSingleChild, n.id)
		}
	}
	return nil
}

// String returns the tree in Newick format
// with branch lengths and labels.
func (t *Tree) String() string {
	return t.Newick(Lengths | Labels)
}

func (t *Tree) node(id string) (*node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return n, nil
}

// NewID returns a new synthetic ID
// not used by any node of the tree.
func (t *Tree) newID() string {
	for {
		t.next++
		id := "<" + strconv.Itoa(t.next) + ">"
		if _, dup := t.nodes[id]; !dup {
			return id
		}
	}
}

// SyncNext sets the synthetic ID counter
// to the largest synthetic ID in use.
func (t *Tree) syncNext() {
	for id := range t.nodes {
		if !strings.HasPrefix(id, "<") || !strings.HasSuffix(id, ">") {
			continue
		}
		v, err := strconv.Atoi(id[1 : len(id)-1])
		if err != nil {
			continue
		}
		if v > t.next {
			t.next = v
		}
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) clone() *Tree {
	nt := &Tree{
		nodes:  make(map[string]*node, len(t.nodes)),
		order:  slices.Clone(t.order),
		tips:   slices.Clone(t.tips),
		rooted: t.rooted,
		next:   t.next,
	}
	nt.root = nt.copyNode(t.root, nil)
	return nt
}

func (t *Tree) copyNode(n, parent *node) *node {
	c := &node{
		id:     n.id,
		parent: parent,
		term:   n.term,
		brLen:  n.brLen,
		label:  n.label,
	}
	t.nodes[c.id] = c
	if len(n.children) > 0 {
		c.children = make([]*node, 0, len(n.children))
	}
	for _, d := range n.children {
		c.children = append(c.children, t.copyNode(d, c))
	}
	return c
}

// Reindex rebuilds the node index
// after a change in the tree structure.
func (t *Tree) reindex() {
	t.nodes = make(map[string]*node, len(t.nodes))
	for _, n := range t.root.nodeList(nil) {
		t.nodes[n.id] = n
	}

	order := t.order[:0]
	for _, id := range t.order {
		if _, ok := t.nodes[id]; ok {
			order = append(order, id)
		}
	}
	t.order = order

	tips := t.tips[:0]
	for _, id := range t.tips {
		if _, ok := t.nodes[id]; ok {
			tips = append(tips, id)
		}
	}
	t.tips = tips
}

// A node is a node in a phylogenetic tree.
type node struct {
	id       string
	parent   *node
	children []*node

	// term is true if the node was defined
	// as a terminal.
	term bool

	brLen length
	label string
}

// IsTerm returns true if the node is a terminal
// (i.e. has no children).
func (n *node) isTerm() bool {
	return len(n.children) == 0
}

func (n *node) preOrder(ids []string) []string {
	ids = append(ids, n.id)
	for _, c := range n.children {
		ids = c.preOrder(ids)
	}
	return ids
}

func (n *node) nodeList(ls []*node) []*node {
	ls = append(ls, n)
	for _, c := range n.children {
		ls = c.nodeList(ls)
	}
	return ls
}

// Terms appends the names of the terminals
// descendant of the node.
func (n *node) terms(ls []string) []string {
	if n.isTerm() {
		return append(ls, n.id)
	}
	for _, c := range n.children {
		ls = c.terms(ls)
	}
	return ls
}

// ReplaceChild replaces a child of the node
// keeping its position.
func (n *node) replaceChild(old *node, with ...*node) {
	children := make([]*node, 0, len(n.children)+len(with))
	for _, c := range n.children {
		if c != old {
			children = append(children, c)
			continue
		}
		for _, w := range with {
			w.parent = n
			children = append(children, w)
		}
	}
	n.children = children
}

// A length is a branch length.
type length struct {
	value float64

	// text is the length as it was read,
	// it is empty if the length is undefined.
	text string
}

func newLength(v float64) length {
	return length{
		value: v,
		text:  strconv.FormatFloat(v, 'g', -1, 64),
	}
}

func parseLength(s string) (length, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return length{}, fmt.Errorf("%w: invalid branch length %q", ErrParse, s)
	}
	return length{value: v, text: s}, nil
}

func (l length) defined() bool {
	return l.text != ""
}

// Add returns the length of two consecutive branches.
func (l length) add(o length) length {
	if !l.defined() {
		return o
	}
	if !o.defined() {
		return l
	}
	return newLength(l.value + o.value)
}

func (l length) half() length {
	if !l.defined() {
		return l
	}
	return newLength(l.value / 2)
}
