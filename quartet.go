// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"math/rand/v2"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat/combin"
)

// A Quartet is the set of four groups of terminals
// around the branch of an internal node:
// the clades of the two children of the node,
// the clade of its sister,
// and the rest of the terminals.
type Quartet struct {
	D1     []string
	D2     []string
	Sister []string
	Other  []string
}

// Quartet returns the quartet defined by a node.
// The boolean is false if the quartet is not applicable,
// that is,
// if the node is the root,
// a terminal,
// a node without exactly two children,
// a node without a single sister
// (except on the children of an unrooted root),
// a node with a terminal sister in a rooted tree,
// or if any of the groups is empty.
func (t *Tree) Quartet(id string) (Quartet, bool, error) {
	n, err := t.node(id)
	if err != nil {
		return Quartet{}, false, err
	}
	if n.parent == nil || len(n.children) != 2 {
		return Quartet{}, false, nil
	}

	var sibs []*node
	for _, c := range n.parent.children {
		if c != n {
			sibs = append(sibs, c)
		}
	}

	q := Quartet{
		D1: sortedTerms(n.children[0]),
		D2: sortedTerms(n.children[1]),
	}
	switch {
	case len(sibs) == 1:
		if t.rooted && sibs[0].isTerm() {
			return Quartet{}, false, nil
		}
		q.Sister = sortedTerms(sibs[0])
		q.Other = t.outside(n.parent)
	case len(sibs) == 2 && n.parent.parent == nil && !t.rooted:
		q.Sister = sortedTerms(sibs[0])
		q.Other = sortedTerms(sibs[1])
	default:
		return Quartet{}, false, nil
	}

	if len(q.Other) == 0 {
		return Quartet{}, false, nil
	}
	return q, true, nil
}

func sortedTerms(n *node) []string {
	terms := n.terms(nil)
	slices.Sort(terms)
	return terms
}

// A Sample is a set of four terminals,
// one from each group of a quartet,
// in the order D1, D2, Sister, Other.
type Sample [4]string

// Rander is a source of random integers.
// *rand.Rand from math/rand/v2 implements it.
type Rander interface {
	// IntN returns a random integer in [0, n).
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// SampleQuartets returns up to k samples
// from the quartet of a node,
// sampled without replacement
// from all possible combinations
// of one terminal of each group.
// If there are k or less combinations,
// all of them are returned.
// Samples are returned in the order of the combinations.
// If rnd is nil,
// the default source of math/rand/v2 will be used.
//
// The boolean is false if the quartet is not applicable.
func (t *Tree) SampleQuartets(id string, k int, rnd Rander) ([]Sample, bool, error) {
	q, ok, err := t.Quartet(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	if k <= 0 {
		return nil, true, nil
	}
	if rnd == nil {
		rnd = globalRand{}
	}

	groups := [4][]string{q.D1, q.D2, q.Sister, q.Other}
	dims := make([]int, len(groups))
	total := 1
	for i, g := range groups {
		dims[i] = len(g)
		total *= len(g)
	}

	var idx []int
	if total <= k {
		idx = make([]int, total)
		for i := range idx {
			idx[i] = i
		}
	} else {
		idx = sampleIndex(total, k, rnd)
		slices.Sort(idx)
	}

	samples := make([]Sample, 0, len(idx))
	sub := make([]int, len(dims))
	for _, i := range idx {
		combin.SubFor(sub, i, dims)
		var s Sample
		for j, g := range groups {
			s[j] = g[sub[j]]
		}
		samples = append(samples, s)
	}
	return samples, true, nil
}

// SampleIndex returns k different values in [0, n)
// using Floyd's algorithm.
func sampleIndex(n, k int, rnd Rander) []int {
	chosen := make(map[int]bool, k)
	idx := make([]int, 0, k)
	for j := n - k; j < n; j++ {
		v := rnd.IntN(j + 1)
		if chosen[v] {
			v = j
		}
		chosen[v] = true
		idx = append(idx, v)
	}
	return idx
}
