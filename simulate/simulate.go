// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package simulate creates random trees.
package simulate

import (
	"fmt"
	"math/rand/v2"

	"github.com/js-arias/treelib"
	"gonum.org/v1/gonum/stat/distuv"
)

// Rander is a source of random numbers.
// *rand.Rand from math/rand/v2 implements it.
type Rander interface {
	// IntN returns a random integer in [0, n).
	IntN(n int) int

	// Float64 returns a random number in [0.0, 1.0).
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int    { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Coalescent creates a random rooted tree
// using the Kingman coalescence
// with a population size of n.
// see Felsenstein J. (2004)
// "Inferring Phylogenies", Sinauer, p.456.
//
// Terminals are named term0, term1, ...
// If rnd is nil,
// the default source of math/rand/v2 will be used.
// Coalescent panics if terms < 2.
func Coalescent(terms int, n float64, rnd Rander) *treelib.Tree {
	return join(terms, rnd, func(k int) float64 {
		return float64(k*(k-1)) / (4 * n)
	})
}

// Uniform creates a random rooted tree
// by joining random pairs of lineages,
// with the time between two joins
// drawn from an exponential distribution
// with a rate of 1.
//
// Terminals are named term0, term1, ...
// If rnd is nil,
// the default source of math/rand/v2 will be used.
// Uniform panics if terms < 2.
func Uniform(terms int, rnd Rander) *treelib.Tree {
	return join(terms, rnd, func(int) float64 {
		return 1
	})
}

// A lineage is a node of the simulated tree.
type lineage struct {
	name     string
	age      float64
	children []*lineage
}

// Join builds a tree by joining lineages backwards in time
// with rate returning the rate of joins
// when there are k lineages.
func join(terms int, rnd Rander, rate func(k int) float64) *treelib.Tree {
	if terms < 2 {
		panic("expecting more than two terminals")
	}
	if rnd == nil {
		rnd = globalRand{}
	}

	lins := make([]*lineage, 0, terms)
	for i := range terms {
		lins = append(lins, &lineage{name: fmt.Sprintf("term%d", i)})
	}

	var age float64
	for k := terms; k > 1; k-- {
		exp := distuv.Exponential{
			Rate: rate(k),
		}
		age += exp.Quantile(rnd.Float64())

		i := rnd.IntN(k)
		j := rnd.IntN(k - 1)
		if j >= i {
			j++
		}
		a := &lineage{
			age:      age,
			children: []*lineage{lins[i], lins[j]},
		}

		// remove the joined lineages
		if i < j {
			i, j = j, i
		}
		lins[i] = lins[k-1]
		lins[j] = lins[k-2]
		lins = lins[:k-2]
		lins = append(lins, a)
	}

	t := treelib.New(true)
	root := lins[0]
	for _, c := range root.children {
		c.add(t, t.Root(), root.age)
	}
	return t
}

func (l *lineage) add(t *treelib.Tree, parent string, age float64) {
	id, err := t.Add(parent, age-l.age, l.name)
	if err != nil {
		panic(fmt.Sprintf("unexpected error: %v", err))
	}
	for _, c := range l.children {
		c.add(t, id, l.age)
	}
}
