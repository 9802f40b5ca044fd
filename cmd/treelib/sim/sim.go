// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sim implements a command to simulate
// phylogenetic trees.
package sim

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
	"github.com/js-arias/treelib/simulate"
)

var Command = &command.Command{
	Usage: `sim [-o|--output <file>] [--name <tree-name>]
	[--trees <tree-number>] [--coalescent <number>]
	[--unrooted] [--seed <number>]
	--terms <term-number>`,
	Short: "simulate trees",
	Long: `
Command sim creates one or more random trees and writes them as a tree file.

The flag --terms is required and indicates the number of terms that the tree
should have. Terminals are named "term" with a number.

By default, the output will be printed in the standard output. Use the flag
--output, or -o, to define an output file. It will replace any previous file.

By default, the trees will be named "random-tree" with a number. Use the flag
--name to modify the prefix name of the tree.

By default, a single tree will be created. Use the flag --trees to define a
different number of trees.

By default, trees are created by joining random pairs of lineages, with
branch lengths from an exponential distribution with rate 1. Use the flag
--coalescent with the size of the population to create a coalescent tree.

By default, the trees are rooted. Use the flag --unrooted to write unrooted
trees.

Use the flag --seed to set the seed of the random number generator, so the
same trees will be created in different runs.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var nameFlag string
var numTrees int
var numTerms int
var coalescent float64
var unrooted bool
var seed uint64

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numTrees, "trees", 1, "")
	c.Flags().IntVar(&numTerms, "terms", 0, "")
	c.Flags().Float64Var(&coalescent, "coalescent", 0, "")
	c.Flags().BoolVar(&unrooted, "unrooted", false, "")
	c.Flags().Uint64Var(&seed, "seed", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&nameFlag, "name", "random-tree", "")
}

func run(c *command.Command, args []string) error {
	if numTerms < 2 {
		return c.UsageError("flag --terms must be defined, with at least two terminals")
	}
	if unrooted && numTerms < 3 {
		return c.UsageError("unrooted trees require at least three terminals")
	}
	if coalescent < 0 {
		return c.UsageError("flag --coalescent must be a positive value")
	}

	var rnd simulate.Rander
	if seed != 0 {
		rnd = rand.New(rand.NewPCG(seed, seed))
	}

	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		for i := range numTrees {
			name := fmt.Sprintf("%s-%d", nameFlag, i)

			var t *treelib.Tree
			if coalescent > 0 {
				t = simulate.Coalescent(numTerms, coalescent, rnd)
			} else {
				t = simulate.Uniform(numTerms, rnd)
			}
			if unrooted {
				var err error
				t, err = t.Unroot()
				if err != nil {
					return fmt.Errorf("tree %q: %v", name, err)
				}
			}

			if err := treefile.WriteTree(w, name, t.String()); err != nil {
				return err
			}
		}
		return nil
	})
}
