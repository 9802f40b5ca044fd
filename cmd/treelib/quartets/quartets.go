// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package quartets implements a command to sample
// the quartets of the internal branches of a tree.
package quartets

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
)

var Command = &command.Command{
	Usage: `quartets [-k <number>] [--seed <number>] [--groups]
	[--cpu <number>] [-o|--output <file>]
	[<tree-file>...]`,
	Short: "sample quartets of the internal branches",
	Long: `
Command quartets reads one or more tree files and, for each internal branch
of each tree, samples quartets of terminals around the branch.

A quartet is formed by four groups of terminals around the branch of an
internal node: the two clades descendant from the node, the clade of the
sister of the node, and the rest of the terminals. Nodes in which the
quartet is not applicable (for example, the root, or a node with a terminal
as a sister in a rooted tree) are ignored.

One or more tree files can be given as arguments. If no file is given, the
trees will be read from the standard input.

By default, up to 10 quartets are sampled for each branch. Use the flag -k
to set a different number. If a branch has less possible quartets, all of
them will be printed. Use the flag --seed to set the seed of the random
number generator, so the same quartets will be sampled in different runs.

The output is a tab-delimited table with the following columns:

	- tree   the identifier of the tree
	- node   the identifier of the node
	- d1     a terminal from the first descendant clade
	- d2     a terminal from the second descendant clade
	- sister a terminal from the sister clade
	- other  a terminal from the rest of the tree

Use the flag --groups to print the four groups of each node, as comma
separated lists, instead of sampled quartets.

By default, trees are read using all available processors. Use the flag --cpu
to set the number of processors.

By default the output will be printed in the standard output. To define an
output file use the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var groupsFlag bool
var kFlag int
var seed uint64
var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&groupsFlag, "groups", false, "")
	c.Flags().IntVar(&kFlag, "k", 10, "")
	c.Flags().Uint64Var(&seed, "seed", 0, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if kFlag <= 0 && !groupsFlag {
		return c.UsageError("flag -k must be a positive number")
	}

	recs, err := treefile.ReadFiles(c.Stderr(), c.Stdin(), args, numCPU)
	if err != nil {
		return err
	}

	var rnd treelib.Rander
	if seed != 0 {
		rnd = rand.New(rand.NewPCG(seed, seed))
	}

	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		fmt.Fprintf(w, "tree\tnode\td1\td2\tsister\tother\n")
		for _, r := range recs {
			if err := writeQuartets(w, r, rnd); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeQuartets(w io.Writer, r *treelib.Record, rnd treelib.Rander) error {
	for _, id := range r.Tree.Internals() {
		if groupsFlag {
			q, ok, err := r.Tree.Quartet(id)
			if err != nil {
				return fmt.Errorf("tree %q: %v", r.ID, err)
			}
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, id, strings.Join(q.D1, ","), strings.Join(q.D2, ","), strings.Join(q.Sister, ","), strings.Join(q.Other, ","))
			continue
		}

		samples, ok, err := r.Tree.SampleQuartets(id, kFlag, rnd)
		if err != nil {
			return fmt.Errorf("tree %q: %v", r.ID, err)
		}
		if !ok {
			continue
		}
		for _, s := range samples {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, id, strings.Join(s[:], "\t"))
		}
	}
	return nil
}
