// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick implements a command to rewrite
// the trees of a tree file.
package newick

import (
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
)

var Command = &command.Command{
	Usage: `newick [--ids] [--no-lengths] [--no-labels]
	[--cpu <number>] [-o|--output <file>]
	[<tree-file>...]`,
	Short: "rewrite trees in newick format",
	Long: `
Command newick reads one or more tree files and writes the trees in newick
format. Comments and extra spaces of the input are removed.

One or more tree files can be given as arguments. If no file is given, the
trees will be read from the standard input.

By default, the trees are written with branch lengths and node labels. Use
the flag --no-lengths to remove branch lengths, and the flag --no-labels to
remove node labels. Use the flag --ids to write the synthetic identifier of
each internal node in place of its label.

By default, trees are read using all available processors. Use the flag --cpu
to set the number of processors.

By default the output will be printed in the standard output. To define an
output file use the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var idsFlag bool
var noLengths bool
var noLabels bool
var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&idsFlag, "ids", false, "")
	c.Flags().BoolVar(&noLengths, "no-lengths", false, "")
	c.Flags().BoolVar(&noLabels, "no-labels", false, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	recs, err := treefile.ReadFiles(c.Stderr(), c.Stdin(), args, numCPU)
	if err != nil {
		return err
	}

	f := treelib.Lengths | treelib.Labels
	if noLengths {
		f &^= treelib.Lengths
	}
	if noLabels {
		f &^= treelib.Labels
	}
	if idsFlag {
		f |= treelib.NodeIDs
	}

	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		for _, r := range recs {
			if err := treefile.WriteTree(w, r.ID, r.Tree.Newick(f)); err != nil {
				return err
			}
		}
		return nil
	})
}
