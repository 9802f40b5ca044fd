// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package table implements a command to write the trees
// of a tree file as a table of nodes.
package table

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
)

var Command = &command.Command{
	Usage: `table [--cpu <number>] [-o|--output <file>]
	[<tree-file>...]`,
	Short: "write trees as a table of nodes",
	Long: `
Command table reads one or more tree files and writes the trees as a
tab-delimited table, with a row for each node.

One or more tree files can be given as arguments. If no file is given, the
trees will be read from the standard input.

The output table contains the following fields:

	- tree    the identifier of the tree
	- node    the identifier of the node
	- parent  the identifier of the parent node (empty for the root)
	- kind    the kind of node (root, internal, or tip)
	- length  the length of the branch to the parent
	- label   the label of the node

Nodes are written in pre-order (a parent is always before its descendants).
Use "treelib import --format tsv" to read the table back into a tree file.

By default, trees are read using all available processors. Use the flag --cpu
to set the number of processors.

By default the output will be printed in the standard output. To define an
output file use the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	recs, err := treefile.ReadFiles(c.Stderr(), c.Stdin(), args, numCPU)
	if err != nil {
		return err
	}

	coll := treelib.NewCollection()
	for _, r := range recs {
		if err := coll.Add(r.ID, r.Tree); err != nil {
			return fmt.Errorf("line %d: %v", r.Line, err)
		}
	}

	return treefile.Write(c.Stdout(), output, coll.TSV)
}
