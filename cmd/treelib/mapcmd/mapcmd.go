// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mapcmd implements a command to map the nodes
// of a reference tree into other trees.
package mapcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
)

var Command = &command.Command{
	Usage: `map [--cpu <number>] [-o|--output <file>]
	<reference-tree-file> [<tree-file>...]`,
	Short: "map nodes between trees",
	Long: `
Command map reads a reference tree and one or more tree files, and finds for
each internal node of the reference tree the equivalent node in each tree.

Two nodes are equivalent if they have the same descendant terminals, or if
the descendants of one node are the terminals outside the other node (which
is the case of trees with a different root).

The first argument is the file with the reference tree. Only the first tree
of the file is used. Other arguments are tree files. If no tree file is
given, the trees will be read from the standard input.

The output is a tab-delimited table with the following columns:

	- tree       the identifier of the tree
	- reference  the identifier of the node in the reference tree
	- node       the identifier of the equivalent node in the tree

Nodes without an equivalent node are not printed.

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
	if len(args) == 0 {
		return c.UsageError("expecting reference tree file")
	}

	ref, err := readReference(args[0])
	if err != nil {
		return err
	}

	recs, err := treefile.ReadFiles(c.Stderr(), c.Stdin(), args[1:], numCPU)
	if err != nil {
		return err
	}

	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		fmt.Fprintf(w, "tree\treference\tnode\n")
		for _, r := range recs {
			m := ref.MapNodes(r.Tree)
			for _, id := range ref.Internals() {
				nID, ok := m[id]
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, id, nID)
			}
		}
		return nil
	})
}

func readReference(name string) (*treelib.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := treelib.NewReader(f)
	rec, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading reference %q: %v", name, err)
	}
	return rec.Tree, nil
}
