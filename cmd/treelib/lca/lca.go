// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lca implements a command to find
// the last common ancestor of a set of terminals.
package lca

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
)

var Command = &command.Command{
	Usage: `lca --tips <name>,<name>... [--clade]
	[--cpu <number>] [-o|--output <file>]
	[<tree-file>...]`,
	Short: "find the last common ancestor of a set of terminals",
	Long: `
Command lca reads one or more tree files and, for each tree, finds the last
common ancestor of a set of terminals.

The flag --tips is required and sets the terminals, as a comma separated
list.

One or more tree files can be given as arguments. If no file is given, the
trees will be read from the standard input.

The output is a tab-delimited table with the following columns:

	- tree          the identifier of the tree
	- node          the identifier of the last common ancestor
	- monophyletic  "true" if the terminals form a clade
	- distance      the largest path length (sum of branch lengths)
	                from the ancestor to any of the terminals

Use the flag --clade to add a column with all the terminals descendant of
the ancestor.

Trees that do not have any of the terminals are skipped and reported in the
standard error.

By default, trees are read using all available processors. Use the flag --cpu
to set the number of processors.

By default the output will be printed in the standard output. To define an
output file use the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var cladeFlag bool
var tipsFlag string
var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&cladeFlag, "clade", false, "")
	c.Flags().StringVar(&tipsFlag, "tips", "", "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	tips := treefile.SplitList(tipsFlag)
	if len(tips) == 0 {
		return c.UsageError("flag --tips must be defined")
	}

	recs, err := treefile.ReadFiles(c.Stderr(), c.Stdin(), args, numCPU)
	if err != nil {
		return err
	}

	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		head := "tree\tnode\tmonophyletic\tdistance"
		if cladeFlag {
			head += "\tclade"
		}
		fmt.Fprintf(w, "%s\n", head)

		for _, r := range recs {
			row, err := lcaRow(r.Tree, tips)
			if errors.Is(err, treelib.ErrNodeNotFound) {
				fmt.Fprintf(c.Stderr(), "tree %q: skipping: %v\n", r.ID, err)
				continue
			}
			if err != nil {
				return fmt.Errorf("tree %q: %v", r.ID, err)
			}
			fmt.Fprintf(w, "%s\t%s\n", r.ID, row)
		}
		return nil
	})
}

func lcaRow(t *treelib.Tree, tips []string) (string, error) {
	id, err := t.LCA(tips...)
	if err != nil {
		return "", err
	}
	mono, err := t.IsMonophyletic(tips...)
	if err != nil {
		return "", err
	}

	var maxD float64
	for _, tp := range tips {
		d, err := t.Distance(id, tp)
		if err != nil {
			return "", err
		}
		if d > maxD {
			maxD = d
		}
	}

	row := fmt.Sprintf("%s\t%v\t%.6f", id, mono, maxD)
	if cladeFlag {
		clade, err := t.Clade(id)
		if err != nil {
			return "", err
		}
		row += "\t" + strings.Join(clade, ",")
	}
	return row, nil
}
