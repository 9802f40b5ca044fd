// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package unroot implements a command to unroot the trees
// of a tree file.
package unroot

import (
	"errors"
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
)

var Command = &command.Command{
	Usage: `unroot [--cpu <number>] [-o|--output <file>]
	[<tree-file>...]`,
	Short: "unroot trees",
	Long: `
Command unroot reads one or more tree files and unroots the trees, by
merging one of the descendants of the root with the root, so the root will
have three descendants. The lengths of the merged branches are added.

One or more tree files can be given as arguments. If no file is given, the
trees will be read from the standard input.

Trees that are already unrooted are written without changes. Trees that can
not be unrooted (for example, a tree with two terminals) are skipped and
reported in the standard error.

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

	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		for _, r := range recs {
			t, err := r.Tree.Unroot()
			if errors.Is(err, treelib.ErrAlreadyUnrooted) {
				t = r.Tree
			} else if err != nil {
				fmt.Fprintf(c.Stderr(), "tree %q: skipping: %v\n", r.ID, err)
				continue
			}
			if err := treefile.WriteTree(w, r.ID, t.String()); err != nil {
				return err
			}
		}
		return nil
	})
}
