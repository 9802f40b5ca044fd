// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package root implements a command to root the trees
// of a tree file.
package root

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
)

var Command = &command.Command{
	Usage: `root (--outgroup <name>,<name>... | --node <id>)
	[--cpu <number>] [-o|--output <file>]
	[<tree-file>...]`,
	Short: "root trees",
	Long: `
Command root reads one or more tree files and roots the trees using an
outgroup or a node.

With the flag --outgroup, the root will be placed in the branch that
separates the indicated terminals (a comma separated list) from the rest of
the terminals. If the outgroup is not monophyletic, but the rest of the
terminals are, then the rest of the terminals will be used.

With the flag --node, the root will be placed in the branch that connects
the indicated node with its parent. See "treelib help node-ids" to learn how
nodes are identified.

The length of the branch of the new root is divided in half between the two
new branches. If the previous root has only two descendants, it is removed.

One or more tree files can be given as arguments. If no file is given, the
trees will be read from the standard input.

Trees that can not be rooted are skipped and reported in the standard error.

By default, trees are read using all available processors. Use the flag --cpu
to set the number of processors.

By default the output will be printed in the standard output. To define an
output file use the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var outgroup string
var nodeFlag string
var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&outgroup, "outgroup", "", "")
	c.Flags().StringVar(&nodeFlag, "node", "", "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	out := treefile.SplitList(outgroup)
	if len(out) == 0 && nodeFlag == "" {
		return c.UsageError("expecting flag --outgroup or --node")
	}
	if len(out) > 0 && nodeFlag != "" {
		return c.UsageError("flags --outgroup and --node are mutually exclusive")
	}

	recs, err := treefile.ReadFiles(c.Stderr(), c.Stdin(), args, numCPU)
	if err != nil {
		return err
	}

	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		for _, r := range recs {
			var t *treelib.Tree
			var err error
			if nodeFlag != "" {
				t, err = r.Tree.RootAt(nodeFlag)
			} else {
				t, err = r.Tree.RootTips(out...)
			}
			if err != nil {
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
