// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package importcmd implements a command to import phylogenetic trees
// from nexus or TSV files into a tree file.
package importcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
)

var Command = &command.Command{
	Usage: `import [--format <format>] [-o|--output <file>]
	[<file>...]`,
	Short: "import trees into a tree file",
	Long: `
Command import reads one or more files that contain phylogenetic trees, and
writes them as a tree file (a newick tree per line, see "treelib help
tree-files").

One or more files can be given as arguments. If no file is given the input
will be read from the standard input.

By default, the input file is assumed to be a nexus file with a trees block.
With the flag --format, a different format can be defined. Valid formats
are:

	- nexus, a nexus file with a trees block. If the block has a
	  translate table, terminal names will be translated. A [&R] or [&U]
	  comment before a tree defines if the tree is rooted or unrooted.
	- tsv, a table of nodes, as produced by the command "treelib table".

The name of each tree is used as the identifier of the tree in the tree
file.

By default the output will be printed in the standard output. To define an
output file use the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var format string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&format, "format", "nexus", "")
}

func run(c *command.Command, args []string) error {
	format = strings.ToLower(format)
	switch format {
	case "nexus", "tsv":
	default:
		return c.UsageError(fmt.Sprintf("unknown format %q", format))
	}

	if len(args) == 0 {
		args = append(args, "-")
	}
	coll := treelib.NewCollection()
	for _, a := range args {
		nc, err := readTrees(c.Stdin(), a)
		if err != nil {
			return err
		}

		for _, tn := range nc.Names() {
			if err := coll.Add(tn, nc.Tree(tn)); err != nil {
				return fmt.Errorf("when adding trees from %q: %v", a, err)
			}
		}
	}

	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		for _, tn := range coll.Names() {
			if err := treefile.WriteTree(w, tn, coll.Tree(tn).String()); err != nil {
				return err
			}
		}
		return nil
	})
}

func readTrees(r io.Reader, name string) (*treelib.Collection, error) {
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	var c *treelib.Collection
	var err error
	if format == "tsv" {
		c, err = treelib.ReadTSV(r)
	} else {
		c, err = treelib.ReadNexus(r)
	}
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}
