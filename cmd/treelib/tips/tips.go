// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tips implements a command to print
// the terminals of the trees in a tree file.
package tips

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib"
	"golang.org/x/exp/slices"
)

var Command = &command.Command{
	Usage: "tips [--union] [--count] [<tree-file>...]",
	Short: "print the terminals of the trees",
	Long: `
Command tips reads one or more tree files and prints the names of the
terminals of each tree.

One or more tree files can be given as arguments. If no file is given, the
trees will be read from the standard input.

By default, it prints a line for each terminal of each tree, with the tree
identifier and the terminal name. Use the flag --union to print the list of
all terminals found in any tree, in alphabetical order.

Use the flag --count to print only the number of terminals of each tree
(with --union, the total number of different terminals).

Only the terminal names are read, so trees are not fully parsed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var unionFlag bool
var countFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&unionFlag, "union", false, "")
	c.Flags().BoolVar(&countFlag, "count", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		args = append(args, "-")
	}

	all := make(map[string]bool)
	for _, a := range args {
		if err := readTips(c, a, all); err != nil {
			return err
		}
	}

	if !unionFlag {
		return nil
	}
	if countFlag {
		fmt.Fprintf(c.Stdout(), "%d\n", len(all))
		return nil
	}

	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		fmt.Fprintf(c.Stdout(), "%s\n", n)
	}
	return nil
}

func readTips(c *command.Command, name string, all map[string]bool) error {
	var r io.Reader = c.Stdin()
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	tr := treelib.NewReader(r)
	for {
		id, tips, err := tr.TipNames()
		if errors.Is(err, io.EOF) {
			break
		}
		var le *treelib.LineError
		if errors.As(err, &le) {
			fmt.Fprintf(c.Stderr(), "%s: skipping tree %q: %v\n", name, le.ID, le)
			continue
		}
		if err != nil {
			return fmt.Errorf("while reading %q: %v", name, err)
		}

		for _, tp := range tips {
			all[tp] = true
		}
		if unionFlag {
			continue
		}
		if countFlag {
			fmt.Fprintf(c.Stdout(), "%s\t%d\n", id, len(tips))
			continue
		}
		for _, tp := range tips {
			fmt.Fprintf(c.Stdout(), "%s\t%s\n", id, tp)
		}
	}
	return nil
}
