// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prune implements a command to remove terminals
// from the trees of a tree file.
package prune

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
)

var Command = &command.Command{
	Usage: `prune (--tips <name>,<name>... | --list <file>) [--keep]
	[--cpu <number>] [-o|--output <file>]
	[<tree-file>...]`,
	Short: "remove terminals from trees",
	Long: `
Command prune reads one or more tree files and removes a set of terminals
from the trees. Internal nodes left with a single descendant are removed,
and their branch lengths added to the branch of the descendant.

The terminals to remove are given either with the flag --tips, as a comma
separated list, or with the flag --list, as a file with a terminal name per
line. If the flag --keep is defined, the indicated terminals will be kept,
and all other terminals will be removed.

Terminals not found in a tree are ignored.

One or more tree files can be given as arguments. If no file is given, the
trees will be read from the standard input.

Trees that will have less than two terminals are skipped and reported in the
standard error.

By default, trees are read using all available processors. Use the flag --cpu
to set the number of processors.

By default the output will be printed in the standard output. To define an
output file use the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var keepFlag bool
var tipsFlag string
var listFile string
var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&keepFlag, "keep", false, "")
	c.Flags().StringVar(&tipsFlag, "tips", "", "")
	c.Flags().StringVar(&listFile, "list", "", "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	tips := treefile.SplitList(tipsFlag)
	if listFile != "" {
		ls, err := readList(listFile)
		if err != nil {
			return err
		}
		tips = append(tips, ls...)
	}
	if len(tips) == 0 {
		return c.UsageError("expecting flag --tips or --list")
	}
	set := make(map[string]bool, len(tips))
	for _, tp := range tips {
		set[tp] = true
	}

	recs, err := treefile.ReadFiles(c.Stderr(), c.Stdin(), args, numCPU)
	if err != nil {
		return err
	}

	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		for _, r := range recs {
			var del []string
			for _, tp := range r.Tree.Tips() {
				if set[tp] != keepFlag {
					del = append(del, tp)
				}
			}

			t := r.Tree
			if len(del) > 0 {
				var err error
				t, err = r.Tree.Prune(del...)
				if err != nil {
					fmt.Fprintf(c.Stderr(), "tree %q: skipping: %v\n", r.ID, err)
					continue
				}
			}
			if err := treefile.WriteTree(w, r.ID, t.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

func readList(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ls []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		ln := strings.TrimSpace(s.Text())
		if ln == "" || ln[0] == '#' {
			continue
		}
		ls = append(ls, ln)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("while reading %q: %v", name, err)
	}
	return ls, nil
}
