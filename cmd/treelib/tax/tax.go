// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tax implements a command to validate the terminal names
// of the trees in a tree file.
package tax

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/gbifer/taxonomy"
	"github.com/js-arias/treelib"
	"github.com/js-arias/treelib/cmd/treelib/internal/treefile"
	"golang.org/x/exp/slices"
)

var Command = &command.Command{
	Usage: `tax [--taxonomy <file>] [--set]
	[--cpu <number>] [-o|--output <file>]
	<tree-file>...`,
	Short: "validate terminal names of trees",
	Long: `
Command tax reads one or more tree files and uses a taxonomy to validate the
names of the terminals in the trees.

One or more tree files must be given as arguments.

The taxonomy file can be defined either with the flag --taxonomy or provided
in the standard input. This file is a TSV file with the following columns:

	- name      the name of the taxon
	- taxonKey  a numeric identifier for the taxon (e.g., a GBIF ID)
	- rank      the taxonomic rank of the taxon. Valid ranks are: kingdom,
	            phylum, class, order, family, genus, species, and
	            unranked.
	- status    the taxonomic status of the taxon
	- parent    the ID of the parent taxon

To be valid, a taxon must have "accepted" status, and with a valid rank
(different from unranked). Underscores in terminal names are read as spaces.

By default, matches with synonym names will be reported to the standard
error. Use the flag --set to change the name of the terminal to the accepted
name from the taxonomy; in that case, the resulting trees will be printed on
the standard output. Use the --output, or -o flag, to define an output file.

By default, trees are read using all available processors. Use the flag --cpu
to set the number of processors.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var setFlag bool
var taxFile string
var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&setFlag, "set", false, "")
	c.Flags().StringVar(&taxFile, "taxonomy", "", "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		return c.UsageError("expecting one or more tree files")
	}

	recs, err := treefile.ReadFiles(c.Stderr(), nil, args, numCPU)
	if err != nil {
		return err
	}

	tx, err := readTaxonomy(c.Stdin())
	if err != nil {
		return err
	}

	for _, r := range recs {
		t, err := validateTree(c.Stderr(), r, tx)
		if err != nil {
			return fmt.Errorf("tree %q: %v", r.ID, err)
		}
		r.Tree = t
	}

	if !setFlag {
		return nil
	}
	return treefile.Write(c.Stdout(), output, func(w io.Writer) error {
		for _, r := range recs {
			if err := treefile.WriteTree(w, r.ID, r.Tree.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

func readTaxonomy(r io.Reader) (*taxonomy.Taxonomy, error) {
	name := "stdin"
	if taxFile != "" {
		f, err := os.Open(taxFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
		name = taxFile
	}

	tx, err := taxonomy.Read(r)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return tx, nil
}

// ValidateTree reports the terminals of a tree
// that do not match an accepted taxon.
// If the set flag is defined,
// it returns a tree with terminals renamed
// to the accepted name.
func validateTree(w io.Writer, r *treelib.Record, tx *taxonomy.Taxonomy) (*treelib.Tree, error) {
	var absent []string
	ambiguous := make(map[string][]int64)
	match := make(map[int64][]string)

	for _, tp := range r.Tree.Tips() {
		n := taxonomy.Canon(strings.ReplaceAll(tp, "_", " "))
		ids := tx.ByName(n)
		if len(ids) == 0 {
			absent = append(absent, tp)
			continue
		}
		id := tx.AcceptedAndRanked(ids[0]).ID

		if len(ids) > 1 {
			var amb []int64
			for _, v := range ids {
				x := tx.AcceptedAndRanked(v).ID
				if x != id {
					amb = append(amb, v)
				}
			}
			if len(amb) > 0 {
				ambiguous[tp] = append([]int64{id}, amb...)
				continue
			}
		}

		match[id] = append(match[id], tp)
	}

	ids := make([]int64, 0, len(match))
	for id := range match {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	mult := false
	for _, id := range ids {
		m := match[id]
		if len(m) == 1 {
			continue
		}
		if !mult {
			fmt.Fprintf(w, "%s: Multiple matches:\n", r.ID)
		}
		tax := tx.Taxon(id)
		fmt.Fprintf(w, "\t%s [tax:%d]:\n", tax.Name, tax.ID)
		for _, n := range m {
			fmt.Fprintf(w, "\t\t%s\n", n)
		}
		mult = true
	}

	diff := false
	rename := make(map[string]string)
	for _, id := range ids {
		m := match[id]
		if len(m) != 1 {
			continue
		}
		tax := tx.Taxon(id)
		if tax.Name == taxonomy.Canon(strings.ReplaceAll(m[0], "_", " ")) {
			continue
		}
		if setFlag {
			rename[m[0]] = tax.Name
			continue
		}

		if !diff {
			fmt.Fprintf(w, "%s: Match with different name:\n", r.ID)
		}
		fmt.Fprintf(w, "\tin tree %q,\n\t\tin taxonomy %q\n", m[0], tax.Name)
		diff = true
	}

	if len(ambiguous) > 0 {
		fmt.Fprintf(w, "%s: Ambiguous names:\n", r.ID)
		for _, tp := range r.Tree.Tips() {
			amb, ok := ambiguous[tp]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "\t%s\n", tp)
			for _, id := range amb {
				fmt.Fprintf(w, "\t\ttax:%d\n", id)
			}
		}
	}

	if len(absent) > 0 {
		fmt.Fprintf(w, "%s: Not in taxonomy:\n", r.ID)
		for _, n := range absent {
			fmt.Fprintf(w, "\t%s\n", n)
		}
	}

	if len(rename) == 0 {
		return r.Tree, nil
	}
	return r.Tree.Rename(rename)
}
