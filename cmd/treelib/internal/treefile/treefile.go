// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package treefile implements functions to read and write
// tree files used by the treelib commands.
//
// A tree file has a tree per line,
// optionally preceded by an identifier
// and a tab character.
package treefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/treelib"
)

// Read reads the trees from a tree file.
// If name is "-",
// the trees will be read from r.
// Lines that can not be parsed are skipped,
// and reported on w.
func Read(w io.Writer, r io.Reader, name string, cpu int) ([]*treelib.Record, error) {
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

	recs, skipped, err := treelib.ReadAll(r, cpu)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	for _, e := range skipped {
		fmt.Fprintf(w, "%s: skipping tree %q: %v\n", name, e.ID, e)
	}
	if len(skipped) > 0 {
		fmt.Fprintf(w, "%s: %d trees skipped\n", name, len(skipped))
	}
	return recs, nil
}

// ReadFiles reads the trees from a set of tree files.
// If no file is given,
// the trees will be read from r.
func ReadFiles(w io.Writer, r io.Reader, files []string, cpu int) ([]*treelib.Record, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}

	var recs []*treelib.Record
	for _, a := range files {
		rs, err := Read(w, r, a, cpu)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rs...)
	}
	return recs, nil
}

// Write writes the output of fn
// into the output file.
// If output is empty,
// it will be written to w.
func Write(w io.Writer, output string, fn func(w io.Writer) error) (err error) {
	outName := "stdout"
	if output != "" {
		outName = output
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := fn(bw); err != nil {
		return fmt.Errorf("while writing to %q: %v", outName, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", outName, err)
	}
	return nil
}

// WriteTree writes a tree line into a tree file.
func WriteTree(w io.Writer, id, nwk string) error {
	_, err := fmt.Fprintf(w, "%s\t%s\n", id, nwk)
	return err
}

// SplitList returns the elements
// of a comma separated list.
func SplitList(s string) []string {
	var ls []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		ls = append(ls, v)
	}
	return ls
}
