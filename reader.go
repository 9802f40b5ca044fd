// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// A Record is a tree read from a tree file.
type Record struct {
	// Line is the line number of the tree
	// in the input file.
	Line int

	// ID is the identifier of the tree.
	// If the line does not have an identifier
	// it will be the line number.
	ID string

	Tree *Tree
}

// A LineError is an error
// produced when a line of a tree file
// can not be parsed.
type LineError struct {
	Line int
	ID   string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// A Reader reads trees from a tree file.
//
// In a tree file each line is a tree in newick format,
// optionally preceded by an identifier
// and a tab character,
// for example:
//
//	# gene trees
//	OG0001	((A:0.1,B:0.2):0.05,C:0.3);
//	OG0002	((A:0.1,C:0.2):0.05,B:0.3);
//
// Empty lines,
// and lines starting with '#' are ignored.
type Reader struct {
	r    *bufio.Reader
	line int
}

// NewReader returns a new reader that reads trees from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r: bufio.NewReader(r),
	}
}

// Read reads the next tree of the file.
// If the tree can not be parsed,
// it returns a *LineError
// and the reader can be used to read the next tree.
// At the end of the file,
// it returns io.EOF.
func (r *Reader) Read() (*Record, error) {
	ln, id, nwk, err := r.next()
	if err != nil {
		return nil, err
	}

	t, err := Parse(nwk)
	if err != nil {
		return nil, &LineError{Line: ln, ID: id, Err: err}
	}
	return &Record{Line: ln, ID: id, Tree: t}, nil
}

// TipNames reads the next tree of the file
// and returns its identifier
// and the names of its terminals,
// without building the tree.
// Errors are returned as in Read.
func (r *Reader) TipNames() (string, []string, error) {
	ln, id, nwk, err := r.next()
	if err != nil {
		return "", nil, err
	}

	tips, err := TipNames(nwk)
	if err != nil {
		return "", nil, &LineError{Line: ln, ID: id, Err: err}
	}
	return id, tips, nil
}

// Next returns the next line with a tree.
func (r *Reader) next() (ln int, id, nwk string, err error) {
	for {
		s, err := r.r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, "", "", err
		}
		if s == "" && err != nil {
			return 0, "", "", io.EOF
		}
		r.line++

		s = strings.TrimSpace(s)
		if s == "" || s[0] == '#' {
			continue
		}

		id = strconv.Itoa(r.line)
		if i := strings.IndexByte(s, '\t'); i >= 0 {
			if v := strings.TrimSpace(s[:i]); v != "" {
				id = v
			}
			s = strings.TrimSpace(s[i+1:])
		}
		return r.line, id, s, nil
	}
}

// ReadAll reads all the trees of a tree file.
// Trees are parsed in parallel,
// use cpu to define the number of process
// used for parsing.
// The default (zero) uses all available CPU.
//
// It returns the trees in the order of the file,
// and the lines that can not be parsed.
// The error is only used for reading errors.
func ReadAll(r io.Reader, cpu int) ([]*Record, []*LineError, error) {
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}

	type job struct {
		line    int
		id, nwk string
	}
	var jobs []job
	rd := NewReader(r)
	for {
		ln, id, nwk, err := rd.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		jobs = append(jobs, job{line: ln, id: id, nwk: nwk})
	}

	recs := make([]*Record, len(jobs))
	errs := make([]*LineError, len(jobs))
	jobChan := make(chan int, cpu*2)
	var wg sync.WaitGroup
	for range cpu {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobChan {
				j := jobs[i]
				t, err := Parse(j.nwk)
				if err != nil {
					errs[i] = &LineError{Line: j.line, ID: j.id, Err: err}
					continue
				}
				recs[i] = &Record{Line: j.line, ID: j.id, Tree: t}
			}
		}()
	}
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)
	wg.Wait()

	var trees []*Record
	var skipped []*LineError
	for i := range jobs {
		if errs[i] != nil {
			skipped = append(skipped, errs[i])
			continue
		}
		trees = append(trees, recs[i])
	}
	return trees, skipped, nil
}
