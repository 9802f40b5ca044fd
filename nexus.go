// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ReadNexus reads one or more trees
// from the trees block of a nexus file.
//
// If the block has a translate table,
// the terminals of the trees are renamed
// using the table.
// A [&R] or [&U] comment before a tree
// sets the tree as rooted or unrooted;
// otherwise the rootedness is inferred
// as in Parse.
func ReadNexus(r io.Reader) (*Collection, error) {
	nxf := bufio.NewReader(r)
	token := &strings.Builder{}

	// header
	if _, err := readToken(nxf, token); err != nil {
		return nil, fmt.Errorf("expecting '#nexus' header: %v", err)
	}
	if t := strings.ToLower(token.String()); t != "#nexus" {
		return nil, fmt.Errorf("got %q, expecting '#nexus' header", t)
	}

	// ignore all blocks except tree block
	for {
		if _, err := readToken(nxf, token); err != nil {
			return nil, fmt.Errorf("expecting 'begin' token: %v", err)
		}
		if t := strings.ToLower(token.String()); t != "begin" {
			return nil, fmt.Errorf("got %q, expecting 'begin' block", t)
		}

		if _, err := readToken(nxf, token); err != nil {
			return nil, fmt.Errorf("expecting block name: %v", err)
		}
		block := strings.ToLower(token.String())
		if block == "trees" {
			break
		}

		if err := skipBlock(nxf, token); err != nil {
			return nil, fmt.Errorf("incomplete block %q: %v", block, err)
		}
	}

	c := NewCollection()
	var labels map[string]string
	for {
		if _, err := readToken(nxf, token); err != nil {
			return nil, fmt.Errorf("incomplete block 'trees': %v", err)
		}
		t := strings.ToLower(token.String())
		if t == "end" || t == "endblock" {
			break
		}
		if t == "translate" {
			var err error
			labels, err = readTranslate(nxf, token)
			if err != nil {
				return nil, fmt.Errorf("invalid tree block: %v", err)
			}
			continue
		}
		if t == "tree" {
			name, tr, err := readNexusTree(nxf, token)
			if err != nil {
				return nil, fmt.Errorf("incomplete block 'trees': %v", err)
			}
			if len(labels) > 0 {
				tr, err = tr.Rename(labels)
				if err != nil {
					return nil, fmt.Errorf("tree %q: %v", name, err)
				}
			}
			if err := c.Add(name, tr); err != nil {
				return nil, fmt.Errorf("when adding tree %q: %v", name, err)
			}
			continue
		}

		if err := skipDefinition(nxf, token); err != nil {
			return nil, fmt.Errorf("incomplete block 'trees', token %q: %v", t, err)
		}
	}

	if c.Len() == 0 {
		return nil, fmt.Errorf("file without trees")
	}

	return c, nil
}

func readNexusTree(r *bufio.Reader, token *strings.Builder) (string, *Tree, error) {
	// read tree name,
	// an optional '*' marks the default tree
	delim, err := readToken(r, token)
	if err != nil {
		return "", nil, fmt.Errorf("while reading tree name: %v", err)
	}
	if token.String() == "*" {
		delim, err = readToken(r, token)
		if err != nil {
			return "", nil, fmt.Errorf("while reading tree name: %v", err)
		}
	}
	name := token.String()
	if delim != '=' {
		return "", nil, fmt.Errorf("while reading tree %q: expecting '='", name)
	}

	s, rooted, err := readTreeString(r)
	if err != nil {
		return "", nil, fmt.Errorf("while reading tree %q: %v", name, err)
	}

	var t *Tree
	if rooted == nil {
		t, err = Parse(s)
	} else {
		t, err = ParseRooted(s, *rooted)
	}
	if err != nil {
		return "", nil, fmt.Errorf("while reading tree %q: %w", name, err)
	}
	return name, t, nil
}

// ReadTreeString reads a newick string
// up to the ending semicolon.
// A rooting comment ([&R] or [&U])
// is returned as the rootedness of the tree.
func readTreeString(r *bufio.Reader) (string, *bool, error) {
	var b strings.Builder
	var rooted *bool
	quoted := false
	for {
		r1, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return "", nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return "", nil, err
		}

		if quoted {
			b.WriteRune(r1)
			if r1 == '\'' {
				quoted = false
			}
			continue
		}

		switch r1 {
		case '\'':
			quoted = true
		case '[':
			c, err := readComment(r)
			if err != nil {
				return "", nil, err
			}
			switch strings.ToUpper(strings.TrimSpace(c)) {
			case "&R":
				v := true
				rooted = &v
			case "&U":
				v := false
				rooted = &v
			}
			continue
		case ';':
			b.WriteRune(r1)
			return b.String(), rooted, nil
		}
		b.WriteRune(r1)
	}
}

func readComment(r *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		r1, _, err := r.ReadRune()
		if err != nil {
			return "", err
		}
		if r1 == ']' {
			return b.String(), nil
		}
		b.WriteRune(r1)
	}
}

func readTranslate(r *bufio.Reader, token *strings.Builder) (map[string]string, error) {
	labels := make(map[string]string)
	for i := 1; ; i++ {
		if _, err := readToken(r, token); err != nil {
			return nil, fmt.Errorf("while reading tree translate labels: %v, last label read: %d", err, i-1)
		}
		key := token.String()

		// read taxon name
		delim, err := readToken(r, token)
		if err != nil {
			return nil, fmt.Errorf("while reading tree translate labels: taxon %d [%q]: %v", i, key, err)
		}
		if _, dup := labels[key]; dup {
			return nil, fmt.Errorf("while reading tree translate labels: taxon %d: repeated key %q", i, key)
		}
		labels[key] = token.String()

		if delim == ';' {
			break
		}
		if delim != ',' {
			return nil, fmt.Errorf("while reading tree translate labels: taxon %d [%q]: expecting ','", i, key)
		}
	}
	return labels, nil
}

func skipBlock(r *bufio.Reader, token *strings.Builder) error {
	for {
		_, err := readToken(r, token)
		t := strings.ToLower(token.String())
		if t == "end" || t == "endblock" {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func skipDefinition(r *bufio.Reader, token *strings.Builder) error {
	for {
		delim, err := readToken(r, token)
		if delim == ';' {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func isNexusDelim(r rune) bool {
	return r == ';' || r == ',' || r == '='
}

// ReadToken reads a nexus token
// and returns the delimiter
// that ends the token.
func readToken(r *bufio.Reader, token *strings.Builder) (delim rune, err error) {
	token.Reset()

	if err := skipSpaces(r); err != nil {
		return 0, err
	}

	r1, _, err := r.ReadRune()
	if err != nil {
		return 0, err
	}
	if r1 == '\'' || r1 == '"' {
		// quoted block
		stop := r1
		for {
			r1, _, err := r.ReadRune()
			if err != nil {
				return 0, err
			}
			if r1 == stop {
				nx, _, err := r.ReadRune()
				if errors.Is(err, io.EOF) {
					delim = ' '
					break
				}
				if err != nil {
					return 0, err
				}
				if nx != stop {
					r.UnreadRune()
					delim = ' '
					break
				}
			}
			token.WriteRune(r1)
		}
	} else {
		r.UnreadRune()
		for {
			r1, _, err := r.ReadRune()
			if errors.Is(err, io.EOF) && token.Len() > 0 {
				return ' ', nil
			}
			if err != nil {
				return 0, err
			}
			if unicode.IsSpace(r1) {
				delim = ' '
				break
			}
			if isNexusDelim(r1) {
				delim = r1
				break
			}
			if r1 == '[' {
				r.UnreadRune()
				delim = ' '
				break
			}
			token.WriteRune(r1)
		}
	}

	if delim == ' ' {
		if err := skipSpaces(r); err != nil {
			if errors.Is(err, io.EOF) {
				return delim, nil
			}
			return 0, err
		}
		r1, _, err := r.ReadRune()
		if err != nil {
			return 0, err
		}
		if isNexusDelim(r1) {
			delim = r1
		} else {
			r.UnreadRune()
		}
	}
	return delim, nil
}

func skipSpaces(r *bufio.Reader) error {
	for {
		r1, _, err := r.ReadRune()
		if err != nil {
			return err
		}

		// a comment
		if r1 == '[' {
			if _, err := readComment(r); err != nil {
				return err
			}
			continue
		}

		if !unicode.IsSpace(r1) {
			r.UnreadRune()
			return nil
		}
	}
}
