// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokKind int

const (
	tokOpen tokKind = iota
	tokClose
	tokComma
	tokColon
	tokEnd
	tokText

	// tokNode is a group already resolved
	// by the parser.
	tokNode
)

type token struct {
	kind tokKind
	text string
	pos  int

	// node is only used by tokNode tokens.
	node *node
}

func (tk token) String() string {
	switch tk.kind {
	case tokOpen:
		return "'('"
	case tokClose:
		return "')'"
	case tokComma:
		return "','"
	case tokColon:
		return "':'"
	case tokEnd:
		return "';'"
	case tokNode:
		return "node " + tk.node.id
	}
	return fmt.Sprintf("%q", tk.text)
}

// Lex splits a newick string into tokens.
// Comments (text between brackets) are ignored.
func lex(s string) ([]token, error) {
	var toks []token
	depth := 0
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			i += w
			continue
		}
		if len(toks) > 0 && toks[len(toks)-1].kind == tokEnd {
			return nil, fmt.Errorf("%w: unexpected text after ';' at position %d", ErrParse, i)
		}

		switch r {
		case '(':
			depth++
			toks = append(toks, token{kind: tokOpen, pos: i})
			i += w
			continue
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced ')' at position %d", ErrParse, i)
			}
			toks = append(toks, token{kind: tokClose, pos: i})
			i += w
			continue
		case ',':
			toks = append(toks, token{kind: tokComma, pos: i})
			i += w
			continue
		case ':':
			toks = append(toks, token{kind: tokColon, pos: i})
			i += w
			continue
		case ';':
			toks = append(toks, token{kind: tokEnd, pos: i})
			i += w
			continue
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated comment at position %d", ErrParse, i)
			}
			i += end + 1
			continue
		case '\'':
			text, n, err := readQuoted(s[i:])
			if err != nil {
				return nil, fmt.Errorf("%w: at position %d", err, i)
			}
			toks = append(toks, token{kind: tokText, text: text, pos: i})
			i += n
			continue
		}

		end := strings.IndexAny(s[i:], "(),:;[")
		if end < 0 {
			end = len(s) - i
		}
		text := strings.TrimSpace(s[i : i+end])
		toks = append(toks, token{kind: tokText, text: text, pos: i})
		i += end
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced parenthesis", ErrParse)
	}
	return toks, nil
}

// ReadQuoted reads a single quoted text,
// with two single quotes used as an escaped quote.
// It returns the text
// and the number of bytes read.
func readQuoted(s string) (string, int, error) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		if s[i] != '\'' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		return b.String(), i + 1, nil
	}
	return "", 0, fmt.Errorf("%w: unterminated quote", ErrParse)
}

// IsName returns true if the text token at position i
// is a terminal name,
// i.e. it is not a branch length
// nor a label of an internal node.
func isName(toks []token, i int) bool {
	if toks[i].kind != tokText {
		return false
	}
	if i == 0 {
		return true
	}
	k := toks[i-1].kind
	return k == tokOpen || k == tokComma
}

// TipNames returns the names of the terminals
// of a newick tree,
// in the order in which they are found.
func TipNames(s string) ([]string, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}

	var names []string
	for i := range toks {
		if isName(toks, i) {
			names = append(names, toks[i].text)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: tree without terminals", ErrParse)
	}
	return names, nil
}

// Topology returns a newick tree
// without branch lengths,
// labels of internal nodes,
// comments,
// and the ending semicolon.
func Topology(s string) (string, error) {
	toks, err := lex(s)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	tips := 0
	for i, tk := range toks {
		switch tk.kind {
		case tokOpen:
			b.WriteByte('(')
		case tokClose:
			b.WriteByte(')')
		case tokComma:
			b.WriteByte(',')
		case tokText:
			if isName(toks, i) {
				b.WriteString(quote(tk.text))
				tips++
			}
		}
	}
	if tips == 0 {
		return "", fmt.Errorf("%w: tree without terminals", ErrParse)
	}
	return b.String(), nil
}

// Quote returns a name quoted
// if it has characters reserved by the newick format.
func quote(s string) string {
	if s == "" || !strings.ContainsAny(s, " \t\r\n()[]':;,") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
