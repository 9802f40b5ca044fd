// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/js-arias/treelib"
)

func TestParse(t *testing.T) {
	tests := map[string]treeTest{
		"simple rooted": {
			name:   "simple rooted",
			in:     "(A:1,(B:1,C:1):1);",
			rooted: true,
			nodes: []node{
				{id: "<2>", kind: treelib.KindRoot, children: []string{"A", "<1>"}},
				{id: "A", parent: "<2>", kind: treelib.KindTip, brLen: 1, hasLen: true, depth: 1, toRoot: 1},
				{id: "<1>", parent: "<2>", kind: treelib.KindInternal, children: []string{"B", "C"}, brLen: 1, hasLen: true, depth: 1, toRoot: 1},
				{id: "B", parent: "<1>", kind: treelib.KindTip, brLen: 1, hasLen: true, depth: 2, toRoot: 2},
				{id: "C", parent: "<1>", kind: treelib.KindTip, brLen: 1, hasLen: true, depth: 2, toRoot: 2},
			},
			internals: []string{"<1>", "<2>"},
			tips:      []string{"A", "B", "C"},
			totLen:    4,
		},
		"unrooted": {
			name:   "unrooted",
			in:     "(A:1,B:1,C:1);",
			rooted: false,
			nodes: []node{
				{id: "<1>", kind: treelib.KindRoot, children: []string{"A", "B", "C"}},
				{id: "A", parent: "<1>", kind: treelib.KindTip, brLen: 1, hasLen: true, depth: 1, toRoot: 1},
				{id: "B", parent: "<1>", kind: treelib.KindTip, brLen: 1, hasLen: true, depth: 1, toRoot: 1},
				{id: "C", parent: "<1>", kind: treelib.KindTip, brLen: 1, hasLen: true, depth: 1, toRoot: 1},
			},
			internals: []string{"<1>"},
			tips:      []string{"A", "B", "C"},
			totLen:    3,
		},
		"labels and root length": {
			name:   "labels and root length",
			in:     "((A:0.5,B:0.25)90:0.125,(C,D)80)root:10;",
			rooted: true,
			nodes: []node{
				{id: "<3>", kind: treelib.KindRoot, children: []string{"<1>", "<2>"}, label: "root"},
				{id: "<1>", parent: "<3>", kind: treelib.KindInternal, children: []string{"A", "B"}, brLen: 0.125, hasLen: true, label: "90", depth: 1, toRoot: 0.125},
				{id: "A", parent: "<1>", kind: treelib.KindTip, brLen: 0.5, hasLen: true, depth: 2, toRoot: 0.625},
				{id: "B", parent: "<1>", kind: treelib.KindTip, brLen: 0.25, hasLen: true, depth: 2, toRoot: 0.375},
				{id: "<2>", parent: "<3>", kind: treelib.KindInternal, children: []string{"C", "D"}, label: "80", depth: 1},
				{id: "C", parent: "<2>", kind: treelib.KindTip, depth: 2},
				{id: "D", parent: "<2>", kind: treelib.KindTip, depth: 2},
			},
			internals: []string{"<1>", "<2>", "<3>"},
			tips:      []string{"A", "B", "C", "D"},
			totLen:    0.875,
		},
		"synthetic ID as terminal": {
			name:   "synthetic ID as terminal",
			in:     "(<1>,(B,C));",
			rooted: true,
			nodes: []node{
				{id: "<3>", kind: treelib.KindRoot, children: []string{"<1>", "<2>"}},
				{id: "<1>", parent: "<3>", kind: treelib.KindTip, depth: 1},
				{id: "<2>", parent: "<3>", kind: treelib.KindInternal, children: []string{"B", "C"}, depth: 1},
				{id: "B", parent: "<2>", kind: treelib.KindTip, depth: 2},
				{id: "C", parent: "<2>", kind: treelib.KindTip, depth: 2},
			},
			internals: []string{"<2>", "<3>"},
			tips:      []string{"<1>", "B", "C"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			tree, err := treelib.Parse(test.in)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			testTree(t, tree, test)
		})
	}
}

func TestParseGroupOrder(t *testing.T) {
	tree, err := treelib.Parse("(((A:1,B:2)90:1,C:3)85:1,(D:1,(E:1,F:1):0.5)80:2);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// innermost groups are resolved first,
	// from left to right
	want := map[string][]string{
		"<1>": {"A", "B"},
		"<2>": {"E", "F"},
		"<3>": {"A", "B", "C"},
		"<4>": {"D", "E", "F"},
		"<5>": {"A", "B", "C", "D", "E", "F"},
	}
	for id, w := range want {
		clade, err := tree.Clade(id)
		if err != nil {
			t.Fatalf("clade %s: unexpected error: %v", id, err)
		}
		if !reflect.DeepEqual(clade, w) {
			t.Errorf("clade %s: got %v, want %v", id, clade, w)
		}
	}
	if r := tree.Root(); r != "<5>" {
		t.Errorf("root: got %q, want %q", r, "<5>")
	}

	lt, err := tree.LengthText("<2>")
	if err != nil {
		t.Fatalf("length text: unexpected error: %v", err)
	}
	if lt != "0.5" {
		t.Errorf("length text: got %q, want %q", lt, "0.5")
	}
	if lt, _ := tree.LengthText(tree.Root()); lt != "" {
		t.Errorf("length text of root: got %q, want empty", lt)
	}
}

func TestParseError(t *testing.T) {
	tests := map[string]string{
		"empty":                       "",
		"not a tree":                  "not tree in the text",
		"single terminal":             "A;",
		"unbalanced":                  "(((A:1,B);",
		"unbalanced close":            "(A,B));",
		"empty node":                  "((),(C,D));",
		"empty terminal":              "(A,);",
		"empty first member":          "(,A);",
		"single member":               "(A,(B));",
		"unexpected branch length":    "(A,(:1,C));",
		"invalid branch length":       "(A:b, B:5);",
		"invalid internal length":     "(C:5, (A:5, B:5):x);",
		"not a number branch length":  "(A:NaN,B:1);",
		"double branch length":        "(A:1:2,B:1);",
		"double root length":          "(A,B):1:2;",
		"repeated terminal":           "(A, (A, B));",
		"text after end":              "(A,B);(C,D);",
		"unterminated quote":          "('A,B);",
		"unterminated comment":        "(A,B)[&R;",
		"missing comma between nodes": "((A,B)(C,D));",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := treelib.Parse(in)
			if !errors.Is(err, treelib.ErrParse) {
				t.Errorf("%s: got error '%v', want '%v'", name, err, treelib.ErrParse)
			}
		})
	}
}

func TestParseRooted(t *testing.T) {
	tests := map[string]struct {
		in     string
		rooted bool
		err    error
	}{
		"rooted": {
			in:     "((A,B),(C,D));",
			rooted: true,
		},
		"unrooted": {
			in: "(A,B,(C,D));",
		},
		"unrooted polytomy": {
			in: "(A,B,C,(D,E));",
		},
		"rooted with three children": {
			in:     "(A,B,(C,D));",
			rooted: true,
			err:    treelib.ErrParse,
		},
		"unrooted with two children": {
			in:  "((A,B),(C,D));",
			err: treelib.ErrParse,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			tree, err := treelib.ParseRooted(test.in, test.rooted)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Errorf("%s: got error '%v', want '%v'", name, err, test.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			if tree.IsRooted() != test.rooted {
				t.Errorf("%s: rooted: got %v, want %v", name, tree.IsRooted(), test.rooted)
			}
		})
	}
}

func TestRootedHeuristic(t *testing.T) {
	tests := map[string]struct {
		in     string
		rooted bool
	}{
		"two children":   {in: "((A,B),(C,D));", rooted: true},
		"three children": {in: "(A,B,(C,D));", rooted: false},

		// a polytomy at the root is taken as rooted
		"four children": {in: "(A,B,C,D);", rooted: true},
	}

	for name, test := range tests {
		tree, err := treelib.Parse(test.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if tree.IsRooted() != test.rooted {
			t.Errorf("%s: rooted: got %v, want %v", name, tree.IsRooted(), test.rooted)
		}
	}
}

func TestNewick(t *testing.T) {
	in := "((A:0.1,'Homo sapiens':2e-3)90:0.05,(C:1,D)80:1.50)root:10;"
	tests := map[string]struct {
		format treelib.Format
		want   string
	}{
		"topology": {
			want: "((A,'Homo sapiens'),(C,D));",
		},
		"lengths": {
			format: treelib.Lengths,
			want:   "((A:0.1,'Homo sapiens':2e-3):0.05,(C:1,D):1.50);",
		},
		"labels": {
			format: treelib.Labels,
			want:   "((A,'Homo sapiens')90,(C,D)80)root;",
		},
		"lengths and labels": {
			format: treelib.Lengths | treelib.Labels,
			want:   "((A:0.1,'Homo sapiens':2e-3)90:0.05,(C:1,D)80:1.50)root;",
		},
		"node IDs": {
			format: treelib.NodeIDs,
			want:   "((A,'Homo sapiens')<1>,(C,D)<2>)<3>;",
		},
		"node IDs and labels": {
			format: treelib.NodeIDs | treelib.Labels | treelib.Lengths,
			want:   "((A:0.1,'Homo sapiens':2e-3)<1>:0.05,(C:1,D)<2>:1.50)<3>;",
		},
	}

	tree, err := treelib.Parse(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s := tree.Newick(test.format)
			if s != test.want {
				t.Errorf("%s: got %q, want %q", name, s, test.want)
			}
		})
	}
}

var roundTripTrees = []string{
	"(A:1,(B:1,C:1):1);",
	"(A:1,B:1,C:1);",
	"(((A:1,B:2)90:1,C:3)85:1,(D:1,(E:1,F:1):0.5)80:2);",
	"((A:0.1,B:0.2)1.00:0.05,(C:0.3,D:0.4)0.95:0.01,(E:1,(F:1,G:1)0.5:1)0.99:2);",
	"(('Homo sapiens':6.4,'Pan troglodytes':6.4):2.5,Gorilla:8.9,'O''Brien':1e-2);",
	"((A,B),(C,D),(E,F),(G,H));",
}

func TestRoundTrip(t *testing.T) {
	for _, s := range roundTripTrees {
		tree, err := treelib.Parse(s)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", s, err)
		}

		out := tree.Newick(treelib.Lengths | treelib.Labels)
		if out != s {
			t.Errorf("%q: got %q", s, out)
		}

		nt, err := treelib.Parse(out)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", out, err)
		}
		if !reflect.DeepEqual(nt.Internals(), tree.Internals()) {
			t.Errorf("%q: internals: got %v, want %v", s, nt.Internals(), tree.Internals())
		}
		for _, id := range tree.Nodes() {
			c1, _ := tree.Clade(id)
			c2, err := nt.Clade(id)
			if err != nil {
				t.Fatalf("%q: node %s: unexpected error: %v", s, id, err)
			}
			if !reflect.DeepEqual(c1, c2) {
				t.Errorf("%q: node %s: clade %v, want %v", s, id, c2, c1)
			}
			l1, _ := tree.LengthText(id)
			l2, _ := nt.LengthText(id)
			if l1 != l2 {
				t.Errorf("%q: node %s: length %q, want %q", s, id, l2, l1)
			}
		}
	}
}
