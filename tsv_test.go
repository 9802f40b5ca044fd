// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/treelib"
)

func TestReadTSV(t *testing.T) {
	in := `# phylogenetic trees
tree	node	parent	kind	length	label
OG0001	<2>		root
OG0001	A	<2>	tip	1
OG0001	<1>	<2>	internal	1	95
OG0001	B	<1>	tip	1
OG0001	C	<1>	tip	1
OG0002	<1>		root
OG0002	A	<1>	tip
OG0002	B	<1>	tip
OG0002	C	<1>	tip
`
	c, err := treelib.ReadTSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names := c.Names(); !reflect.DeepEqual(names, []string{"OG0001", "OG0002"}) {
		t.Errorf("names: got %v", names)
	}

	tree := c.Tree("OG0001")
	if s := tree.String(); s != "(A:1,(B:1,C:1)95:1);" {
		t.Errorf("tree OG0001: got %q", s)
	}
	if !tree.IsRooted() {
		t.Errorf("tree OG0001: got unrooted tree")
	}
	if in := tree.Internals(); !reflect.DeepEqual(in, []string{"<2>", "<1>"}) {
		t.Errorf("tree OG0001: internals: got %v", in)
	}
	if lb, _ := tree.Label("<1>"); lb != "95" {
		t.Errorf("tree OG0001: label: got %q, want %q", lb, "95")
	}

	tree = c.Tree("OG0002")
	if s := tree.String(); s != "(A,B,C);" {
		t.Errorf("tree OG0002: got %q", s)
	}
	if tree.IsRooted() {
		t.Errorf("tree OG0002: got rooted tree")
	}

	// the synthetic IDs do not collide with the read IDs
	rt, err := tree.RootAt("A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := rt.Root(); r != "<2>" {
		t.Errorf("tree OG0002: new root: got %q, want %q", r, "<2>")
	}
}

func TestTSVRoundTrip(t *testing.T) {
	c := treelib.NewCollection()
	for i, s := range roundTripTrees {
		tree, err := treelib.Parse(s)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", s, err)
		}
		if err := c.Add(string(rune('a'+i)), tree); err != nil {
			t.Fatalf("%q: unexpected error: %v", s, err)
		}
	}

	var buf bytes.Buffer
	if err := c.TSV(&buf); err != nil {
		t.Fatalf("while writing data: %v", err)
	}

	nc, err := treelib.ReadTSV(&buf)
	if err != nil {
		t.Fatalf("while reading data: %v", err)
	}
	if !reflect.DeepEqual(nc.Names(), c.Names()) {
		t.Errorf("names: got %v, want %v", nc.Names(), c.Names())
	}
	for _, name := range c.Names() {
		want := c.Tree(name)
		got := nc.Tree(name)
		if got.String() != want.String() {
			t.Errorf("tree %s: got %q, want %q", name, got.String(), want.String())
		}
		if !reflect.DeepEqual(got.Nodes(), want.Nodes()) {
			t.Errorf("tree %s: nodes: got %v, want %v", name, got.Nodes(), want.Nodes())
		}
		if got.IsRooted() != want.IsRooted() {
			t.Errorf("tree %s: rooted: got %v, want %v", name, got.IsRooted(), want.IsRooted())
		}
	}
}

func TestReadTSVError(t *testing.T) {
	head := "tree\tnode\tparent\tkind\tlength\tlabel\n"
	tests := map[string]struct {
		in  string
		err error
	}{
		"undefined parent": {
			in: head +
				"t\t<1>\t\troot\n" +
				"t\tA\t<2>\ttip\t1\n",
			err: treelib.ErrAddNoParent,
		},
		"repeated node": {
			in: head +
				"t\t<1>\t\troot\n" +
				"t\tA\t<1>\ttip\t1\n" +
				"t\tA\t<1>\ttip\t1\n",
			err: treelib.ErrAddRepeated,
		},
		"terminal as parent": {
			in: head +
				"t\t<1>\t\troot\n" +
				"t\tA\t<1>\ttip\t1\n" +
				"t\tB\tA\ttip\t1\n",
			err: treelib.ErrAddTerm,
		},
		"single child": {
			in: head +
				"t\t<1>\t\troot\n" +
				"t\tA\t<1>\ttip\t1\n" +
				"t\t<2>\t<1>\tinternal\t1\n" +
				"t\tB\t<2>\ttip\t1\n",
			err: treelib.ErrValSingleChild,
		},
		"invalid length": {
			in: head +
				"t\t<1>\t\troot\n" +
				"t\tA\t<1>\ttip\tone\n" +
				"t\tB\t<1>\ttip\t1\n",
			err: treelib.ErrParse,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := treelib.ReadTSV(strings.NewReader(test.in))
			if !errors.Is(err, test.err) {
				t.Errorf("%s: got error '%v', want '%v'", name, err, test.err)
			}
		})
	}

	others := map[string]string{
		"missing field": "tree\tnode\tparent\tkind\n",
		"unknown kind": head +
			"t\t<1>\t\troot\n" +
			"t\tA\t<1>\tleaf\t1\n",
		"two roots": head +
			"t\t<1>\t\troot\n" +
			"t\t<2>\t\troot\n",
		"internal without parent": head +
			"t\t<1>\t\tinternal\n",
	}
	for name, in := range others {
		t.Run(name, func(t *testing.T) {
			if _, err := treelib.ReadTSV(strings.NewReader(in)); err == nil {
				t.Errorf("%s: expecting error", name)
			}
		})
	}
}
