// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib_test

import (
	"reflect"
	"testing"

	"github.com/js-arias/treelib"
)

func TestMapNodes(t *testing.T) {
	tests := map[string]struct {
		a, b string
		want map[string]string
	}{
		"same tree": {
			a: "((A,B),(C,D));",
			b: "((A,B),(C,D));",
			want: map[string]string{
				"<1>": "<1>",
				"<2>": "<2>",
				"<3>": "<3>",
			},
		},
		"different order": {
			a: "((A,B),(C,D));",
			b: "((C,D),(B,A));",
			want: map[string]string{
				"<1>": "<2>",
				"<2>": "<1>",
				"<3>": "<3>",
			},
		},
		"unrooted": {
			a: "((A,B),(C,D));",
			b: "(A,B,(C,D));",
			want: map[string]string{
				"<1>": "<1>",
				"<3>": "<2>",
			},
		},
		"different topology": {
			a: "(((A,B),C),(D,E));",
			b: "(((A,C),B),(D,E));",
			want: map[string]string{
				"<2>": "<2>",
				"<3>": "<3>",
				"<4>": "<4>",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			a, err := treelib.Parse(test.a)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			b, err := treelib.Parse(test.b)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}

			m := a.MapNodes(b)
			if !reflect.DeepEqual(m, test.want) {
				t.Errorf("%s: got %v, want %v", name, m, test.want)
			}
		})
	}
}

func TestMapRerooted(t *testing.T) {
	tree, err := treelib.Parse("(((A,B),C),(D,(E,F)));")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rt, err := tree.RootAt("E")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := tree.MapNodes(rt)
	for id, o := range m {
		a, _ := tree.Clade(id)
		b, _ := rt.Clade(o)
		if reflect.DeepEqual(a, b) {
			continue
		}
		if o == rt.Root() {
			t.Errorf("node %s mapped to root", id)
			continue
		}
		s, _ := rt.Split(o)
		if !reflect.DeepEqual(a, s) {
			t.Errorf("node %s: clade %v, mapped to %s with clade %v and split %v", id, a, o, b, s)
		}
	}

	// (A,B) and ((A,B),C) are the same bipartitions in both trees
	for _, id := range []string{"<1>", "<3>"} {
		if _, ok := m[id]; !ok {
			t.Errorf("node %s not mapped", id)
		}
	}
}
