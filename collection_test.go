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

func TestCollection(t *testing.T) {
	c := treelib.NewCollection()

	names := []string{"zeta", "alpha  tree", "beta"}
	for _, nm := range names {
		tree, err := treelib.Parse("((A,B),C);")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := c.Add(nm, tree); err != nil {
			t.Fatalf("add %q: unexpected error: %v", nm, err)
		}
	}

	if c.Len() != 3 {
		t.Errorf("len: got %d, want %d", c.Len(), 3)
	}
	want := []string{"zeta", "alpha tree", "beta"}
	if got := c.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("names: got %v, want %v", got, want)
	}
	if c.Tree(" alpha   tree ") == nil {
		t.Errorf("tree %q not found", "alpha tree")
	}
	if c.Tree("gamma") != nil {
		t.Errorf("tree %q found", "gamma")
	}

	tree, _ := treelib.Parse("(A,B);")
	if err := c.Add("beta", tree); !errors.Is(err, treelib.ErrTreeRepeated) {
		t.Errorf("repeated: got error %v, want %v", err, treelib.ErrTreeRepeated)
	}
	if err := c.Add("  ", tree); !errors.Is(err, treelib.ErrTreeNoName) {
		t.Errorf("no name: got error %v, want %v", err, treelib.ErrTreeNoName)
	}
}
