// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib_test

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/js-arias/treelib"
	"golang.org/x/exp/slices"
)

func TestQuartet(t *testing.T) {
	tests := map[string]struct {
		in string
		id string
		q  treelib.Quartet
		ok bool
	}{
		"rooted": {
			in: "(((A,B),(C,D)),(E,F));",
			id: "<1>",
			q: treelib.Quartet{
				D1:     []string{"A"},
				D2:     []string{"B"},
				Sister: []string{"C", "D"},
				Other:  []string{"E", "F"},
			},
			ok: true,
		},
		"rooted, large groups": {
			in: "((((A,B),(C,D)),(E,F)),(G,H));",
			id: "<5>",
			q: treelib.Quartet{
				D1:     []string{"A", "B"},
				D2:     []string{"C", "D"},
				Sister: []string{"E", "F"},
				Other:  []string{"G", "H"},
			},
			ok: true,
		},
		"unrooted, root child": {
			in: "((A,B),(C,D),(E,F));",
			id: "<1>",
			q: treelib.Quartet{
				D1:     []string{"A"},
				D2:     []string{"B"},
				Sister: []string{"C", "D"},
				Other:  []string{"E", "F"},
			},
			ok: true,
		},
		"unrooted, terminal sisters": {
			in: "(A,B,(C,D));",
			id: "<1>",
			q: treelib.Quartet{
				D1:     []string{"C"},
				D2:     []string{"D"},
				Sister: []string{"A"},
				Other:  []string{"B"},
			},
			ok: true,
		},
		"root": {
			in: "(((A,B),(C,D)),(E,F));",
			id: "<5>",
		},
		"terminal": {
			in: "(((A,B),(C,D)),(E,F));",
			id: "A",
		},
		"root child": {
			in: "(((A,B),(C,D)),(E,F));",
			id: "<4>",
		},
		"terminal sister in rooted tree": {
			in: "((A,(B,C)),(D,E));",
			id: "<1>",
		},
		"polytomy": {
			in: "(((A,B,C),D),(E,F));",
			id: "<1>",
		},
		"sister of a polytomy": {
			in: "(((A,B),C,D),(E,F));",
			id: "<1>",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			tree, err := treelib.Parse(test.in)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			q, ok, err := tree.Quartet(test.id)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			if ok != test.ok {
				t.Fatalf("%s: applicable: got %v, want %v", name, ok, test.ok)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(q, test.q) {
				t.Errorf("%s: got %v, want %v", name, q, test.q)
			}
		})
	}

	tree, _ := treelib.Parse("((A,B),C);")
	if _, _, err := tree.Quartet("<7>"); !errors.Is(err, treelib.ErrNodeNotFound) {
		t.Errorf("quartet: got error %v, want %v", err, treelib.ErrNodeNotFound)
	}
}

func TestSampleQuartets(t *testing.T) {
	tree, err := treelib.Parse("((((A,B),(C,D)),(E,F,G)),(H,I,J));")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// node <5> = ((A,B),(C,D))
	// with 2 x 2 x 3 x 3 = 36 quartets
	q, ok, err := tree.Quartet("<5>")
	if err != nil || !ok {
		t.Fatalf("quartet: got %v (error %v), want a valid quartet", ok, err)
	}

	all, ok, err := tree.SampleQuartets("<5>", 100, nil)
	if err != nil || !ok {
		t.Fatalf("all quartets: got %v (error %v), want a valid quartet", ok, err)
	}
	if len(all) != 36 {
		t.Errorf("all quartets: got %d quartets, want %d", len(all), 36)
	}
	testSamples(t, "all quartets", all, q)

	rnd := rand.New(rand.NewPCG(1, 2))
	s1, _, _ := tree.SampleQuartets("<5>", 10, rnd)
	if len(s1) != 10 {
		t.Errorf("sample: got %d quartets, want %d", len(s1), 10)
	}
	testSamples(t, "sample", s1, q)

	// the same seed produces the same sample
	rnd = rand.New(rand.NewPCG(1, 2))
	s2, _, _ := tree.SampleQuartets("<5>", 10, rnd)
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("sample with seed: got %v, want %v", s2, s1)
	}

	none, ok, err := tree.SampleQuartets("<5>", 0, rnd)
	if err != nil || !ok {
		t.Fatalf("empty sample: got %v (error %v), want a valid quartet", ok, err)
	}
	if len(none) != 0 {
		t.Errorf("empty sample: got %d quartets", len(none))
	}

	na, ok, err := tree.SampleQuartets(tree.Root(), 10, rnd)
	if err != nil {
		t.Fatalf("root: unexpected error: %v", err)
	}
	if ok || len(na) != 0 {
		t.Errorf("root: got %d quartets, want not applicable", len(na))
	}
}

func testSamples(t testing.TB, name string, samples []treelib.Sample, q treelib.Quartet) {
	t.Helper()

	groups := [4][]string{q.D1, q.D2, q.Sister, q.Other}
	seen := make(map[treelib.Sample]bool)
	for _, s := range samples {
		if seen[s] {
			t.Errorf("%s: quartet %v repeated", name, s)
		}
		seen[s] = true
		for i, tp := range s {
			if !slices.Contains(groups[i], tp) {
				t.Errorf("%s: quartet %v: terminal %s not in group %v", name, s, tp, groups[i])
			}
		}
	}
}
