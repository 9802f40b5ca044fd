// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treelib

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Tree collection errors
var (
	ErrTreeNoName   = errors.New("tree without name")
	ErrTreeRepeated = errors.New("repeated tree name")
)

// A Collection is a collection of named phylogenetic trees.
type Collection struct {
	names []string
	trees map[string]*Tree
}

// NewCollection returns a new empty collection.
func NewCollection() *Collection {
	return &Collection{
		trees: make(map[string]*Tree),
	}
}

// Add adds a tree to a tree collection.
// It will return an error if the collection
// has a tree with the same name
// or the name is empty.
func (c *Collection) Add(name string, t *Tree) error {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ErrTreeNoName
	}
	if _, dup := c.trees[name]; dup {
		return fmt.Errorf("%w: %s", ErrTreeRepeated, name)
	}
	c.trees[name] = t
	c.names = append(c.names, name)
	return nil
}

// Len returns the number of trees in the collection.
func (c *Collection) Len() int {
	return len(c.names)
}

// Names return the names of the trees in the collection
// in the order in which they were added.
func (c *Collection) Names() []string {
	return slices.Clone(c.names)
}

// Tree returns a tree with a given name.
func (c *Collection) Tree(name string) *Tree {
	name = strings.Join(strings.Fields(name), " ")
	return c.trees[name]
}
