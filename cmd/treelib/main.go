// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Treelib is a tool to query and transform phylogenetic trees
// in newick format.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/treelib/cmd/treelib/importcmd"
	"github.com/js-arias/treelib/cmd/treelib/lca"
	"github.com/js-arias/treelib/cmd/treelib/mapcmd"
	"github.com/js-arias/treelib/cmd/treelib/newick"
	"github.com/js-arias/treelib/cmd/treelib/prune"
	"github.com/js-arias/treelib/cmd/treelib/quartets"
	"github.com/js-arias/treelib/cmd/treelib/root"
	"github.com/js-arias/treelib/cmd/treelib/sim"
	"github.com/js-arias/treelib/cmd/treelib/table"
	"github.com/js-arias/treelib/cmd/treelib/tax"
	"github.com/js-arias/treelib/cmd/treelib/tips"
	"github.com/js-arias/treelib/cmd/treelib/unroot"
)

var app = &command.Command{
	Usage: "treelib <command> [<argument>...]",
	Short: "a tool to query and transform phylogenetic trees",
}

func init() {
	app.Add(importcmd.Command)
	app.Add(lca.Command)
	app.Add(mapcmd.Command)
	app.Add(newick.Command)
	app.Add(prune.Command)
	app.Add(quartets.Command)
	app.Add(root.Command)
	app.Add(sim.Command)
	app.Add(table.Command)
	app.Add(tax.Command)
	app.Add(tips.Command)
	app.Add(unroot.Command)
}

func main() {
	app.Main()
}
