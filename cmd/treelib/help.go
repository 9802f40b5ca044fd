// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(nodeIDsGuide)
	app.Add(treeFilesGuide)
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
Most treelib commands read and write tree files. A tree file is a text file
with a tree per line in newick (parenthetical) format. Each tree can be
preceded by an identifier of the tree and a tab character, for example:

	# gene trees
	OG0001	((A:0.1,B:0.2):0.05,C:0.3,D:0.1);
	OG0002	((A:0.1,C:0.2):0.05,(B:0.3,D:0.4):0.02);

If a tree does not have an identifier, the line number will be used as its
identifier. Empty lines and lines starting with '#' are ignored.

Terminal names can be quoted with single quotes, and a single quote inside a
quoted name is written as two single quotes. Text enclosed in brackets is
taken as a comment. Text after a closing parenthesis is a label of the node
(usually a support value), and the text after a colon is a branch length.

If a tree has a root with three children, it is taken as an unrooted tree;
any other tree is taken as rooted.

Lines with invalid trees are skipped, and reported in the standard error.
	`,
}

var nodeIDsGuide = &command.Command{
	Usage: "node-ids",
	Short: "about node identifiers",
	Long: `
In treelib, a terminal node is identified by its name, and the internal nodes
(including the root) are identified by a synthetic identifier of the form
<N>, in which N is a number. Synthetic identifiers are assigned while the
tree is read: innermost groups (a parenthesis without nested parenthesis) are
resolved first, from left to right, then the groups that contain them, up to
the root, that is always the last resolved group. For example, in the tree

	(A:1,(B:1,C:1):1);

the group (B,C) is <1>, and the root is <2>.

Synthetic identifiers are only valid for the tree in which they were
assigned. Use "treelib newick --ids" to print a tree with its node
identifiers, and "treelib map" to find the equivalent nodes in a different
tree.
	`,
}
