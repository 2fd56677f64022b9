package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/AlonMell/ordmap/internal/rbtree"
)

var (
	redKey   = color.New(color.FgRed, color.Bold)
	blackKey = color.New(color.FgHiBlack, color.Bold)
)

func paint(key int, c rbtree.Color) string {
	if c == rbtree.Red {
		return redKey.Sprint(key)
	}
	return blackKey.Sprint(key)
}

func renderEntries(w io.Writer, tree *rbtree.Tree[int, string], order rbtree.Order) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(order.String() + "-order")
	t.AppendHeader(table.Row{"#", "key", "value", "color"})

	i := 0
	for e := range tree.Entries(order) {
		i++
		t.AppendRow(table.Row{i, paint(e.Key, e.Color), e.Value, e.Color})
	}
	t.Render()
}

// renderShape prints the tree sideways, right subtree first.
func renderShape(w io.Writer, root *rbtree.Node[int, string]) {
	if root == nil {
		fmt.Fprintln(w, "<empty>")
		return
	}
	renderSubtree(w, root, "", true)
}

func renderSubtree(w io.Writer, node *rbtree.Node[int, string], prefix string, isTail bool) {
	if node == nil {
		return
	}

	branch, indent := "├── ", "│   "
	if isTail {
		branch, indent = "└── ", "    "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, paint(node.Key(), node.Color()))

	left, right := node.Left(), node.Right()
	if right != nil {
		renderSubtree(w, right, prefix+indent, left == nil)
	}
	if left != nil {
		renderSubtree(w, left, prefix+indent, true)
	}
}

func renderSummary(w io.Writer, tree *rbtree.Tree[int, string]) {
	stats := tree.Stats()
	fmt.Fprintf(w, "size: %d  black-height: %d  rotations: %d\n",
		tree.Len(), tree.BlackHeight(), stats.Rotations)

	for c, hits := range stats.InsertCases {
		fmt.Fprintf(w, "insert %-18s %d\n", rbtree.InsertCase(c), hits)
	}
	for c, hits := range stats.DeleteCases {
		fmt.Fprintf(w, "delete %-18s %d\n", rbtree.DeleteCase(c), hits)
	}
}
