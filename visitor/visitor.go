// Package visitor walks ast.Node trees.
package visitor

import (
	"github.com/Progenitus1/rust-sql-miniserver/ast"
	"github.com/Progenitus1/rust-sql-miniserver/token"
)

// VisitFunc is called for every node during Walk, pre-order.
type VisitFunc func(ast.Node)

// Walk visits node and every descendant, pre-order (parent before
// children).
func Walk(node ast.Node, f VisitFunc) {
	if node == nil {
		return
	}
	f(node)

	switch n := node.(type) {
	case ast.Binary:
		Walk(n.Left, f)
		Walk(n.Right, f)
	case ast.Unary:
		Walk(n.Node, f)
	}
}

// Identifiers returns every identifier name referenced in node, in visit
// order, duplicates included.
func Identifiers(node ast.Node) []string {
	var out []string
	Walk(node, func(n ast.Node) {
		if leaf, ok := n.(ast.Leaf); ok && leaf.Token.Kind == token.Identifier {
			out = append(out, leaf.Token.Str)
		}
	})
	return out
}
