// Package ast defines the expression tree built from a lexed token stream
// and the values that evaluating it can produce.
package ast

import "github.com/Progenitus1/rust-sql-miniserver/token"

// Node is implemented by every expression tree node: Leaf, Binary, Unary.
type Node interface {
	isNode()
}

// Leaf wraps a single token: a literal, NULL, or an identifier reference.
type Leaf struct {
	Token token.Token
}

// Binary is a two-operand expression: arithmetic, comparison, or logical.
type Binary struct {
	Left  Node
	Op    token.Token
	Right Node
}

// Unary is a single-operand expression: negation or boolean not.
type Unary struct {
	Op   token.Token
	Node Node
}

func (Leaf) isNode()   {}
func (Binary) isNode() {}
func (Unary) isNode()  {}

// NewBinary builds a Binary node.
func NewBinary(left Node, op token.Token, right Node) Node {
	return Binary{Left: left, Op: op, Right: right}
}

// NewUnary builds a Unary node.
func NewUnary(op token.Token, node Node) Node {
	return Unary{Op: op, Node: node}
}
