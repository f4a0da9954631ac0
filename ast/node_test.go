package ast

import (
	"testing"

	"github.com/Progenitus1/rust-sql-miniserver/token"
)

func TestNewBinary(t *testing.T) {
	left := Leaf{Token: token.NewStr(token.Identifier, "a")}
	right := Leaf{Token: token.NewInt(5)}
	op := token.New(token.Plus)

	node := NewBinary(left, op, right)
	binary, ok := node.(Binary)
	if !ok {
		t.Fatalf("expected a Binary node, got %T", node)
	}
	if binary.Left != left || binary.Op != op || binary.Right != right {
		t.Errorf("unexpected binary node: %#v", binary)
	}
}

func TestNewUnary(t *testing.T) {
	inner := Leaf{Token: token.NewInt(5)}
	op := token.New(token.Minus)

	node := NewUnary(op, inner)
	unary, ok := node.(Unary)
	if !ok {
		t.Fatalf("expected a Unary node, got %T", node)
	}
	if unary.Op != op || unary.Node != inner {
		t.Errorf("unexpected unary node: %#v", unary)
	}
}
