package ast

import (
	"testing"

	"github.com/Progenitus1/rust-sql-miniserver/token"
)

func TestParseTreeEmptyIsNil(t *testing.T) {
	tree, err := ParseTree(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree != nil {
		t.Errorf("expected a nil tree for an empty token stream, got %#v", tree)
	}
}

func TestParseTreeUnfinishedParenthesis(t *testing.T) {
	tokens := []token.Token{
		token.New(token.ParOpen),
		token.NewInt(1),
	}
	if _, err := ParseTree(tokens); err == nil {
		t.Fatal("expected an error for an unclosed parenthesis")
	}
}

func TestParseTreeUnexpectedToken(t *testing.T) {
	tokens := []token.Token{token.New(token.From)}
	if _, err := ParseTree(tokens); err == nil {
		t.Fatal("expected an error for a token that cannot start an expression")
	}
}

func TestParseTreeSimpleBinary(t *testing.T) {
	tokens := []token.Token{
		token.NewStr(token.Identifier, "x"),
		token.NewStr(token.CompareOp, "="),
		token.NewInt(1),
	}
	tree, err := ParseTree(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	binary, ok := tree.(Binary)
	if !ok {
		t.Fatalf("expected a Binary node, got %T", tree)
	}
	if binary.Op.Str != "=" {
		t.Errorf("expected op %q, got %q", "=", binary.Op.Str)
	}
}
