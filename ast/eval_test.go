package ast

import (
	"testing"

	"github.com/Progenitus1/rust-sql-miniserver/lexer"
)

func evalExpr(t *testing.T, expr string) Value {
	t.Helper()
	tokens, err := lexer.Lex(expr)
	if err != nil {
		t.Fatalf("Lex(%q): %v", expr, err)
	}
	tree, err := ParseTree(tokens)
	if err != nil {
		t.Fatalf("ParseTree(%q): %v", expr, err)
	}
	if tree == nil {
		t.Fatalf("ParseTree(%q) returned a nil tree", expr)
	}

	row := map[string]Value{
		"x":   IntValue(100),
		"abc": StringValue("abc"),
		"nil": NullValue(),
	}
	v, err := EvalNode(tree, row)
	if err != nil {
		t.Fatalf("EvalNode(%q): %v", expr, err)
	}
	return v
}

func assertValue(t *testing.T, expr string, want Value) {
	t.Helper()
	got := evalExpr(t, expr)
	if !got.Equal(want) {
		t.Errorf("eval(%q) = %s, want %s", expr, got, want)
	}
}

func TestEvalBasicArithmetic(t *testing.T) {
	assertValue(t, "1 + 2", IntValue(3))
	assertValue(t, "1 - 2", IntValue(-1))
	assertValue(t, "1 * 2", IntValue(2))
	assertValue(t, "1 / 2", IntValue(0))
	assertValue(t, "1 % 2", IntValue(1))
}

func TestEvalIntFloatArithmetic(t *testing.T) {
	assertValue(t, "1 + 2.0", FloatValue(3.0))
}

func TestEvalBoolExpressions(t *testing.T) {
	assertValue(t, "x = 100", BoolValue(true))
	assertValue(t, "x != 10", BoolValue(true))
	assertValue(t, "10 < x", BoolValue(true))
	assertValue(t, "10 > x", BoolValue(false))
	assertValue(t, "100 <= x", BoolValue(true))
	assertValue(t, "100 >= x", BoolValue(true))
	assertValue(t, "x <> 100", BoolValue(false))
}

func TestEvalStringOps(t *testing.T) {
	assertValue(t, `"foo" + "bar"`, StringValue("foobar"))
	assertValue(t, `"foo" != "bar"`, BoolValue(true))
	assertValue(t, `"foo" = "foo"`, BoolValue(true))
}

func TestEvalCompoundOps(t *testing.T) {
	assertValue(t, "(x - 100) = (10 + 100 - 110)", BoolValue(true))
	assertValue(t, `(abc + "def") = ("abcd" + "ef")`, BoolValue(true))
	assertValue(t, `(x = 100) and (abc = "abc")`, BoolValue(true))
	assertValue(t, "(x - 101) = -1", BoolValue(true))
	assertValue(t, "((2 * x) = (3 + (122 * 300)))", BoolValue(false))
}

func TestEvalNullBubbleUp(t *testing.T) {
	assertValue(t, "(nil * 3) + 2", NullValue())
	assertValue(t, `(nil + "aa") = NULL`, BoolValue(true))
}

func TestEvalNullEqNull(t *testing.T) {
	assertValue(t, "nil = NULL", BoolValue(true))
	assertValue(t, "nil != NULL", NullValue())
	assertValue(t, "nil <> NULL", BoolValue(false))
}

func TestEvalMinusEq(t *testing.T) {
	assertValue(t, "0 = -1", BoolValue(false))
}

func TestEvalUnaryOp(t *testing.T) {
	assertValue(t, "not (x = 100)", BoolValue(false))
	assertValue(t, "-x", IntValue(-100))
	assertValue(t, "not(x = 100)", BoolValue(false))
	assertValue(t, "!false", BoolValue(true))
	assertValue(t, "-2 * -3", IntValue(6))
}

func TestEvalOperatorPrecedence(t *testing.T) {
	assertValue(t, "3 = 2 + 1", BoolValue(true))
	assertValue(t, "false = true xor true", BoolValue(true))
	assertValue(t, "-1 * -6", IntValue(6))
	assertValue(t, `"abc" + abc = abc + "abc"`, BoolValue(true))
	assertValue(t, "100 >= 30 + 10", BoolValue(true))
	assertValue(t, "(11 + 1) / 2 + 6", IntValue(12))
	assertValue(t, "x > 4 and x <= 130.5", BoolValue(true))
}

func TestEvalWhereNullIsFalse(t *testing.T) {
	tokens, err := lexer.Lex("nil != NULL")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	tree, err := ParseTree(tokens)
	if err != nil {
		t.Fatalf("ParseTree: %v", err)
	}
	ok, err := EvalWhere(tree, map[string]Value{"nil": NullValue()})
	if err != nil {
		t.Fatalf("EvalWhere: %v", err)
	}
	if ok {
		t.Error("expected a NULL predicate to evaluate to false")
	}
}
