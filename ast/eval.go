package ast

import (
	"fmt"
	"math"

	"github.com/Progenitus1/rust-sql-miniserver/token"
)

// ValueKind tags the variant carried by a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueString
	ValueInt
	ValueFloat
)

// Value is the result of evaluating a Node: a dynamically typed scalar
// with an explicit Null variant, since every operator here is expected to
// propagate NULL rather than panic on a missing column value.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Str   string
	Int   int32
	Float float64
}

func NullValue() Value          { return Value{Kind: ValueNull} }
func BoolValue(b bool) Value    { return Value{Kind: ValueBool, Bool: b} }
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }
func IntValue(i int32) Value    { return Value{Kind: ValueInt, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: ValueFloat, Float: f} }

// Equal reports whether two values are equal, NULL included (so NULL ==
// NULL is true here -- callers implementing SQL's = operator special-case
// NULL themselves, as EvalNode does).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValueNull:
		return true
	case ValueBool:
		return v.Bool == other.Bool
	case ValueString:
		return v.Str == other.Str
	case ValueInt:
		return v.Int == other.Int
	case ValueFloat:
		return v.Float == other.Float
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case ValueNull:
		return "NULL"
	case ValueBool:
		return fmt.Sprintf("%v", v.Bool)
	case ValueString:
		return v.Str
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueFloat:
		return fmt.Sprintf("%v", v.Float)
	}
	return "?"
}

func errInvalidType(expected string, got Value) error {
	return &Error{Kind: "InvalidType", Message: fmt.Sprintf("invalid type - expected <%s>, got %s", expected, got)}
}

func errInvalidOperator(expected string, got token.Token) error {
	return &Error{Kind: "InvalidOperator", Message: fmt.Sprintf("invalid operator - expected <%s>, got %#v", expected, got)}
}

func errIdentifierNotFound(name string) error {
	return &Error{Kind: "IdentifierNotFound", Message: fmt.Sprintf("identifier %s not found", name)}
}

// EvalWhere evaluates node as a WHERE predicate: a NULL result is treated
// as false, matching SQL's three-valued-logic filtering semantics.
func EvalWhere(node Node, row map[string]Value) (bool, error) {
	v, err := EvalNode(node, row)
	if err != nil {
		return false, err
	}
	switch v.Kind {
	case ValueBool:
		return v.Bool, nil
	case ValueNull:
		return false, nil
	default:
		return false, errInvalidType("bool", v)
	}
}

// EvalNode evaluates an expression tree against a row of identifier
// bindings, producing a single scalar Value.
func EvalNode(node Node, row map[string]Value) (Value, error) {
	switch n := node.(type) {
	case Leaf:
		return evalLeaf(n.Token, row)
	case Unary:
		v, err := EvalNode(n.Node, row)
		if err != nil {
			return Value{}, err
		}
		return evalUnary(n.Op, v)
	case Binary:
		left, err := EvalNode(n.Left, row)
		if err != nil {
			return Value{}, err
		}
		right, err := EvalNode(n.Right, row)
		if err != nil {
			return Value{}, err
		}

		switch left.Kind {
		case ValueBool:
			return evalBoolOp(left, right, n.Op)
		case ValueString:
			return evalStringOp(left, right, n.Op)
		case ValueInt, ValueFloat:
			return evalNumberOp(left, right, n.Op)
		case ValueNull:
			if n.Op.Kind == token.CompareOp && n.Op.Str == "=" {
				return BoolValue(right.Kind == ValueNull), nil
			}
			// notice: != behaves differently than <> for NULL operands
			if n.Op.Kind == token.CompareOp && n.Op.Str == "<>" {
				return BoolValue(right.Kind != ValueNull), nil
			}
			return NullValue(), nil
		}
	}
	return Value{}, fmt.Errorf("unreachable node type %T", node)
}

func evalLeaf(t token.Token, row map[string]Value) (Value, error) {
	switch t.Kind {
	case token.BoolLiteral:
		return BoolValue(t.Bool), nil
	case token.StringLiteral:
		return StringValue(t.Str), nil
	case token.NumberLiteral:
		return IntValue(t.Int), nil
	case token.FloatLiteral:
		return FloatValue(t.Float), nil
	case token.Null:
		return NullValue(), nil
	case token.Identifier:
		v, ok := row[t.Str]
		if !ok {
			return Value{}, errIdentifierNotFound(t.Str)
		}
		return v, nil
	default:
		return Value{}, errUnexpectedToken("leaf token", t)
	}
}

func evalUnary(op token.Token, v Value) (Value, error) {
	switch op.Kind {
	case token.Not, token.ExclamationMark:
		switch v.Kind {
		case ValueBool:
			return BoolValue(!v.Bool), nil
		case ValueNull:
			return NullValue(), nil
		default:
			return Value{}, errInvalidType("bool", v)
		}
	case token.Minus:
		switch v.Kind {
		case ValueInt:
			return IntValue(-v.Int), nil
		case ValueFloat:
			return FloatValue(-v.Float), nil
		case ValueNull:
			return NullValue(), nil
		default:
			return Value{}, errInvalidType("int, float", v)
		}
	default:
		panic("unary operator should be one of !, not, -")
	}
}

func evalNumberOp(left, right Value, op token.Token) (Value, error) {
	if right.Kind == ValueNull {
		return NullValue(), nil
	}

	var l, r float64
	bothInt := left.Kind == ValueInt && right.Kind == ValueInt
	switch left.Kind {
	case ValueInt:
		l = float64(left.Int)
	case ValueFloat:
		l = left.Float
	default:
		return Value{}, errInvalidType("int, float", right)
	}
	switch right.Kind {
	case ValueInt:
		r = float64(right.Int)
	case ValueFloat:
		r = right.Float
	default:
		return Value{}, errInvalidType("int, float", right)
	}

	if bothInt {
		i1, i2 := left.Int, right.Int
		switch {
		case op.Kind == token.Plus:
			return IntValue(i1 + i2), nil
		case op.Kind == token.Minus:
			return IntValue(i1 - i2), nil
		case op.Kind == token.Star:
			return IntValue(i1 * i2), nil
		case op.Kind == token.Slash:
			return IntValue(i1 / i2), nil
		case op.Kind == token.Percent:
			return IntValue(i1 % i2), nil
		}
	}

	switch {
	case op.Kind == token.Plus:
		return FloatValue(l + r), nil
	case op.Kind == token.Minus:
		return FloatValue(l - r), nil
	case op.Kind == token.Star:
		return FloatValue(l * r), nil
	case op.Kind == token.Slash:
		return FloatValue(l / r), nil
	case op.Kind == token.Percent:
		return FloatValue(math.Mod(l, r)), nil
	}

	if op.Kind == token.CompareOp {
		switch op.Str {
		case ">":
			return BoolValue(l > r), nil
		case "<":
			return BoolValue(l < r), nil
		case ">=":
			return BoolValue(l >= r), nil
		case "<=":
			return BoolValue(l <= r), nil
		case "=":
			return BoolValue(l == r), nil
		case "!=", "<>":
			return BoolValue(l != r), nil
		}
	}

	return Value{}, errInvalidOperator("binary operator", op)
}

func evalStringOp(left, right Value, op token.Token) (Value, error) {
	if right.Kind == ValueNull {
		return NullValue(), nil
	}
	if right.Kind != ValueString {
		return Value{}, errInvalidType("string", right)
	}

	switch op.Kind {
	case token.Plus:
		return StringValue(left.Str + right.Str), nil
	case token.CompareOp:
		switch op.Str {
		case "=":
			return BoolValue(left.Str == right.Str), nil
		case "!=", "<>":
			return BoolValue(left.Str != right.Str), nil
		}
	}
	return Value{}, errInvalidOperator("=, !=, <>", op)
}

func evalBoolOp(left, right Value, op token.Token) (Value, error) {
	if right.Kind == ValueNull {
		return NullValue(), nil
	}
	if right.Kind != ValueBool {
		return Value{}, errInvalidType("bool", right)
	}

	switch op.Kind {
	case token.LogicalOp:
		switch op.Str {
		case "and":
			return BoolValue(left.Bool && right.Bool), nil
		case "or":
			return BoolValue(left.Bool || right.Bool), nil
		case "xor":
			return BoolValue(left.Bool != right.Bool), nil
		}
	case token.CompareOp:
		switch op.Str {
		case "=":
			return BoolValue(left.Bool == right.Bool), nil
		case "!=", "<>":
			return BoolValue(left.Bool != right.Bool), nil
		}
	}
	return Value{}, errInvalidOperator("and, or, xor", op)
}
