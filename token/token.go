package token

import "fmt"

// Token is a single lexed unit. Only the fields relevant to Kind are
// populated: Str for identifiers/string literals/operator text/data-type
// names, Int for NumberLiteral, Float for FloatLiteral, Bool for
// BoolLiteral.
type Token struct {
	Kind  Kind
	Str   string
	Int   int32
	Float float64
	Bool  bool
}

// Op returns the text carried by t in Str: the operator, identifier,
// string-literal or data-type text. It is empty for number, float and
// bool literals, whose values live in Int, Float and Bool.
func (t Token) Op() string {
	return t.Str
}

// New constructs a fixed-text token (keywords and punctuation).
func New(kind Kind) Token {
	return Token{Kind: kind}
}

// NewStr constructs a value-bearing token whose payload is a string
// (Identifier, StringLiteral, CompareOp, LogicalOp, DataType).
func NewStr(kind Kind, s string) Token {
	return Token{Kind: kind, Str: s}
}

// NewInt constructs a NumberLiteral token.
func NewInt(v int32) Token {
	return Token{Kind: NumberLiteral, Int: v}
}

// NewFloat constructs a FloatLiteral token.
func NewFloat(v float64) Token {
	return Token{Kind: FloatLiteral, Float: v}
}

// NewBool constructs a BoolLiteral token.
func NewBool(v bool) Token {
	return Token{Kind: BoolLiteral, Bool: v}
}

// Equal reports whether t and other represent the same token, including
// carried values. Used by the parser/tree builder for lookahead checks.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Identifier, StringLiteral, CompareOp, LogicalOp, DataType:
		return t.Str == other.Str
	case NumberLiteral:
		return t.Int == other.Int
	case FloatLiteral:
		return t.Float == other.Float
	case BoolLiteral:
		return t.Bool == other.Bool
	default:
		return true
	}
}

// String renders the token the way it would appear back in source text,
// used by format and by error messages.
func (t Token) String() string {
	switch t.Kind {
	case Identifier, StringLiteral, CompareOp, LogicalOp, DataType:
		return t.Str
	case NumberLiteral:
		return fmt.Sprintf("%d", t.Int)
	case FloatLiteral:
		return fmt.Sprintf("%v", t.Float)
	case BoolLiteral:
		return fmt.Sprintf("%v", t.Bool)
	default:
		return t.Kind.String()
	}
}

// GoString supports %#v in error messages/tests, mirroring the teacher's
// debug-friendly token formatting.
func (t Token) GoString() string {
	return fmt.Sprintf("Token{Kind: %s, Str: %q, Int: %d, Float: %v, Bool: %v}",
		t.Kind, t.Str, t.Int, t.Float, t.Bool)
}
