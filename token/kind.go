// Package token defines the token kinds and values produced by the lexer
// and consumed by the expression tree and query parser.
package token

// Kind identifies the syntactic class of a Token.
type Kind int

const (
	Illegal Kind = iota

	// keywords
	Select
	Insert
	Delete
	Create
	Drop
	Table
	Index
	Where
	From
	Into
	On
	Values
	Null

	// literals
	StringLiteral
	NumberLiteral
	FloatLiteral
	BoolLiteral
	Identifier
	DataType

	// punctuation
	Comma
	Semicolon
	Star
	Plus
	Minus
	Slash
	Percent
	ParOpen
	ParClose

	// operators
	CompareOp
	LogicalOp
	Not
	ExclamationMark
)

// String returns the canonical source text for fixed-text kinds, and a
// descriptive name (such as "string-literal") for value-bearing kinds;
// Token.String renders the carried value instead.
func (k Kind) String() string {
	switch k {
	case Illegal:
		return "illegal"
	case Select:
		return "select"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Create:
		return "create"
	case Drop:
		return "drop"
	case Table:
		return "table"
	case Index:
		return "index"
	case Where:
		return "where"
	case From:
		return "from"
	case Into:
		return "into"
	case On:
		return "on"
	case Values:
		return "values"
	case Null:
		return "null"
	case StringLiteral:
		return "string-literal"
	case NumberLiteral:
		return "number-literal"
	case FloatLiteral:
		return "float-literal"
	case BoolLiteral:
		return "bool-literal"
	case Identifier:
		return "identifier"
	case DataType:
		return "data-type"
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case Star:
		return "*"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Slash:
		return "/"
	case Percent:
		return "%"
	case ParOpen:
		return "("
	case ParClose:
		return ")"
	case CompareOp:
		return "compare-op"
	case LogicalOp:
		return "logical-op"
	case Not:
		return "not"
	case ExclamationMark:
		return "!"
	default:
		return "unknown"
	}
}
