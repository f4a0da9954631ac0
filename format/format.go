// Package format renders an ast.Node or a parser.Query back to SQL text.
package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Progenitus1/rust-sql-miniserver/ast"
	"github.com/Progenitus1/rust-sql-miniserver/parser"
	"github.com/Progenitus1/rust-sql-miniserver/token"
)

// Options controls formatting behavior.
type Options struct {
	Uppercase bool // Uppercase keywords
}

// DefaultOptions are the default formatting options.
var DefaultOptions = Options{Uppercase: true}

// Formatter renders SQL into an internal buffer.
type Formatter struct {
	buf  bytes.Buffer
	opts Options
}

// New creates a Formatter with the given options.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// Node formats an expression tree to a SQL string.
func Node(n ast.Node) string {
	f := New(DefaultOptions)
	f.formatNode(n)
	return f.String()
}

// Query formats a parsed statement back to SQL text.
func Query(q parser.Query) string {
	f := New(DefaultOptions)
	f.formatQuery(q)
	return f.String()
}

func (f *Formatter) String() string { return f.buf.String() }

func (f *Formatter) write(s string) { f.buf.WriteString(s) }

func (f *Formatter) writeKeyword(kw string) {
	if f.opts.Uppercase {
		f.write(strings.ToUpper(kw))
		return
	}
	f.write(strings.ToLower(kw))
}

func (f *Formatter) formatQuery(q parser.Query) {
	switch q.Kind {
	case parser.KindSelect:
		f.writeKeyword("select")
		f.write(" ")
		f.writeTokenList(q.Body)
		f.write(" ")
		f.writeKeyword("from")
		f.write(" " + q.TableName)
		f.formatWhere(q.WhereBody)
	case parser.KindInsert:
		f.writeKeyword("insert")
		f.write(" ")
		f.writeKeyword("into")
		f.write(" " + q.TableName)
		if len(q.Columns) > 0 {
			f.write(" (" + strings.Join(q.Columns, ", ") + ")")
		}
		f.write(" ")
		f.writeKeyword("values")
		f.write(" ")
		f.writeTokenList(q.Values)
	case parser.KindDelete:
		f.writeKeyword("delete")
		f.write(" ")
		f.writeKeyword("from")
		f.write(" " + q.TableName)
		f.formatWhere(q.WhereBody)
	case parser.KindCreateTable:
		f.writeKeyword("create")
		f.write(" ")
		f.writeKeyword("table")
		f.write(" " + q.TableName + " (")
		for i, c := range q.ColumnsDefinition {
			if i > 0 {
				f.write(", ")
			}
			f.write(c.Name + " " + c.DataType)
		}
		f.write(")")
	case parser.KindCreateIndex:
		f.writeKeyword("create")
		f.write(" ")
		f.writeKeyword("index")
		f.write(" " + q.ColumnName + " ")
		f.writeKeyword("on")
		f.write(" " + q.TableName)
	case parser.KindDropIndex:
		f.writeKeyword("drop")
		f.write(" ")
		f.writeKeyword("index")
		f.write(" " + q.ColumnName + " ")
		f.writeKeyword("on")
		f.write(" " + q.TableName)
	case parser.KindDropTable:
		f.writeKeyword("drop")
		f.write(" ")
		f.writeKeyword("table")
		f.write(" " + q.TableName)
	}
}

func (f *Formatter) formatWhere(where ast.Node) {
	if where == nil {
		return
	}
	f.write(" ")
	f.writeKeyword("where")
	f.write(" ")
	f.formatNode(where)
}

func (f *Formatter) writeTokenList(tokens []token.Token) {
	for i, t := range tokens {
		if i > 0 {
			f.write(", ")
		}
		f.write(t.String())
	}
}

func (f *Formatter) formatNode(n ast.Node) {
	switch v := n.(type) {
	case ast.Leaf:
		f.write(v.Token.String())
	case ast.Unary:
		f.write(v.Op.String())
		f.write(" ")
		f.formatNode(v.Node)
	case ast.Binary:
		f.formatNode(v.Left)
		f.write(fmt.Sprintf(" %s ", v.Op.String()))
		f.formatNode(v.Right)
	}
}
