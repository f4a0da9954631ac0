// Package parser turns lexed SQL text into a Query: a tagged union over
// the seven statement forms this grammar supports.
package parser

import (
	"fmt"

	"github.com/Progenitus1/rust-sql-miniserver/ast"
	"github.com/Progenitus1/rust-sql-miniserver/lexer"
	"github.com/Progenitus1/rust-sql-miniserver/token"
)

// Kind tags which statement a Query carries.
type Kind int

const (
	KindSelect Kind = iota
	KindInsert
	KindDelete
	KindCreateTable
	KindCreateIndex
	KindDropIndex
	KindDropTable
)

// ColumnDef pairs a column name with its declared data type name.
type ColumnDef struct {
	Name     string
	DataType string
}

// Query is the parsed representation of one SQL statement. Only the
// fields relevant to Kind are populated.
type Query struct {
	Kind Kind

	// Select
	Body      []token.Token
	TableName string
	WhereBody ast.Node

	// Insert
	Values  []token.Token
	Columns []string

	// CreateTable
	ColumnsDefinition []ColumnDef

	// CreateIndex / DropIndex
	ColumnName string
}

// Error is returned by Parse.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func errUnexpectedQueryEnding() error {
	return &Error{Kind: "UnexpectedQueryEnding", Message: "unexpected query ending"}
}

func errUnexpectedToken(expected string, got token.Token) error {
	return &Error{Kind: "UnexpectedToken", Message: fmt.Sprintf("unexpected query token - expected <%s>, got %#v", expected, got)}
}

func errInsertValuesMismatch() error {
	return &Error{Kind: "InsertQueryValuesMismatch", Message: "number of values in insert query does not match number of columns"}
}

// Parse lexes and parses query into a Query.
func Parse(query string) (Query, error) {
	tokens, err := lexer.Lex(query)
	if err != nil {
		return Query{}, err
	}
	p := &queryParser{tokens: tokens}
	return p.parseQuery()
}

type queryParser struct {
	tokens []token.Token
	index  int
}

func (p *queryParser) next() (token.Token, bool) {
	if p.index >= len(p.tokens) {
		return token.Token{}, false
	}
	t := p.tokens[p.index]
	p.index++
	return t, true
}

func (p *queryParser) tryNext(want token.Token) bool {
	if h, ok := p.head(); ok && h.Equal(want) {
		p.index++
		return true
	}
	return false
}

func (p *queryParser) head() (token.Token, bool) {
	if p.index >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.index], true
}

func (p *queryParser) requireExpressionBodyToken() (token.Token, error) {
	t, ok := p.next()
	if !ok {
		return token.Token{}, errUnexpectedQueryEnding()
	}
	switch t.Kind {
	case token.Identifier, token.FloatLiteral, token.BoolLiteral, token.NumberLiteral,
		token.StringLiteral, token.Star, token.ParOpen, token.ParClose, token.Null:
		return t, nil
	default:
		return token.Token{}, errUnexpectedToken("expression body", t)
	}
}

func (p *queryParser) requireIdentifier() (string, error) {
	t, ok := p.next()
	if !ok {
		return "", errUnexpectedQueryEnding()
	}
	if t.Kind != token.Identifier {
		return "", errUnexpectedToken("identifier", t)
	}
	return t.Str, nil
}

func (p *queryParser) requireDataType() (string, error) {
	t, ok := p.next()
	if !ok {
		return "", errUnexpectedQueryEnding()
	}
	if t.Kind != token.DataType {
		return "", errUnexpectedToken("data-type", t)
	}
	return t.Str, nil
}

func (p *queryParser) requireToken(want token.Token) error {
	t, ok := p.next()
	if !ok {
		return errUnexpectedQueryEnding()
	}
	if !t.Equal(want) {
		return errUnexpectedToken(want.String(), t)
	}
	return nil
}

func (p *queryParser) requireTableOrIndex() (token.Token, error) {
	t, ok := p.next()
	if !ok {
		return token.Token{}, errUnexpectedQueryEnding()
	}
	if t.Kind == token.Table || t.Kind == token.Index {
		return t, nil
	}
	return token.Token{}, errUnexpectedToken("TABLE or INDEX", t)
}

func (p *queryParser) requireEOF() error {
	if p.index < len(p.tokens) {
		return errUnexpectedQueryEnding()
	}
	return nil
}

func (p *queryParser) parseQuery() (Query, error) {
	head, ok := p.next()
	if !ok {
		return Query{}, errUnexpectedQueryEnding()
	}

	var q Query
	var err error

	switch head.Kind {
	case token.Select:
		q, err = p.parseSelect()
	case token.Insert:
		q, err = p.parseInsert()
	case token.Delete:
		q, err = p.parseDelete()
	case token.Create:
		q, err = p.parseCreate()
	case token.Drop:
		q, err = p.parseDrop()
	default:
		return Query{}, errUnexpectedToken("SELECT/INSERT/DELETE/CREATE/DROP", head)
	}
	if err != nil {
		return Query{}, err
	}

	p.tryNext(token.New(token.Semicolon))
	if err := p.requireEOF(); err != nil {
		return Query{}, err
	}

	return q, nil
}

func (p *queryParser) parseSelect() (Query, error) {
	body, err := p.parseQueryBody()
	if err != nil {
		return Query{}, err
	}
	if err := p.requireToken(token.New(token.From)); err != nil {
		return Query{}, err
	}
	tableName, err := p.requireIdentifier()
	if err != nil {
		return Query{}, err
	}
	where, err := p.parseWhereBody()
	if err != nil {
		return Query{}, err
	}
	return Query{Kind: KindSelect, Body: body, TableName: tableName, WhereBody: where}, nil
}

func (p *queryParser) parseInsert() (Query, error) {
	if err := p.requireToken(token.New(token.Into)); err != nil {
		return Query{}, err
	}
	tableName, err := p.requireIdentifier()
	if err != nil {
		return Query{}, err
	}

	var columns []string
	if p.tryNext(token.New(token.ParOpen)) {
		for !p.tryNext(token.New(token.ParClose)) {
			col, err := p.requireIdentifier()
			if err != nil {
				return Query{}, err
			}
			columns = append(columns, col)
			p.tryNext(token.New(token.Comma))
		}
	}

	if err := p.requireToken(token.New(token.Values)); err != nil {
		return Query{}, err
	}
	isParenthesised := p.tryNext(token.New(token.ParOpen))
	values, err := p.parseQueryBody()
	if err != nil {
		return Query{}, err
	}
	if isParenthesised {
		if len(values) == 0 || values[len(values)-1].Kind != token.ParClose {
			var last token.Token
			if len(values) > 0 {
				last = values[len(values)-1]
			}
			return Query{}, errUnexpectedToken("closing parenthesis", last)
		}
		values = values[:len(values)-1]
	}

	if len(columns) != 0 && len(columns) != len(values) {
		return Query{}, errInsertValuesMismatch()
	}

	return Query{Kind: KindInsert, Values: values, Columns: columns, TableName: tableName}, nil
}

func (p *queryParser) parseDelete() (Query, error) {
	if err := p.requireToken(token.New(token.From)); err != nil {
		return Query{}, err
	}
	tableName, err := p.requireIdentifier()
	if err != nil {
		return Query{}, err
	}
	where, err := p.parseWhereBody()
	if err != nil {
		return Query{}, err
	}
	return Query{Kind: KindDelete, TableName: tableName, WhereBody: where}, nil
}

func (p *queryParser) parseCreate() (Query, error) {
	kindTok, err := p.requireTableOrIndex()
	if err != nil {
		return Query{}, err
	}

	if kindTok.Kind == token.Table {
		tableName, err := p.requireIdentifier()
		if err != nil {
			return Query{}, err
		}
		isParenthesised := p.tryNext(token.New(token.ParOpen))
		cols, err := p.parseColumnsDefinition()
		if err != nil {
			return Query{}, err
		}
		if isParenthesised {
			if err := p.requireToken(token.New(token.ParClose)); err != nil {
				return Query{}, err
			}
		}
		return Query{Kind: KindCreateTable, TableName: tableName, ColumnsDefinition: cols}, nil
	}

	columnName, err := p.requireIdentifier()
	if err != nil {
		return Query{}, err
	}
	if err := p.requireToken(token.New(token.On)); err != nil {
		return Query{}, err
	}
	tableName, err := p.requireIdentifier()
	if err != nil {
		return Query{}, err
	}
	return Query{Kind: KindCreateIndex, ColumnName: columnName, TableName: tableName}, nil
}

func (p *queryParser) parseDrop() (Query, error) {
	kindTok, err := p.requireTableOrIndex()
	if err != nil {
		return Query{}, err
	}

	if kindTok.Kind == token.Table {
		tableName, err := p.requireIdentifier()
		if err != nil {
			return Query{}, err
		}
		return Query{Kind: KindDropTable, TableName: tableName}, nil
	}

	columnName, err := p.requireIdentifier()
	if err != nil {
		return Query{}, err
	}
	if err := p.requireToken(token.New(token.On)); err != nil {
		return Query{}, err
	}
	tableName, err := p.requireIdentifier()
	if err != nil {
		return Query{}, err
	}
	return Query{Kind: KindDropIndex, ColumnName: columnName, TableName: tableName}, nil
}

func (p *queryParser) parseWhereBody() (ast.Node, error) {
	var body []token.Token
	if p.tryNext(token.New(token.Where)) {
		for {
			h, ok := p.head()
			if !ok || h.Kind == token.Semicolon {
				break
			}
			t, _ := p.next()
			body = append(body, t)
		}
	}
	return ast.ParseTree(body)
}

func (p *queryParser) parseQueryBody() ([]token.Token, error) {
	var body []token.Token
	for {
		t, err := p.requireExpressionBodyToken()
		if err != nil {
			return nil, err
		}
		body = append(body, t)
		p.tryNext(token.New(token.Comma))

		h, ok := p.head()
		if !ok || h.Kind == token.From || h.Kind == token.Semicolon {
			break
		}
	}
	return body, nil
}

func (p *queryParser) parseColumnsDefinition() ([]ColumnDef, error) {
	var cols []ColumnDef
	for {
		name, err := p.requireIdentifier()
		if err != nil {
			return nil, err
		}
		dt, err := p.requireDataType()
		if err != nil {
			return nil, err
		}
		cols = append(cols, ColumnDef{Name: name, DataType: dt})
		if !p.tryNext(token.New(token.Comma)) {
			break
		}
	}
	return cols, nil
}
