package ast

import (
	"fmt"

	"github.com/Progenitus1/rust-sql-miniserver/token"
)

// Error is returned by ParseTree. Kind distinguishes the failure for
// callers that want to branch on it without string matching.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func errUnexpectedEnding() error {
	return &Error{Kind: "UnexpectedQueryEnding", Message: "unexpected query ending"}
}

func errUnfinishedParenthesis() error {
	return &Error{Kind: "UnfinishedParenthesis", Message: "unfinished parenthesis"}
}

func errUnexpectedToken(expected string, got token.Token) error {
	return &Error{Kind: "UnexpectedToken", Message: fmt.Sprintf("unexpected query token - expected <%s>, got %#v", expected, got)}
}

// ParseTree builds an expression tree out of a lexed token stream. An empty
// stream yields (nil, nil) -- a WHERE-less query, for instance.
func ParseTree(tokens []token.Token) (Node, error) {
	fixed := FixOperatorPrecedence(tokens)
	p := &treeParser{tokens: fixed}
	return p.parse()
}

type treeParser struct {
	tokens []token.Token
	index  int
}

func (p *treeParser) advance() { p.index++ }

func (p *treeParser) head() (token.Token, bool) {
	if p.index >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.index], true
}

func (p *treeParser) eof() bool { return p.index >= len(p.tokens) }

func (p *treeParser) expectHead() (token.Token, error) {
	t, ok := p.head()
	if !ok {
		return token.Token{}, errUnexpectedEnding()
	}
	return t, nil
}

func (p *treeParser) parse() (Node, error) {
	if len(p.tokens) == 0 {
		return nil, nil
	}

	node, err := p.parseStart(false)
	if err != nil {
		return nil, err
	}
	for !p.eof() {
		node, err = p.parseLeafOrBinary(node)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *treeParser) parseStart(parenthesised bool) (Node, error) {
	head, err := p.expectHead()
	if err != nil {
		return nil, err
	}

	var node Node
	switch head.Kind {
	case token.Minus, token.Not, token.ExclamationMark:
		p.advance()
		node, err = p.parseUnary(head)
		if err != nil {
			return nil, err
		}
	case token.Null, token.StringLiteral, token.NumberLiteral, token.BoolLiteral, token.FloatLiteral, token.Identifier:
		p.advance()
		node, err = p.parseLeafOrBinary(Leaf{Token: head})
		if err != nil {
			return nil, err
		}
	case token.ParOpen:
		p.advance()
		inner, err := p.parseStart(true)
		if err != nil {
			return nil, err
		}
		node, err = p.parseLeafOrBinary(inner)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errUnexpectedToken("identifier, literal, unary operator, (", head)
	}

	if parenthesised {
		h, ok := p.head()
		if !ok || h.Kind != token.ParClose {
			return nil, errUnfinishedParenthesis()
		}
		p.advance()
	}

	return node, nil
}

func (p *treeParser) parseLeafOrBinary(left Node) (Node, error) {
	if p.eof() {
		return left, nil
	}

	head, err := p.expectHead()
	if err != nil {
		return nil, err
	}

	switch head.Kind {
	case token.CompareOp, token.LogicalOp, token.Star, token.Plus, token.Minus, token.Slash, token.Percent:
		p.advance()
		right, err := p.parseStart(false)
		if err != nil {
			return nil, err
		}
		return Binary{Left: left, Op: head, Right: right}, nil
	default:
		return left, nil
	}
}

func (p *treeParser) parseUnary(op token.Token) (Node, error) {
	node, err := p.parseStart(false)
	if err != nil {
		return nil, err
	}
	return Unary{Op: op, Node: node}, nil
}
