package ast

import "github.com/Progenitus1/rust-sql-miniserver/token"

// FixOperatorPrecedence rewrites a flat token stream into one with explicit
// parentheses around each precedence tier, so a single left-to-right scan
// builds the correctly associated tree. See the "alternative methods"
// section of https://en.wikipedia.org/wiki/Operator-precedence_parser: this
// wraps every tier in its own parenthesis nesting rather than tracking
// precedence during the descent.
//
// Tier 4 (outermost): and, or, xor
// Tier 3: = != > < >= <= <>
// Tier 2: + -
// Tier 1 (innermost): * / %
func FixOperatorPrecedence(tokens []token.Token) []token.Token {
	if len(tokens) <= 2 {
		return tokens
	}

	result := make([]token.Token, 0, len(tokens)*2)
	parOpen := token.New(token.ParOpen)
	parClose := token.New(token.ParClose)

	push := func(n int, t token.Token) {
		for i := 0; i < n; i++ {
			result = append(result, t)
		}
	}

	push(4, parOpen)

	for _, tok := range tokens {
		switch tok.Kind {
		case token.LogicalOp:
			push(4, parClose)
			result = append(result, tok)
			push(4, parOpen)
		case token.CompareOp:
			push(3, parClose)
			result = append(result, tok)
			push(3, parOpen)
		case token.Plus, token.Minus:
			if len(result) > 0 && result[len(result)-1].Kind == token.ParOpen {
				result = append(result, tok)
				continue
			}
			push(2, parClose)
			result = append(result, tok)
			push(2, parOpen)
		case token.Star, token.Slash, token.Percent:
			result = append(result, parClose)
			result = append(result, tok)
			result = append(result, parOpen)
		case token.ParOpen:
			result = append(result, tok)
			push(4, parOpen)
		case token.ParClose:
			push(4, parClose)
			result = append(result, tok)
		default:
			result = append(result, tok)
		}
	}

	push(4, parClose)

	return result
}
