package lexer

import (
	"strconv"
	"strings"

	"github.com/Progenitus1/rust-sql-miniserver/token"
)

func invalidIdentifier(ch rune, text string) error {
	return &Error{Kind: "InvalidIdentifier", Message: "invalid char " + strconv.QuoteRune(ch) + " in identifier " + strconv.Quote(text)}
}

var keywords = map[string]token.Kind{
	"select": token.Select,
	"insert": token.Insert,
	"delete": token.Delete,
	"create": token.Create,
	"drop":   token.Drop,
	"table":  token.Table,
	"index":  token.Index,
	"where":  token.Where,
	"from":   token.From,
	"into":   token.Into,
	"on":     token.On,
	"values": token.Values,
	"null":   token.Null,
}

var dataTypes = map[string]bool{
	"int": true, "varchar": true, "float": true, "boolean": true,
}

var compareOps = map[string]bool{
	"=": true, "!=": true, ">": true, "<": true, "<=": true, ">=": true, "<>": true,
}

var logicalOps = map[string]bool{
	"and": true, "or": true, "xor": true,
}

var punctuation = map[string]token.Kind{
	"(": token.ParOpen,
	")": token.ParClose,
	"*": token.Star,
	"+": token.Plus,
	"-": token.Minus,
	"/": token.Slash,
	"%": token.Percent,
	",": token.Comma,
	";": token.Semicolon,
	"!": token.ExclamationMark,
}

// Lex tokenizes input and classifies each lexeme: keywords are matched
// case-insensitively, literal bodies are preserved, and anything left over
// falls through int → float → identifier parsing.
func Lex(input string) ([]token.Token, error) {
	lexemes, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	tokens := make([]token.Token, 0, len(lexemes))
	for _, lexeme := range lexemes {
		lower := strings.ToLower(lexeme)

		switch {
		case lower == "true":
			tokens = append(tokens, token.NewBool(true))
			continue
		case lower == "false":
			tokens = append(tokens, token.NewBool(false))
			continue
		case lower == "not":
			tokens = append(tokens, token.New(token.Not))
			continue
		}

		if kind, ok := keywords[lower]; ok {
			tokens = append(tokens, token.New(kind))
			continue
		}
		if dataTypes[lower] {
			tokens = append(tokens, token.NewStr(token.DataType, lower))
			continue
		}
		if logicalOps[lower] {
			tokens = append(tokens, token.NewStr(token.LogicalOp, lower))
			continue
		}
		if compareOps[lexeme] {
			tokens = append(tokens, token.NewStr(token.CompareOp, lexeme))
			continue
		}
		if kind, ok := punctuation[lexeme]; ok {
			tokens = append(tokens, token.New(kind))
			continue
		}

		if isQuoted(lexeme) {
			tokens = append(tokens, token.NewStr(token.StringLiteral, lexeme[1:len(lexeme)-1]))
			continue
		}

		if n, ok := parseInt32(lower); ok {
			tokens = append(tokens, token.NewInt(n))
			continue
		}
		if f, ok := parseFloat64(lower); ok {
			tokens = append(tokens, token.NewFloat(f))
			continue
		}

		for _, ch := range lexeme {
			if !isIdentChar(ch) {
				return nil, invalidIdentifier(ch, lexeme)
			}
		}
		tokens = append(tokens, token.NewStr(token.Identifier, lexeme))
	}

	return tokens, nil
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')
}

func parseInt32(s string) (int32, bool) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

func parseFloat64(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isIdentChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') ||
		ch == '.' || ch == '_' || ch == '-'
}
