package zpl

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// ZPL has no recursive grammar: a document is a flat stream of commands,
// each introduced by ^ or ~. Two lexer rules are enough — one matching a
// full command token, one matching leading material before the first
// introducer, which is discarded.
var (
	zplLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Command", Pattern: `[\^~][^\^~]*`},
		{Name: "Leading", Pattern: `[^\^~]+`},
	})

	commandTokenType = mustTokenType("Command")
)

// Tokenize slices a raw ZPL document into command tokens. Vertical
// whitespace is not part of the grammar and is stripped first; the
// introducer character is kept as the first character of each token.
func Tokenize(src string) []string {
	cleaned := stripVertical(src)
	lex, err := zplLexer.LexString("", cleaned)
	if err != nil {
		return nil
	}

	var tokens []string
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			break
		}
		if tok.Type == commandTokenType {
			tokens = append(tokens, tok.Value)
		}
	}
	return tokens
}

func stripVertical(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\v', '\f', '\r':
			return -1
		}
		return r
	}, s)
}

func mustTokenType(name string) lexer.TokenType {
	tt, ok := zplLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
