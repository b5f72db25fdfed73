package parser_test

import (
	"testing"

	"github.com/leapstack-labs/sqlequiv/pkg/parser"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(toks []token.Token) []token.TokenType {
	types := make([]token.TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{"comparison", "a <= b", []token.TokenType{token.IDENT, token.LE, token.IDENT, token.EOF}},
		{"angle not equal", "a <> b", []token.TokenType{token.IDENT, token.NE, token.IDENT, token.EOF}},
		{"bang not equal", "a != b", []token.TokenType{token.IDENT, token.NE, token.IDENT, token.EOF}},
		{"caret not equal", "a ^= b", []token.TokenType{token.IDENT, token.NE, token.IDENT, token.EOF}},
		{"concat", "a || b", []token.TokenType{token.IDENT, token.DPIPE, token.IDENT, token.EOF}},
		{"outer join marker", "a(+)", []token.TokenType{token.IDENT, token.LPAREN, token.PLUS, token.RPAREN, token.EOF}},
		{"leading dot number", ".5", []token.TokenType{token.NUMBER, token.EOF}},
		{"qualified name", "s.t", []token.TokenType{token.IDENT, token.DOT, token.IDENT, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenTypes(parser.Tokenize(tt.input)))
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	toks := parser.Tokenize(`'it''s' "Mixed""Case" emp$no 1.5e3 x#1`)
	require.Len(t, toks, 6)

	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "it's", toks[0].Literal)

	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, `Mixed"Case`, toks[1].Literal)
	assert.True(t, toks[1].Quoted)

	assert.Equal(t, "emp$no", toks[2].Literal)
	assert.False(t, toks[2].Quoted)

	assert.Equal(t, token.NUMBER, toks[3].Type)
	assert.Equal(t, "1.5e3", toks[3].Literal)

	assert.Equal(t, "x#1", toks[4].Literal)
}

func TestLexerPositions(t *testing.T) {
	toks := parser.Tokenize("SELECT a\n  FROM t")
	require.Len(t, toks, 5)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 7, Offset: 6}, toks[0].End)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 11}, toks[2].Pos)
	assert.Equal(t, 2, toks[3].Pos.Line)
}

func TestLexerComments(t *testing.T) {
	l := parser.NewLexer("SELECT 1 -- one\n/* two\n lines */ FROM dual")
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		assert.NotEqual(t, token.ILLEGAL, tok.Type)
	}

	require.Len(t, l.Comments, 2)
	assert.Equal(t, token.LineComment, l.Comments[0].Kind)
	assert.Equal(t, "one", l.Comments[0].Body())
	assert.Equal(t, 1, l.Comments[0].Span.End.Line)

	assert.Equal(t, token.BlockComment, l.Comments[1].Kind)
	assert.Equal(t, "two\n lines", l.Comments[1].Body())
	assert.Equal(t, 2, l.Comments[1].Span.Start.Line)
	assert.Equal(t, 3, l.Comments[1].Span.End.Line)
}

func TestLexerIllegal(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated string", "'abc"},
		{"unterminated identifier", `"abc`},
		{"stray character", "a ? b"},
		{"lone pipe", "a | b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tokenTypes(parser.Tokenize(tt.input)), token.ILLEGAL)
		})
	}
}
