// Package parser turns dialect-specific SQL text into core syntax trees.
//
// # Usage
//
//	d, _ := dialect.Get("oracle")
//	stmts, err := parser.Parse("SELECT a FROM t; SELECT b FROM u", d)
//
// Parse returns one statement per ;-separated input statement. Comments are
// collected by the lexer and attached to the nearest statement, select core,
// select item or table reference (see Decorate).
//
// # Grammar Overview
//
// The parser is recursive descent for statements and Pratt (precedence
// climbing) for expressions:
//
//	script        → statement { (";" | "/") statement } [";"]
//	statement     → query | insert | update | delete | create | drop
//	query         → [WITH cte_list] set_expr [ORDER BY order_list] [row_limit]
//	set_expr      → query_term { (UNION|EXCEPT|MINUS) [ALL|DISTINCT] query_term }
//	query_term    → query_primary { INTERSECT [ALL|DISTINCT] query_primary }
//	query_primary → select_core | "(" query ")"
//	select_core   → SELECT [DISTINCT|ALL] select_list [FROM from_list]
//	                [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	row_limit     → LIMIT n | OFFSET n [ROWS] | FETCH {FIRST|NEXT} n {ROW|ROWS} ONLY
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// Parser parses SQL into an AST.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	prevEnd token.Position
	dialect *dialect.Dialect // required
}

// newParser creates a new parser for the given SQL input.
func newParser(sql string, d *dialect.Dialect) *Parser {
	p := &Parser{
		lexer:   NewLexer(sql),
		dialect: d,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.peek = p.lexer.NextToken()
	p.peek2 = p.lexer.NextToken()
	p.nextToken()
	return p
}

// Parse parses a script into one statement per input statement.
func Parse(sql string, d *dialect.Dialect) (stmts []core.Stmt, err error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	defer recoverError(&err)

	p := newParser(sql, d)
	stmts = p.parseScript()
	Decorate(stmts, p.lexer.Comments)
	return stmts, nil
}

// ParseTableRef parses a [catalog.][schema.]name reference. Surrounding
// whitespace is ignored; anything after the name is an error.
func ParseTableRef(text string, d *dialect.Dialect) (ref *core.TableName, err error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	defer recoverError(&err)

	p := newParser(strings.TrimSpace(text), d)
	ref = p.parseTableName()
	if !p.check(token.EOF) {
		p.unexpected("end of table name")
	}
	return ref, nil
}

// ParseExpr parses a single scalar expression.
func ParseExpr(text string, d *dialect.Dialect) (expr core.Expr, err error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	defer recoverError(&err)

	p := newParser(text, d)
	expr = p.parseExpression()
	if !p.check(token.EOF) {
		p.unexpected("end of expression")
	}
	return expr, nil
}

func recoverError(err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*err = b.err
	}
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.prevEnd = p.token.End
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
	if p.token.Type == token.ILLEGAL {
		p.illegal()
	}
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// matchWord consumes the current token if it is the soft keyword word.
func (p *Parser) matchWord(word string) bool {
	if p.token.Is(word) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise fails.
func (p *Parser) expect(t token.TokenType) token.Token {
	tok := p.token
	if !p.check(t) {
		p.unexpected(t.String())
	}
	p.nextToken()
	return tok
}

// expectWord consumes the soft keyword word or fails.
func (p *Parser) expectWord(word string) {
	if !p.matchWord(word) {
		p.unexpected(word)
	}
}

// errorf aborts parsing with an error at the current token.
func (p *Parser) errorf(format string, args ...any) {
	p.errorAt(p.token.Pos, fmt.Sprintf(format, args...))
}

func (p *Parser) errorAt(pos token.Position, msg string) {
	panic(bailout{err: &ParseError{Pos: pos, Message: msg}})
}

// unexpected aborts parsing reporting the current token and what was expected.
func (p *Parser) unexpected(expected string) {
	p.errorf(ErrUnexpectedToken, describe(p.token), expected)
}

func (p *Parser) illegal() {
	lit := p.token.Literal
	switch {
	case strings.HasPrefix(lit, "'"):
		p.errorf(ErrUnterminatedString)
	case strings.HasPrefix(lit, `"`):
		p.errorf(ErrUnterminatedIdent)
	default:
		p.errorf(ErrUnexpectedCharacter, lit)
	}
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.NUMBER:
		return fmt.Sprintf("%q", tok.Literal)
	case token.STRING:
		return fmt.Sprintf("'%s'", tok.Literal)
	default:
		return tok.Type.String()
	}
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.prevEnd}
}

// sourceFrom returns the raw input text from offset start to the end of the
// last consumed token.
func (p *Parser) sourceFrom(start int) string {
	end := p.prevEnd.Offset
	if end < start {
		return ""
	}
	return p.lexer.input[start:end]
}

// ---------- Script ----------

// parseScript parses statements until EOF.
func (p *Parser) parseScript() []core.Stmt {
	var stmts []core.Stmt
	for {
		for p.isSeparator() {
			p.nextToken()
		}
		if p.check(token.EOF) {
			return stmts
		}
		stmts = append(stmts, p.parseStatement())
		if !p.isSeparator() && !p.check(token.EOF) {
			p.unexpected("; or end of input")
		}
	}
}

// isSeparator reports whether the current token ends a statement. A lone
// slash is the SQL*Plus terminator in dialects that accept it.
func (p *Parser) isSeparator() bool {
	if p.check(token.SEMICOLON) {
		return true
	}
	return p.check(token.SLASH) && p.dialect.SlashTerminator
}

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() core.Stmt {
	switch p.token.Type {
	case token.SELECT, token.WITH, token.LPAREN:
		return p.parseQuery()
	case token.INSERT:
		return p.parseInsert()
	case token.UPDATE:
		return p.parseUpdate()
	case token.DELETE:
		return p.parseDelete()
	case token.CREATE:
		return p.parseCreate()
	case token.DROP:
		return p.parseDrop()
	default:
		if p.token.Is("BEGIN") || p.token.Is("DECLARE") {
			p.errorf(ErrUnsupported, "procedural block")
		}
		p.unexpected("statement")
		return nil
	}
}

// ---------- Identifier Helpers ----------

// softKeywords are reserved tokens that may still be used as identifiers.
var softKeywords = map[token.TokenType]bool{
	token.FOLLOWING: true,
	token.PRECEDING: true,
	token.UNBOUNDED: true,
	token.NULLS:     true,
	token.RANGE:     true,
	token.ROWS:      true,
	token.VIEW:      true,
	token.ESCAPE:    true,
	token.RECURSIVE: true,
	token.WITHIN:    true,
	token.PARTITION: true,
}

// nonAliasWords are unreserved words that start a clause where a bare
// alias could otherwise appear.
var nonAliasWords = []string{
	"MINUS", "CONNECT", "START", "TABLESPACE", "PCTFREE", "PCTUSED", "INITRANS",
	"STORAGE", "LOGGING", "NOLOGGING", "COMPRESS", "NOCOMPRESS", "CACHE", "NOCACHE",
	"PARALLEL", "NOPARALLEL", "COMMENT", "RETURNING", "PIVOT", "UNPIVOT", "MODEL",
	"WINDOW", "QUALIFY", "SAMPLE", "TABLESAMPLE", "LATERAL",
}

// isIdentLike reports whether the current token can be read as an identifier.
func (p *Parser) isIdentLike() bool {
	return p.check(token.IDENT) || softKeywords[p.token.Type]
}

// parseIdent consumes an identifier.
func (p *Parser) parseIdent() core.Ident {
	if !p.isIdentLike() {
		p.unexpected("identifier")
	}
	id := core.Ident{Name: p.token.Literal, Quoted: p.token.Quoted}
	p.nextToken()
	return id
}

// parseAlias parses [AS] alias. A bare alias must be a plain identifier that
// does not start a clause.
func (p *Parser) parseAlias() core.Ident {
	if p.match(token.AS) {
		return p.parseIdent()
	}
	if !p.check(token.IDENT) {
		return core.Ident{}
	}
	for _, w := range nonAliasWords {
		if p.token.Is(w) {
			return core.Ident{}
		}
	}
	return p.parseIdent()
}

// parseIdentList parses ident {, ident}.
func (p *Parser) parseIdentList() []core.Ident {
	ids := []core.Ident{p.parseIdent()}
	for p.match(token.COMMA) {
		ids = append(ids, p.parseIdent())
	}
	return ids
}

// parseParenIdentList parses ( ident {, ident} ).
func (p *Parser) parseParenIdentList() []core.Ident {
	p.expect(token.LPAREN)
	ids := p.parseIdentList()
	p.expect(token.RPAREN)
	return ids
}

// parseTableName parses [catalog.][schema.]name without an alias.
func (p *Parser) parseTableName() *core.TableName {
	start := p.token.Pos
	parts := []core.Ident{p.parseIdent()}
	for p.check(token.DOT) {
		p.nextToken()
		parts = append(parts, p.parseIdent())
	}

	t := &core.TableName{}
	switch len(parts) {
	case 1:
		t.Name = parts[0]
	case 2:
		t.Schema, t.Name = parts[0], parts[1]
	case 3:
		t.Catalog, t.Schema, t.Name = parts[0], parts[1], parts[2]
	default:
		p.errorAt(start, fmt.Sprintf(ErrTooManyNameParts, p.sourceFrom(start.Offset)))
	}
	t.Span = p.spanFrom(start)
	return t
}
