package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// Primary expression grammar:
//
//	primary → literal | ( expr ) | ( query ) | CASE ... END | CAST ( expr AS type )
//	        | EXISTS ( query ) | INTERVAL string unit | DATE string | TIMESTAMP string
//	        | name [. name]* [ .* ] | name ( [DISTINCT] args ) [WITHIN GROUP (...)] [OVER (...)]

// niladicFunctions are written without parentheses.
var niladicFunctions = map[string]bool{
	"CURRENT_DATE":      true,
	"CURRENT_TIME":      true,
	"CURRENT_TIMESTAMP": true,
	"LOCALTIME":         true,
	"LOCALTIMESTAMP":    true,
}

// typedLiteralTypes may prefix a string literal: DATE '2020-01-01'.
var typedLiteralTypes = []string{"DATE", "TIMESTAMP", "TIME"}

// parsePrimary parses a primary expression.
func (p *Parser) parsePrimary() core.Expr {
	start := p.token.Pos
	expr := p.parsePrimaryInner()
	if info := expr.Info(); !info.Span.IsValid() {
		info.Span = p.spanFrom(start)
	}
	return expr
}

func (p *Parser) parsePrimaryInner() core.Expr {
	switch p.token.Type {
	case token.NUMBER:
		lit := &core.Literal{Type: core.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.STRING:
		lit := &core.Literal{Type: core.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.TRUE, token.FALSE:
		lit := &core.Literal{Type: core.LiteralBool, Value: strings.ToUpper(p.token.Literal)}
		p.nextToken()
		return lit

	case token.NULL:
		p.nextToken()
		return &core.Literal{Type: core.LiteralNull, Value: "NULL"}

	case token.LPAREN:
		p.nextToken()
		if p.check(token.SELECT) || p.check(token.WITH) {
			sub := &core.SubqueryExpr{Query: p.parseQuery()}
			p.expect(token.RPAREN)
			return sub
		}
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return &core.ParenExpr{Expr: inner}

	case token.CASE:
		return p.parseCase()

	case token.CAST:
		return p.parseCast()

	case token.EXISTS:
		return p.parseExists()

	case token.INTERVAL:
		return p.parseInterval()

	case token.STAR:
		p.nextToken()
		return &core.StarExpr{}

	case token.LEFT, token.RIGHT:
		// LEFT(s, n) / RIGHT(s, n) string functions
		if p.checkPeek(token.LPAREN) {
			name := strings.ToUpper(p.token.Literal)
			p.nextToken()
			return p.parseFunctionCall(name)
		}
	}

	if p.isIdentLike() {
		return p.parseNameExpr()
	}

	p.unexpected("expression")
	return nil
}

// parseNameExpr parses a column reference, qualified star, typed literal,
// niladic function or function call.
func (p *Parser) parseNameExpr() core.Expr {
	if !p.token.Quoted && p.checkPeek(token.STRING) {
		for _, typ := range typedLiteralTypes {
			if p.token.Is(typ) {
				p.nextToken()
				lit := &core.Literal{Type: core.LiteralString, Value: p.token.Literal}
				lit.Span = token.Span{Start: p.token.Pos, End: p.token.End}
				p.nextToken()
				return &core.CastExpr{Expr: lit, Type: core.DataType{Name: typ}}
			}
		}
	}

	parts := []core.Ident{p.parseIdent()}
	for p.check(token.DOT) {
		p.nextToken()
		if p.check(token.STAR) {
			p.nextToken()
			return &core.StarExpr{Qualifier: parts}
		}
		parts = append(parts, p.parseIdent())
	}

	if p.check(token.LPAREN) && !p.isOuterJoinMarker() {
		names := make([]string, len(parts))
		for i, part := range parts {
			names[i] = part.Name
			if !part.Quoted {
				names[i] = strings.ToUpper(part.Name)
			}
		}
		return p.parseFunctionCall(strings.Join(names, "."))
	}

	if len(parts) == 1 && !parts[0].Quoted {
		if name := strings.ToUpper(parts[0].Name); niladicFunctions[name] {
			return &core.FuncCall{Name: name, NoParens: true}
		}
	}

	return &core.ColumnRef{Qualifier: parts[:len(parts)-1], Name: parts[len(parts)-1]}
}

// parseFunctionCall parses ( [DISTINCT|ALL] args ) and any WITHIN GROUP or
// OVER suffix. The name has already been consumed.
func (p *Parser) parseFunctionCall(name string) *core.FuncCall {
	fn := &core.FuncCall{Name: name}
	p.expect(token.LPAREN)

	switch {
	case p.check(token.STAR):
		p.nextToken()
		fn.Star = true
	case p.check(token.RPAREN):
	default:
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		} else {
			p.match(token.ALL)
		}
		fn.Args = p.parseExpressionList()
	}
	p.expect(token.RPAREN)

	if p.match(token.WITHIN) {
		p.expect(token.GROUP)
		p.expect(token.LPAREN)
		fn.WithinGroup = p.parseOrderBy()
		p.expect(token.RPAREN)
	}

	if p.match(token.OVER) {
		fn.Over = p.parseWindowSpec()
	}
	return fn
}

// parseWindowSpec parses ( [PARTITION BY exprs] [ORDER BY items] [frame] ).
func (p *Parser) parseWindowSpec() *core.WindowSpec {
	start := p.expect(token.LPAREN).Pos
	w := &core.WindowSpec{}

	if p.match(token.PARTITION) {
		p.expect(token.BY)
		w.PartitionBy = p.parseExpressionList()
	}
	if p.check(token.ORDER) {
		w.OrderBy = p.parseOrderBy()
	}
	if p.check(token.ROWS) || p.check(token.RANGE) {
		w.Frame = p.parseFrame()
	}

	p.expect(token.RPAREN)
	w.Span = p.spanFrom(start)
	return w
}

// parseFrame parses {ROWS|RANGE} {bound | BETWEEN bound AND bound}.
func (p *Parser) parseFrame() *core.FrameSpec {
	f := &core.FrameSpec{Type: strings.ToUpper(p.token.Literal)}
	p.nextToken()

	if p.match(token.BETWEEN) {
		f.Start = p.parseFrameBound()
		p.expect(token.AND)
		f.End = p.parseFrameBound()
		return f
	}
	f.Start = p.parseFrameBound()
	return f
}

func (p *Parser) parseFrameBound() core.FrameBound {
	switch {
	case p.match(token.UNBOUNDED):
		if p.match(token.PRECEDING) {
			return core.FrameBound{Kind: "UNBOUNDED PRECEDING"}
		}
		p.expect(token.FOLLOWING)
		return core.FrameBound{Kind: "UNBOUNDED FOLLOWING"}
	case p.matchWord("CURRENT"):
		p.expectWord("ROW")
		return core.FrameBound{Kind: "CURRENT ROW"}
	case p.check(token.NUMBER):
		offset := p.token.Literal
		p.nextToken()
		if p.match(token.PRECEDING) {
			return core.FrameBound{Kind: "PRECEDING", Offset: offset}
		}
		p.expect(token.FOLLOWING)
		return core.FrameBound{Kind: "FOLLOWING", Offset: offset}
	default:
		p.unexpected("frame bound")
		return core.FrameBound{}
	}
}

// parseCase parses CASE [operand] WHEN ... THEN ... [ELSE ...] END.
func (p *Parser) parseCase() *core.CaseExpr {
	p.expect(token.CASE)
	c := &core.CaseExpr{}

	if !p.check(token.WHEN) {
		c.Operand = p.parseExpression()
	}

	for p.check(token.WHEN) {
		start := p.token.Pos
		p.nextToken()
		w := &core.WhenClause{Condition: p.parseExpression()}
		p.expect(token.THEN)
		w.Result = p.parseExpression()
		w.Span = p.spanFrom(start)
		c.Whens = append(c.Whens, w)
	}
	if len(c.Whens) == 0 {
		p.unexpected("WHEN")
	}

	if p.match(token.ELSE) {
		c.Else = p.parseExpression()
	}
	p.expect(token.END)
	return c
}

// parseCast parses CAST ( expr AS type ).
func (p *Parser) parseCast() *core.CastExpr {
	p.expect(token.CAST)
	p.expect(token.LPAREN)
	c := &core.CastExpr{Expr: p.parseExpression()}
	p.expect(token.AS)
	c.Type = p.parseDataType()
	p.expect(token.RPAREN)
	return c
}

// parseExists parses EXISTS ( query ).
func (p *Parser) parseExists() *core.ExistsExpr {
	p.expect(token.EXISTS)
	p.expect(token.LPAREN)
	e := &core.ExistsExpr{Query: p.parseQuery()}
	p.expect(token.RPAREN)
	return e
}

// parseInterval parses INTERVAL value unit [TO unit].
func (p *Parser) parseInterval() *core.IntervalExpr {
	p.expect(token.INTERVAL)
	iv := &core.IntervalExpr{Value: p.parsePrimary()}

	if !p.check(token.IDENT) || p.token.Quoted {
		p.unexpected("interval unit")
	}
	unit := strings.ToUpper(p.token.Literal)
	p.nextToken()
	if p.check(token.LPAREN) {
		// precision, e.g. INTERVAL '5' DAY(3)
		p.nextToken()
		unit += "(" + p.expect(token.NUMBER).Literal + ")"
		p.expect(token.RPAREN)
	}
	if p.matchWord("TO") {
		if !p.check(token.IDENT) {
			p.unexpected("interval unit")
		}
		unit += " TO " + strings.ToUpper(p.token.Literal)
		p.nextToken()
	}
	iv.Unit = unit
	return iv
}

// parseDataType parses a type name with optional parameters.
//
//	data_type → name [VARYING | PRECISION] [( param {, param} )] [WITH [LOCAL] TIME ZONE]
func (p *Parser) parseDataType() core.DataType {
	if !p.isIdentLike() {
		p.unexpected("type name")
	}
	dt := core.DataType{Name: strings.ToUpper(p.token.Literal)}
	p.nextToken()

	switch {
	case (dt.Name == "CHAR" || dt.Name == "CHARACTER") && p.token.Is("VARYING"):
		p.nextToken()
		dt.Name += " VARYING"
	case dt.Name == "DOUBLE" && p.token.Is("PRECISION"):
		p.nextToken()
		dt.Name += " PRECISION"
	}

	if p.match(token.LPAREN) {
		for {
			dt.Params = append(dt.Params, p.parseTypeParam())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	if p.check(token.WITH) && (p.peek.Is("TIME") || p.peek.Is("LOCAL")) {
		p.nextToken()
		suffix := " WITH"
		if p.matchWord("LOCAL") {
			suffix += " LOCAL"
		}
		p.expectWord("TIME")
		p.expectWord("ZONE")
		dt.Name += suffix + " TIME ZONE"
	}
	return dt
}

// parseTypeParam parses one type parameter: a number, * or a nested type
// name. Oracle length semantics (BYTE or CHAR) are dropped.
func (p *Parser) parseTypeParam() string {
	var param string
	switch {
	case p.check(token.NUMBER):
		param = p.token.Literal
		p.nextToken()
	case p.check(token.STAR):
		param = "*"
		p.nextToken()
	case p.check(token.MINUS) && p.checkPeek(token.NUMBER):
		p.nextToken()
		param = "-" + p.token.Literal
		p.nextToken()
	default:
		dt := p.parseDataType()
		param = dt.Name
		if len(dt.Params) > 0 {
			param += "(" + strings.Join(dt.Params, ", ") + ")"
		}
		return param
	}
	if p.token.Is("BYTE") || p.token.Is("CHAR") {
		p.nextToken()
	}
	return param
}
