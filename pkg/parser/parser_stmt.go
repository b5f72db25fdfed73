package parser

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// Query grammar:
//
//	query       → [WITH [RECURSIVE] cte {, cte}] set_expr [ORDER BY order_list] {row_limit}
//	cte         → name [(col_list)] AS ( query )
//	select_list → select_item {, select_item}
//	select_item → * | expr [[AS] alias]
//	order_item  → expr [ASC|DESC] [NULLS {FIRST|LAST}]

// parseQuery parses a complete query.
func (p *Parser) parseQuery() *core.SelectStmt {
	start := p.token.Pos
	stmt := &core.SelectStmt{}

	if p.check(token.WITH) {
		stmt.With = p.parseWith()
	}

	stmt.Body = p.parseSetExpr(setPrecUnion)

	if p.check(token.ORDER) {
		stmt.OrderBy = p.parseOrderBy()
	}
	p.parseRowLimit(stmt)

	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseWith parses WITH [RECURSIVE] cte {, cte}.
func (p *Parser) parseWith() *core.WithClause {
	start := p.expect(token.WITH).Pos
	w := &core.WithClause{Recursive: p.match(token.RECURSIVE)}

	for {
		cteStart := p.token.Pos
		cte := &core.CTE{Name: p.parseIdent()}
		if p.check(token.LPAREN) {
			cte.Columns = p.parseParenIdentList()
		}
		p.expect(token.AS)
		p.expect(token.LPAREN)
		cte.Query = p.parseQuery()
		p.expect(token.RPAREN)
		cte.Span = p.spanFrom(cteStart)
		w.CTEs = append(w.CTEs, cte)

		if !p.match(token.COMMA) {
			break
		}
	}

	w.Span = p.spanFrom(start)
	return w
}

// Set operator binding: INTERSECT binds tighter than UNION and EXCEPT.
const (
	setPrecUnion     = 1
	setPrecIntersect = 2
)

// setOperator classifies the current token as a set operator.
func (p *Parser) setOperator() (core.SetOpType, int, bool) {
	switch {
	case p.check(token.UNION):
		return core.SetUnion, setPrecUnion, true
	case p.check(token.EXCEPT), p.token.Is("MINUS"):
		return core.SetExcept, setPrecUnion, true
	case p.check(token.INTERSECT):
		return core.SetIntersect, setPrecIntersect, true
	}
	return "", 0, false
}

// parseSetExpr parses set operations with precedence climbing.
func (p *Parser) parseSetExpr(minPrec int) core.QueryBody {
	start := p.token.Pos
	left := p.parseQueryPrimary()

	for {
		op, prec, ok := p.setOperator()
		if !ok || prec < minPrec {
			return left
		}
		p.nextToken()

		all := p.match(token.ALL)
		if !all {
			p.match(token.DISTINCT)
		}
		right := p.parseSetExpr(prec + 1)

		setOp := &core.SetOperation{Op: op, All: all, Left: left, Right: right}
		setOp.Span = p.spanFrom(start)
		left = setOp
	}
}

// parseQueryPrimary parses a select core or a parenthesized query.
func (p *Parser) parseQueryPrimary() core.QueryBody {
	if p.match(token.LPAREN) {
		q := p.parseQuery()
		p.expect(token.RPAREN)
		return q
	}
	return p.parseSelectCore()
}

// parseSelectCore parses SELECT ... [FROM] [WHERE] [GROUP BY] [HAVING].
func (p *Parser) parseSelectCore() *core.SelectCore {
	start := p.expect(token.SELECT).Pos
	sc := &core.SelectCore{}

	if p.match(token.DISTINCT) || p.matchWord("UNIQUE") {
		sc.Distinct = true
	} else {
		p.match(token.ALL)
	}

	sc.Columns = p.parseSelectList()

	if p.match(token.FROM) {
		sc.From = p.parseFromList()
	}
	if p.match(token.WHERE) {
		sc.Where = p.parseExpression()
	}
	if p.token.Is("CONNECT") || p.token.Is("START") {
		p.errorf(ErrUnsupported, "hierarchical query (CONNECT BY)")
	}
	if p.match(token.GROUP) {
		p.expect(token.BY)
		sc.GroupBy = p.parseExpressionList()
	}
	if p.match(token.HAVING) {
		sc.Having = p.parseExpression()
	}

	sc.Span = p.spanFrom(start)
	return sc
}

// parseSelectList parses select_item {, select_item}.
func (p *Parser) parseSelectList() []*core.SelectItem {
	items := []*core.SelectItem{p.parseSelectItem()}
	for p.match(token.COMMA) {
		items = append(items, p.parseSelectItem())
	}
	return items
}

// parseSelectItem parses a single select list entry.
func (p *Parser) parseSelectItem() *core.SelectItem {
	start := p.token.Pos
	item := &core.SelectItem{}

	if p.check(token.STAR) {
		p.nextToken()
		item.Expr = &core.StarExpr{}
	} else {
		item.Expr = p.parseExpression()
		item.Alias = p.parseAlias()
	}

	item.Span = p.spanFrom(start)
	return item
}

// parseOrderBy parses ORDER BY order_item {, order_item}.
func (p *Parser) parseOrderBy() []*core.OrderItem {
	p.expect(token.ORDER)
	p.expect(token.BY)

	items := []*core.OrderItem{p.parseOrderItem()}
	for p.match(token.COMMA) {
		items = append(items, p.parseOrderItem())
	}
	return items
}

func (p *Parser) parseOrderItem() *core.OrderItem {
	start := p.token.Pos
	item := &core.OrderItem{Expr: p.parseExpression()}

	if p.match(token.DESC) {
		item.Desc = true
	} else {
		p.match(token.ASC)
	}

	if p.match(token.NULLS) {
		switch {
		case p.matchWord("FIRST"):
			item.Nulls = core.NullsFirst
		case p.matchWord("LAST"):
			item.Nulls = core.NullsLast
		default:
			p.unexpected("FIRST or LAST")
		}
	}

	item.Span = p.spanFrom(start)
	return item
}

// parseRowLimit parses LIMIT, OFFSET and FETCH FIRST in any order.
func (p *Parser) parseRowLimit(stmt *core.SelectStmt) {
	for {
		switch {
		case p.check(token.LIMIT):
			p.nextToken()
			if p.matchWord("ALL") || p.match(token.ALL) {
				continue
			}
			stmt.Limit = p.parseExpression()
		case p.check(token.OFFSET):
			p.nextToken()
			stmt.Offset = p.parseExpression()
			if !p.match(token.ROWS) {
				p.matchWord("ROW")
			}
		case p.check(token.FETCH):
			p.nextToken()
			if !p.matchWord("FIRST") {
				p.expectWord("NEXT")
			}
			if p.check(token.ROWS) || p.token.Is("ROW") {
				stmt.Limit = &core.Literal{Type: core.LiteralNumber, Value: "1"}
			} else {
				stmt.Limit = p.parseExpression()
			}
			if !p.match(token.ROWS) {
				p.expectWord("ROW")
			}
			p.expectWord("ONLY")
		default:
			return
		}
	}
}

// parseExpressionList parses expr {, expr}.
func (p *Parser) parseExpressionList() []core.Expr {
	exprs := []core.Expr{p.parseExpression()}
	for p.match(token.COMMA) {
		exprs = append(exprs, p.parseExpression())
	}
	return exprs
}
