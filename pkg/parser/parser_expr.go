package parser

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/spi"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Precedence levels (from spi package):
//
//	PrecedenceNone       = 0
//	PrecedenceOr         = 1
//	PrecedenceAnd        = 2
//	PrecedenceNot        = 3
//	PrecedenceComparison = 4  (=, <>, <, >, <=, >=, IS, IN, BETWEEN, LIKE)
//	PrecedenceAddition   = 5  (+, -, ||)
//	PrecedenceMultiply   = 6  (*, /, %)
//	PrecedenceUnary      = 7  (-, +)
//	PrecedencePostfix    = 8  ((+))

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(spi.PrecedenceNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) core.Expr {
	left := p.parsePrefixExpr()

	for {
		prec := p.infixPrecedence()
		if prec < minPrecedence || prec == spi.PrecedenceNone {
			return left
		}
		left = p.parseInfixExpr(left, prec)
	}
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *Parser) parsePrefixExpr() core.Expr {
	start := p.token.Pos

	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		if p.check(token.EXISTS) {
			e := p.parseExists()
			e.Not = true
			e.Span = p.spanFrom(start)
			return e
		}
		u := &core.UnaryExpr{Op: token.NOT, Expr: p.parseExpressionWithPrecedence(spi.PrecedenceNot)}
		u.Span = p.spanFrom(start)
		return u

	case token.MINUS, token.PLUS:
		op := p.token.Type
		p.nextToken()
		u := &core.UnaryExpr{Op: op, Expr: p.parseExpressionWithPrecedence(spi.PrecedenceUnary)}
		u.Span = p.spanFrom(start)
		return u

	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of the current token as an infix
// or postfix operator, or PrecedenceNone.
func (p *Parser) infixPrecedence() int {
	switch p.token.Type {
	case token.IS, token.IN, token.BETWEEN, token.LIKE:
		return spi.PrecedenceComparison
	case token.NOT:
		// NOT IN, NOT BETWEEN, NOT LIKE
		switch p.peek.Type {
		case token.IN, token.BETWEEN, token.LIKE:
			return spi.PrecedenceComparison
		}
		return spi.PrecedenceNone
	case token.LPAREN:
		if p.isOuterJoinMarker() {
			return spi.PrecedencePostfix
		}
		return spi.PrecedenceNone
	default:
		return spi.Binary(p.token.Type)
	}
}

// isOuterJoinMarker reports whether the next tokens are Oracle's (+).
func (p *Parser) isOuterJoinMarker() bool {
	return p.check(token.LPAREN) && p.checkPeek(token.PLUS) && p.peek2.Type == token.RPAREN
}

// parseInfixExpr parses an infix expression given the left operand and its precedence.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	start := left.Info().Span.Start
	if !start.IsValid() {
		start = p.token.Pos
	}

	var expr core.Expr
	switch p.token.Type {
	case token.LPAREN:
		p.nextToken() // (
		p.nextToken() // +
		p.nextToken() // )
		expr = &core.OuterJoinMarker{Expr: left}

	case token.NOT:
		p.nextToken()
		expr = p.parseNegatablePredicate(left, true)

	case token.IN, token.BETWEEN, token.LIKE:
		expr = p.parseNegatablePredicate(left, false)

	case token.IS:
		p.nextToken()
		not := p.match(token.NOT)
		p.expect(token.NULL)
		expr = &core.IsNullExpr{Expr: left, Not: not}

	default:
		op := p.token.Type
		p.nextToken()
		right := p.parseExpressionWithPrecedence(prec + 1)
		expr = &core.BinaryExpr{Left: left, Op: op, Right: right}
	}

	expr.Info().Span = p.spanFrom(start)
	return expr
}

// parseNegatablePredicate parses IN, BETWEEN or LIKE after an optional NOT.
func (p *Parser) parseNegatablePredicate(left core.Expr, not bool) core.Expr {
	switch p.token.Type {
	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, not)
	case token.BETWEEN:
		p.nextToken()
		low := p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
		p.expect(token.AND)
		high := p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
		return &core.BetweenExpr{Expr: left, Not: not, Low: low, High: high}
	case token.LIKE:
		p.nextToken()
		like := &core.LikeExpr{Expr: left, Not: not}
		like.Pattern = p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
		if p.match(token.ESCAPE) {
			like.Escape = p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
		}
		return like
	default:
		p.unexpected("IN, BETWEEN or LIKE")
		return nil
	}
}

// parseInExpr parses ( expr_list ) or ( query ) after IN.
func (p *Parser) parseInExpr(left core.Expr, not bool) *core.InExpr {
	in := &core.InExpr{Expr: left, Not: not}
	p.expect(token.LPAREN)
	if p.check(token.SELECT) || p.check(token.WITH) {
		in.Query = p.parseQuery()
	} else {
		in.Values = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	return in
}
