package parser

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// FROM clause grammar:
//
//	from_list     → table_ref {, table_ref}
//	table_ref     → table_primary {join}
//	table_primary → table_name [[AS] alias]
//	              | ( query ) [[AS] alias]
//	              | ( table_ref )
//	join          → [NATURAL] [INNER | {LEFT|RIGHT|FULL} [OUTER]] JOIN table_primary [join_spec]
//	              | CROSS JOIN table_primary
//	join_spec     → ON expr | USING ( col_list )

// parseFromList parses comma-separated FROM items.
func (p *Parser) parseFromList() []core.TableRef {
	refs := []core.TableRef{p.parseJoinedTable()}
	for p.match(token.COMMA) {
		refs = append(refs, p.parseJoinedTable())
	}
	return refs
}

// parseJoinedTable parses a table primary followed by any number of joins.
func (p *Parser) parseJoinedTable() core.TableRef {
	start := p.token.Pos
	left := p.parseTablePrimary()

	for {
		joinType, natural, ok := p.parseJoinType()
		if !ok {
			return left
		}

		j := &core.JoinExpr{Type: joinType, Natural: natural, Left: left}
		j.Right = p.parseTablePrimary()

		if joinType != core.JoinCross && !natural {
			switch {
			case p.match(token.ON):
				j.On = p.parseExpression()
			case p.match(token.USING):
				j.Using = p.parseParenIdentList()
			default:
				p.unexpected("ON or USING")
			}
		}

		j.Span = p.spanFrom(start)
		left = j
	}
}

// parseJoinType consumes a join keyword sequence ending in JOIN.
func (p *Parser) parseJoinType() (core.JoinType, bool, bool) {
	natural := p.match(token.NATURAL)

	var jt core.JoinType
	switch p.token.Type {
	case token.JOIN:
		jt = core.JoinInner
	case token.INNER:
		p.nextToken()
		jt = core.JoinInner
	case token.LEFT:
		p.nextToken()
		p.match(token.OUTER)
		jt = core.JoinLeft
	case token.RIGHT:
		p.nextToken()
		p.match(token.OUTER)
		jt = core.JoinRight
	case token.FULL:
		p.nextToken()
		p.match(token.OUTER)
		jt = core.JoinFull
	case token.CROSS:
		if natural {
			p.unexpected("JOIN")
		}
		p.nextToken()
		jt = core.JoinCross
	default:
		if natural {
			p.unexpected("JOIN")
		}
		return "", false, false
	}

	p.expect(token.JOIN)
	return jt, natural, true
}

// parseTablePrimary parses a table name, derived table, or parenthesized join.
func (p *Parser) parseTablePrimary() core.TableRef {
	start := p.token.Pos

	if p.check(token.LPAREN) {
		if p.checkPeek(token.SELECT) || p.checkPeek(token.WITH) || p.checkPeek(token.LPAREN) {
			p.nextToken()
			dt := &core.DerivedTable{Query: p.parseQuery()}
			p.expect(token.RPAREN)
			dt.Alias = p.parseAlias()
			dt.Span = p.spanFrom(start)
			return dt
		}
		p.nextToken()
		ref := p.parseJoinedTable()
		p.expect(token.RPAREN)
		return ref
	}

	t := p.parseTableName()
	t.Alias = p.parseAlias()
	t.Span = p.spanFrom(start)
	return t
}
