package parser

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// Data modification grammar:
//
//	insert → INSERT INTO table_name [(col_list)] (VALUES row {, row} | query)
//	update → UPDATE table_name [[AS] alias] SET col = expr {, col = expr} [WHERE expr]
//	delete → DELETE [FROM] table_name [[AS] alias] [WHERE expr]

func (p *Parser) parseInsert() *core.InsertStmt {
	start := p.expect(token.INSERT).Pos
	p.expect(token.INTO)

	stmt := &core.InsertStmt{Table: p.parseTableName()}
	stmt.Table.Alias = p.parseAlias()

	if p.check(token.LPAREN) && !p.checkPeek(token.SELECT) && !p.checkPeek(token.WITH) {
		stmt.Columns = p.parseParenIdentList()
	}

	if p.match(token.VALUES) {
		for {
			rowStart := p.expect(token.LPAREN).Pos
			row := &core.ValuesRow{Values: p.parseExpressionList()}
			p.expect(token.RPAREN)
			row.Span = p.spanFrom(rowStart)
			stmt.Rows = append(stmt.Rows, row)
			if !p.match(token.COMMA) {
				break
			}
		}
	} else {
		stmt.Query = p.parseQuery()
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseUpdate() *core.UpdateStmt {
	start := p.expect(token.UPDATE).Pos

	stmt := &core.UpdateStmt{Table: p.parseTableName()}
	stmt.Table.Alias = p.parseAlias()
	p.expect(token.SET)

	for {
		aStart := p.token.Pos
		a := &core.Assignment{Column: p.parseAssignmentTarget()}
		p.expect(token.EQ)
		a.Value = p.parseExpression()
		a.Span = p.spanFrom(aStart)
		stmt.Set = append(stmt.Set, a)
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseAssignmentTarget parses a possibly alias-qualified column and keeps
// only the column name.
func (p *Parser) parseAssignmentTarget() core.Ident {
	id := p.parseIdent()
	for p.match(token.DOT) {
		id = p.parseIdent()
	}
	return id
}

func (p *Parser) parseDelete() *core.DeleteStmt {
	start := p.expect(token.DELETE).Pos
	p.match(token.FROM)

	stmt := &core.DeleteStmt{Table: p.parseTableName()}
	stmt.Table.Alias = p.parseAlias()

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}
