package format

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

func (p *Printer) formatStmt(stmt core.Stmt) {
	switch s := stmt.(type) {
	case *core.SelectStmt:
		p.formatSelectStmt(s)
	case *core.InsertStmt:
		p.formatInsertStmt(s)
	case *core.UpdateStmt:
		p.formatUpdateStmt(s)
	case *core.DeleteStmt:
		p.formatDeleteStmt(s)
	case *core.CreateStmt:
		p.formatCreateStmt(s)
	case *core.DropStmt:
		p.formatDropStmt(s)
	}
}

// ---------- Queries ----------

func (p *Printer) formatSelectStmt(stmt *core.SelectStmt) {
	if stmt == nil {
		return
	}

	p.formatLeadingComments(&stmt.NodeInfo)

	if stmt.With != nil {
		p.formatWithClause(stmt.With)
	}

	if stmt.Body != nil {
		p.formatQueryBody(stmt.Body)
	}

	if len(stmt.OrderBy) > 0 {
		p.kw(token.ORDER, token.BY)
		p.writeln()
		p.indent()
		p.formatList(len(stmt.OrderBy), func(i int) { p.formatOrderItem(stmt.OrderBy[i]) }, ",", true)
		p.dedent()
		p.writeln()
	}

	p.formatRowLimit(stmt)
	p.formatTrailingComments(&stmt.NodeInfo)
}

// formatRowLimit prints OFFSET and LIMIT, or the FETCH FIRST form for
// dialects without LIMIT.
func (p *Printer) formatRowLimit(stmt *core.SelectStmt) {
	if stmt.Offset != nil {
		p.kw(token.OFFSET)
		p.space()
		p.formatExpr(stmt.Offset)
		if p.dialect.FetchFirst {
			p.space()
			p.kw(token.ROWS)
		}
		p.writeln()
	}

	if stmt.Limit == nil {
		return
	}
	if p.dialect.FetchFirst {
		p.kw(token.FETCH)
		p.space()
		p.keyword("FIRST")
		p.space()
		p.formatExpr(stmt.Limit)
		p.space()
		p.kw(token.ROWS)
		p.space()
		p.keyword("ONLY")
	} else {
		p.kw(token.LIMIT)
		p.space()
		p.formatExpr(stmt.Limit)
	}
	p.writeln()
}

func (p *Printer) formatWithClause(with *core.WithClause) {
	p.kw(token.WITH)
	if with.Recursive {
		p.space()
		p.kw(token.RECURSIVE)
	}
	p.writeln()

	p.indent()
	p.formatList(len(with.CTEs), func(i int) { p.formatCTE(with.CTEs[i]) }, ",", true)
	p.writeln()
	p.dedent()
}

func (p *Printer) formatCTE(cte *core.CTE) {
	p.formatLeadingComments(&cte.NodeInfo)
	p.ident(cte.Name)
	if len(cte.Columns) > 0 {
		p.space()
		p.formatIdentList(cte.Columns)
	}
	p.space()
	p.kw(token.AS)
	p.space()
	p.write("(")
	p.writeln()

	p.indent()
	p.formatSelectStmt(cte.Query)
	p.dedent()

	p.write(")")
	p.formatTrailingComments(&cte.NodeInfo)
}

// setOpPrecedence mirrors the parser: INTERSECT binds tighter.
func setOpPrecedence(op core.SetOpType) int {
	if op == core.SetIntersect {
		return 2
	}
	return 1
}

func (p *Printer) formatQueryBody(body core.QueryBody) {
	switch b := body.(type) {
	case *core.SelectCore:
		p.formatSelectCore(b)
	case *core.SetOperation:
		p.formatSetOperation(b)
	case *core.SelectStmt:
		p.formatSubquery(b)
		p.writeln()
	}
}

func (p *Printer) formatSetOperation(op *core.SetOperation) {
	prec := setOpPrecedence(op.Op)

	p.formatLeadingComments(&op.NodeInfo)
	p.formatSetOperand(op.Left, prec, false)

	p.keyword(string(op.Op))
	if op.All {
		p.space()
		p.kw(token.ALL)
	}
	p.writeln()

	p.formatSetOperand(op.Right, prec, true)
	p.formatTrailingComments(&op.NodeInfo)
}

// formatSetOperand parenthesizes a nested set operation that would otherwise
// regroup when parsed back.
func (p *Printer) formatSetOperand(body core.QueryBody, parentPrec int, right bool) {
	if nested, ok := body.(*core.SetOperation); ok {
		prec := setOpPrecedence(nested.Op)
		if prec < parentPrec || (right && prec == parentPrec) {
			p.write("(")
			p.writeln()
			p.indent()
			p.formatSetOperation(nested)
			p.dedent()
			p.write(")")
			p.writeln()
			return
		}
	}
	p.formatQueryBody(body)
}

func (p *Printer) formatSelectCore(sc *core.SelectCore) {
	if sc == nil {
		return
	}

	p.formatLeadingComments(&sc.NodeInfo)

	// SELECT [DISTINCT]
	p.kw(token.SELECT)
	if sc.Distinct {
		p.space()
		p.kw(token.DISTINCT)
	}
	p.writeln()

	// Columns
	p.indent()
	p.formatList(len(sc.Columns), func(i int) { p.formatSelectItem(sc.Columns[i]) }, ",", true)
	p.writeln()
	p.dedent()

	if len(sc.From) > 0 {
		p.kw(token.FROM)
		p.space()
		p.formatList(len(sc.From), func(i int) { p.formatTableRef(sc.From[i]) }, ",", false)
		p.writeln()
	}

	if sc.Where != nil {
		p.formatPredicateClause(token.WHERE, sc.Where)
	}

	if len(sc.GroupBy) > 0 {
		p.kw(token.GROUP, token.BY)
		p.writeln()
		p.indent()
		p.formatList(len(sc.GroupBy), func(i int) { p.formatExpr(sc.GroupBy[i]) }, ",", true)
		p.dedent()
		p.writeln()
	}

	if sc.Having != nil {
		p.formatPredicateClause(token.HAVING, sc.Having)
	}

	p.formatTrailingComments(&sc.NodeInfo)
}

func (p *Printer) formatPredicateClause(kw token.TokenType, cond core.Expr) {
	p.kw(kw)
	p.writeln()
	p.indent()
	p.formatExpr(cond)
	p.dedent()
	p.writeln()
}

func (p *Printer) formatSelectItem(item *core.SelectItem) {
	p.formatLeadingComments(&item.NodeInfo)
	p.formatExpr(item.Expr)
	if !item.Alias.IsZero() {
		p.space()
		p.kw(token.AS)
		p.space()
		p.ident(item.Alias)
	}
	p.formatTrailingComments(&item.NodeInfo)
}

func (p *Printer) formatOrderItem(item *core.OrderItem) {
	p.formatExpr(item.Expr)
	if item.Desc {
		p.space()
		p.kw(token.DESC)
	}
	switch item.Nulls {
	case core.NullsFirst:
		p.space()
		p.kw(token.NULLS)
		p.space()
		p.keyword("FIRST")
	case core.NullsLast:
		p.space()
		p.kw(token.NULLS)
		p.space()
		p.keyword("LAST")
	}
}

// ---------- FROM ----------

func (p *Printer) formatTableRef(ref core.TableRef) {
	info := ref.Info()
	p.formatLeadingComments(info)

	switch t := ref.(type) {
	case *core.TableName:
		p.formatTableName(t)
		p.formatTableAlias(t.Alias)
	case *core.DerivedTable:
		p.formatSubquery(t.Query)
		p.formatTableAlias(t.Alias)
	case *core.JoinExpr:
		p.formatJoin(t)
	}

	p.formatTrailingComments(info)
}

func (p *Printer) formatTableName(t *core.TableName) {
	p.qualified(t.Parts())
}

// formatTableAlias always writes AS so that "t x" and "t AS x" print alike.
func (p *Printer) formatTableAlias(alias core.Ident) {
	if alias.IsZero() {
		return
	}
	p.space()
	p.kw(token.AS)
	p.space()
	p.ident(alias)
}

func (p *Printer) formatJoin(j *core.JoinExpr) {
	p.formatTableRef(j.Left)
	p.writeln()

	if j.Natural {
		p.kw(token.NATURAL)
		p.space()
	}
	switch j.Type {
	case core.JoinInner:
		p.kw(token.JOIN)
	case core.JoinCross:
		p.kw(token.CROSS, token.JOIN)
	default:
		p.keyword(string(j.Type))
		p.space()
		p.kw(token.JOIN)
	}
	p.space()

	if right, ok := j.Right.(*core.JoinExpr); ok {
		p.write("(")
		p.formatJoin(right)
		p.write(")")
	} else {
		p.formatTableRef(j.Right)
	}

	switch {
	case j.On != nil:
		p.space()
		p.kw(token.ON)
		p.space()
		p.formatExpr(j.On)
	case len(j.Using) > 0:
		p.space()
		p.kw(token.USING)
		p.space()
		p.formatIdentList(j.Using)
	}
}

// formatSubquery prints ( query ) with the query indented.
func (p *Printer) formatSubquery(q *core.SelectStmt) {
	p.write("(")
	p.writeln()
	p.indent()
	p.formatSelectStmt(q)
	p.dedent()
	p.write(")")
}

// ---------- Data modification ----------

func (p *Printer) formatInsertStmt(stmt *core.InsertStmt) {
	p.formatLeadingComments(&stmt.NodeInfo)

	p.kw(token.INSERT, token.INTO)
	p.space()
	p.formatTableName(stmt.Table)
	p.formatTableAlias(stmt.Table.Alias)
	if len(stmt.Columns) > 0 {
		p.space()
		p.formatIdentList(stmt.Columns)
	}
	p.writeln()

	if stmt.Query != nil {
		p.formatSelectStmt(stmt.Query)
	} else {
		p.kw(token.VALUES)
		p.writeln()
		p.indent()
		p.formatList(len(stmt.Rows), func(i int) { p.formatValuesRow(stmt.Rows[i]) }, ",", true)
		p.dedent()
	}

	p.formatTrailingComments(&stmt.NodeInfo)
}

func (p *Printer) formatValuesRow(row *core.ValuesRow) {
	p.write("(")
	p.formatList(len(row.Values), func(i int) { p.formatExpr(row.Values[i]) }, ",", false)
	p.write(")")
}

func (p *Printer) formatUpdateStmt(stmt *core.UpdateStmt) {
	p.formatLeadingComments(&stmt.NodeInfo)

	p.kw(token.UPDATE)
	p.space()
	p.formatTableName(stmt.Table)
	p.formatTableAlias(stmt.Table.Alias)
	p.writeln()

	p.kw(token.SET)
	p.writeln()
	p.indent()
	p.formatList(len(stmt.Set), func(i int) { p.formatAssignment(stmt.Set[i]) }, ",", true)
	p.dedent()
	p.writeln()

	if stmt.Where != nil {
		p.formatPredicateClause(token.WHERE, stmt.Where)
	}

	p.formatTrailingComments(&stmt.NodeInfo)
}

func (p *Printer) formatAssignment(a *core.Assignment) {
	p.ident(a.Column)
	p.space()
	p.kw(token.EQ)
	p.space()
	p.formatExpr(a.Value)
}

func (p *Printer) formatDeleteStmt(stmt *core.DeleteStmt) {
	p.formatLeadingComments(&stmt.NodeInfo)

	p.kw(token.DELETE, token.FROM)
	p.space()
	p.formatTableName(stmt.Table)
	p.formatTableAlias(stmt.Table.Alias)
	p.writeln()

	if stmt.Where != nil {
		p.formatPredicateClause(token.WHERE, stmt.Where)
	}

	p.formatTrailingComments(&stmt.NodeInfo)
}
