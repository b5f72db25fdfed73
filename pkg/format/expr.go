package format

import (
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/spi"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// precedenceAtom is the binding strength of expressions that never need
// parentheses.
const precedenceAtom = spi.PrecedencePostfix + 1

func (p *Printer) formatExpr(e core.Expr) {
	if e == nil {
		return
	}

	info := e.Info()
	p.formatLeadingComments(info)

	switch expr := e.(type) {
	case *core.Literal:
		p.formatLiteral(expr)
	case *core.ColumnRef:
		p.formatColumnRef(expr)
	case *core.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *core.UnaryExpr:
		p.formatUnaryExpr(expr)
	case *core.FuncCall:
		p.formatFuncCall(expr)
	case *core.CaseExpr:
		p.formatCaseExpr(expr)
	case *core.CastExpr:
		p.formatCastExpr(expr)
	case *core.InExpr:
		p.formatInExpr(expr)
	case *core.BetweenExpr:
		p.formatBetweenExpr(expr)
	case *core.IsNullExpr:
		p.formatIsNullExpr(expr)
	case *core.LikeExpr:
		p.formatLikeExpr(expr)
	case *core.ParenExpr:
		p.formatParenExpr(expr)
	case *core.SubqueryExpr:
		p.formatSubquery(expr.Query)
	case *core.ExistsExpr:
		p.formatExistsExpr(expr)
	case *core.StarExpr:
		p.formatStarExpr(expr)
	case *core.IntervalExpr:
		p.formatIntervalExpr(expr)
	case *core.OuterJoinMarker:
		p.formatOperand(expr.Expr, spi.PrecedencePostfix)
		p.write("(+)")
	}

	p.formatTrailingComments(info)
}

// precedence returns how tightly e binds when printed without parentheses.
func precedence(e core.Expr) int {
	switch expr := e.(type) {
	case *core.BinaryExpr:
		return spi.Binary(expr.Op)
	case *core.UnaryExpr:
		if expr.Op == token.NOT {
			return spi.PrecedenceNot
		}
		return spi.PrecedenceUnary
	case *core.InExpr, *core.BetweenExpr, *core.LikeExpr, *core.IsNullExpr:
		return spi.PrecedenceComparison
	case *core.OuterJoinMarker:
		return spi.PrecedencePostfix
	default:
		return precedenceAtom
	}
}

// formatOperand prints e, parenthesized when it binds looser than min.
func (p *Printer) formatOperand(e core.Expr, min int) {
	if precedence(e) < min {
		p.write("(")
		p.formatExpr(e)
		p.write(")")
		return
	}
	p.formatExpr(e)
}

func (p *Printer) formatLiteral(lit *core.Literal) {
	switch lit.Type {
	case core.LiteralString:
		p.write(quoteString(lit.Value))
	case core.LiteralBool:
		if strings.EqualFold(lit.Value, "TRUE") {
			p.kw(token.TRUE)
		} else {
			p.kw(token.FALSE)
		}
	case core.LiteralNull:
		p.kw(token.NULL)
	default:
		p.write(lit.Value)
	}
}

// quoteString renders a string literal with embedded quotes doubled.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (p *Printer) formatColumnRef(col *core.ColumnRef) {
	for _, q := range col.Qualifier {
		p.ident(q)
		p.write(".")
	}
	p.ident(col.Name)
}

func (p *Printer) formatBinaryExpr(expr *core.BinaryExpr) {
	prec := spi.Binary(expr.Op)

	// left-associative: an equal-precedence right operand needs parentheses
	p.formatOperand(expr.Left, prec)
	p.space()
	p.kw(expr.Op)
	p.space()
	p.formatOperand(expr.Right, prec+1)
}

func (p *Printer) formatUnaryExpr(expr *core.UnaryExpr) {
	if expr.Op == token.NOT {
		p.kw(token.NOT)
		p.space()
		p.formatOperand(expr.Expr, spi.PrecedenceNot)
		return
	}

	p.kw(expr.Op)
	if inner, ok := expr.Expr.(*core.UnaryExpr); ok && inner.Op != token.NOT {
		// "- -x" would print as a line comment
		p.write("(")
		p.formatExpr(inner)
		p.write(")")
		return
	}
	p.formatOperand(expr.Expr, spi.PrecedenceUnary)
}

func (p *Printer) formatFuncCall(fn *core.FuncCall) {
	p.write(fn.Name)
	if fn.NoParens {
		return
	}
	p.write("(")

	if fn.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}

	if fn.Star {
		p.write("*")
	} else {
		p.formatList(len(fn.Args), func(i int) { p.formatExpr(fn.Args[i]) }, ",", false)
	}

	p.write(")")

	if len(fn.WithinGroup) > 0 {
		p.space()
		p.kw(token.WITHIN, token.GROUP)
		p.space()
		p.write("(")
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(fn.WithinGroup), func(i int) { p.formatOrderItem(fn.WithinGroup[i]) }, ",", false)
		p.write(")")
	}

	if fn.Over != nil {
		p.space()
		p.kw(token.OVER)
		p.space()
		p.formatWindowSpec(fn.Over)
	}
}

// formatWindowSpec prints ( [PARTITION BY ...] [ORDER BY ...] [frame] ) on
// one line.
func (p *Printer) formatWindowSpec(w *core.WindowSpec) {
	p.write("(")

	if len(w.PartitionBy) > 0 {
		p.kw(token.PARTITION, token.BY)
		p.space()
		p.formatList(len(w.PartitionBy), func(i int) { p.formatExpr(w.PartitionBy[i]) }, ",", false)
	}

	if len(w.OrderBy) > 0 {
		p.space()
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(w.OrderBy), func(i int) { p.formatOrderItem(w.OrderBy[i]) }, ",", false)
	}

	if w.Frame != nil {
		p.space()
		p.formatFrameSpec(w.Frame)
	}

	p.write(")")
}

func (p *Printer) formatFrameSpec(f *core.FrameSpec) {
	p.keyword(f.Type)
	p.space()
	if f.End.Kind == "" {
		p.formatFrameBound(f.Start)
		return
	}
	p.kw(token.BETWEEN)
	p.space()
	p.formatFrameBound(f.Start)
	p.space()
	p.kw(token.AND)
	p.space()
	p.formatFrameBound(f.End)
}

func (p *Printer) formatFrameBound(b core.FrameBound) {
	if b.Offset != "" {
		p.write(b.Offset)
		p.space()
	}
	p.keyword(b.Kind)
}

func (p *Printer) formatCaseExpr(c *core.CaseExpr) {
	p.kw(token.CASE)

	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}

	p.writeln()
	p.indent()

	for _, w := range c.Whens {
		p.formatWhenClause(w)
		p.writeln()
	}

	if c.Else != nil {
		p.kw(token.ELSE)
		p.space()
		p.formatExpr(c.Else)
		p.writeln()
	}

	p.dedent()
	p.kw(token.END)
}

func (p *Printer) formatWhenClause(w *core.WhenClause) {
	p.kw(token.WHEN)
	p.space()
	p.formatExpr(w.Condition)
	p.space()
	p.kw(token.THEN)
	p.space()
	p.formatExpr(w.Result)
}

func (p *Printer) formatCastExpr(c *core.CastExpr) {
	p.kw(token.CAST)
	p.write("(")
	p.formatExpr(c.Expr)
	p.space()
	p.kw(token.AS)
	p.space()
	p.formatDataType(c.Type)
	p.write(")")
}

// formatPredicateSubject prints the left operand of IN, BETWEEN, LIKE and IS.
func (p *Printer) formatPredicateSubject(e core.Expr) {
	p.formatOperand(e, spi.PrecedenceComparison+1)
}

func (p *Printer) formatNot(not bool) {
	if not {
		p.space()
		p.kw(token.NOT)
	}
}

func (p *Printer) formatInExpr(in *core.InExpr) {
	p.formatPredicateSubject(in.Expr)
	p.formatNot(in.Not)
	p.space()
	p.kw(token.IN)
	p.space()

	if in.Query != nil {
		p.formatSubquery(in.Query)
		return
	}
	p.write("(")
	p.formatList(len(in.Values), func(i int) { p.formatExpr(in.Values[i]) }, ",", false)
	p.write(")")
}

func (p *Printer) formatBetweenExpr(b *core.BetweenExpr) {
	p.formatPredicateSubject(b.Expr)
	p.formatNot(b.Not)
	p.space()
	p.kw(token.BETWEEN)
	p.space()
	p.formatOperand(b.Low, spi.PrecedenceAddition)
	p.space()
	p.kw(token.AND)
	p.space()
	p.formatOperand(b.High, spi.PrecedenceAddition)
}

func (p *Printer) formatIsNullExpr(is *core.IsNullExpr) {
	p.formatPredicateSubject(is.Expr)
	p.space()
	p.kw(token.IS)
	p.formatNot(is.Not)
	p.space()
	p.kw(token.NULL)
}

func (p *Printer) formatLikeExpr(like *core.LikeExpr) {
	p.formatPredicateSubject(like.Expr)
	p.formatNot(like.Not)
	p.space()
	p.kw(token.LIKE)
	p.space()
	p.formatOperand(like.Pattern, spi.PrecedenceAddition)
	if like.Escape != nil {
		p.space()
		p.kw(token.ESCAPE)
		p.space()
		p.formatOperand(like.Escape, spi.PrecedenceAddition)
	}
}

func (p *Printer) formatParenExpr(paren *core.ParenExpr) {
	p.write("(")
	p.formatExpr(paren.Expr)
	p.write(")")
}

func (p *Printer) formatExistsExpr(ex *core.ExistsExpr) {
	if ex.Not {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(token.EXISTS)
	p.space()
	p.formatSubquery(ex.Query)
}

func (p *Printer) formatStarExpr(star *core.StarExpr) {
	for _, q := range star.Qualifier {
		p.ident(q)
		p.write(".")
	}
	p.write("*")
}

func (p *Printer) formatIntervalExpr(iv *core.IntervalExpr) {
	p.kw(token.INTERVAL)
	p.space()
	p.formatExpr(iv.Value)
	p.space()
	p.keyword(iv.Unit)
}
