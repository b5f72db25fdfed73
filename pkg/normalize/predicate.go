package normalize

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/rewrite"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// predicateRewriter flattens AND/OR chains bottom-up and converts filter
// predicates to conjunctive normal form.
type predicateRewriter struct {
	opts genericOptions
}

func (r predicateRewriter) Walk(core.Node) rewrite.Rewriter { return r }

func (r predicateRewriter) Rewrite(n core.Node) core.Node {
	switch x := n.(type) {
	case *core.BinaryExpr:
		if x.Op == token.AND || x.Op == token.OR {
			return flatten(x)
		}
	case *core.SelectCore:
		where, having := r.filter(x.Where), r.filter(x.Having)
		if where != x.Where || having != x.Having {
			cp := *x
			cp.Where, cp.Having = where, having
			return &cp
		}
	case *core.JoinExpr:
		if on := r.filter(x.On); on != x.On {
			cp := *x
			cp.On = on
			return &cp
		}
	case *core.UpdateStmt:
		if where := r.filter(x.Where); where != x.Where {
			cp := *x
			cp.Where = where
			return &cp
		}
	case *core.DeleteStmt:
		if where := r.filter(x.Where); where != x.Where {
			cp := *x
			cp.Where = where
			return &cp
		}
	}
	return n
}

func (r predicateRewriter) filter(e core.Expr) core.Expr {
	if e == nil || !r.opts.cnf {
		return e
	}
	return toCNF(e, r.opts.maxCNFSize)
}

// flatten rebuilds a chain of one operator as a left-deep tree, so that
// a AND (b AND c) and (a AND b) AND c print the same.
func flatten(b *core.BinaryExpr) core.Expr {
	operands := collect(b, b.Op, nil)
	out := chain(b.Op, operands)
	if ob, ok := out.(*core.BinaryExpr); ok {
		ob.NodeInfo = b.NodeInfo
	}
	return out
}

// collect appends the operands of a chain of op, left to right.
func collect(e core.Expr, op token.TokenType, dst []core.Expr) []core.Expr {
	if b, ok := unparen(e).(*core.BinaryExpr); ok && b.Op == op {
		dst = collect(b.Left, op, dst)
		return collect(b.Right, op, dst)
	}
	return append(dst, e)
}

// chain joins operands with op into a fresh left-deep tree.
func chain(op token.TokenType, operands []core.Expr) core.Expr {
	out := operands[0]
	for _, e := range operands[1:] {
		out = &core.BinaryExpr{Left: out, Op: op, Right: e}
	}
	return out
}

// toCNF distributes OR over AND. The input is returned unchanged when the
// result would exceed maxSize nodes.
func toCNF(e core.Expr, maxSize int) core.Expr {
	c := cnfBuilder{maxSize: maxSize}
	clauses := c.clauses(e)
	if c.overflow {
		return e
	}
	out := chain(token.AND, clauses)
	if rewrite.Count(out) > maxSize {
		return e
	}
	return out
}

type cnfBuilder struct {
	maxSize  int
	overflow bool
}

// clauses returns the conjuncts of e in CNF. No conjunct contains an AND.
func (c *cnfBuilder) clauses(e core.Expr) []core.Expr {
	if c.overflow {
		return nil
	}
	b, ok := unparen(e).(*core.BinaryExpr)
	if !ok {
		return []core.Expr{e}
	}

	switch b.Op {
	case token.AND:
		return append(c.clauses(b.Left), c.clauses(b.Right)...)

	case token.OR:
		left, right := c.clauses(b.Left), c.clauses(b.Right)
		if len(left) == 1 && len(right) == 1 {
			return []core.Expr{e}
		}
		if len(left)*len(right) > c.maxSize {
			c.overflow = true
			return nil
		}
		out := make([]core.Expr, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				disjuncts := collect(r, token.OR, collect(l, token.OR, nil))
				out = append(out, chain(token.OR, disjuncts))
			}
		}
		return out
	}
	return []core.Expr{e}
}
