// Package format serializes syntax trees back to SQL text.
//
// The default output is a single line with upper-case keywords, identifiers
// quoted exactly when their Quoted flag is set, and parentheses placed from
// operator precedence. Two trees that print identically are considered
// equivalent by the comparator, so the output must be deterministic.
// WithPretty selects an indented multi-line layout for display.
package format

import (
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
)

type options struct {
	pretty bool
}

// Option configures Format.
type Option func(*options)

// WithPretty selects indented multi-line output.
func WithPretty() Option {
	return func(o *options) {
		o.pretty = true
	}
}

// Format prints a node in dialect d.
func Format(n core.Node, d *dialect.Dialect, opts ...Option) string {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	p := newPrinter(d, o.pretty)
	p.formatNode(n)
	return p.String()
}

// Script prints statements separated by ";" and a blank line.
func Script(stmts []core.Stmt, d *dialect.Dialect, opts ...Option) string {
	parts := make([]string, len(stmts))
	for i, stmt := range stmts {
		parts[i] = strings.TrimRight(Format(stmt, d, opts...), "\n")
	}
	return strings.Join(parts, ";\n\n")
}

func (p *Printer) formatNode(n core.Node) {
	switch node := n.(type) {
	case nil:
	case core.Stmt:
		p.formatStmt(node)
	case core.TableRef:
		p.formatTableRef(node)
	case core.Expr:
		p.formatExpr(node)
	case *core.SelectCore:
		p.formatSelectCore(node)
	case *core.SetOperation:
		p.formatQueryBody(node)
	case *core.SelectItem:
		p.formatSelectItem(node)
	case *core.OrderItem:
		p.formatOrderItem(node)
	case *core.WithClause:
		p.formatWithClause(node)
	case *core.CTE:
		p.formatCTE(node)
	case *core.ValuesRow:
		p.formatValuesRow(node)
	case *core.Assignment:
		p.formatAssignment(node)
	case *core.ColumnDef:
		p.formatColumnDef(node)
	case *core.WindowSpec:
		p.formatWindowSpec(node)
	case *core.WhenClause:
		p.formatWhenClause(node)
	}
}
