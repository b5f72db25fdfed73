package normalize

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
)

// Rule is a single canonicalization rewrite.
//
// Match reports whether the rule applies to n. parent is the nearest
// ancestor that is not a ParenExpr, or nil at the root. Apply returns the
// replacement for a matched node and may return a node of another kind.
// Both must be pure.
type Rule struct {
	Name        string
	Description string
	Match       func(n, parent core.Node) bool
	Apply       func(n core.Node) core.Node
}

// Rule names.
const (
	RuleCastDateParse    = "cast-date-parse"
	RuleDateConvert      = "date-convert"
	RuleUnwrapDateParse  = "unwrap-date-parse"
	RuleCreateProperties = "create-properties"
	RuleRedundantCast    = "redundant-cast"
)

// DefaultRules returns the built-in rules for d in priority order. The
// unwrap-date-parse rule is included only when unwrapDateParse is set.
func DefaultRules(d *dialect.Dialect, unwrapDateParse bool) []Rule {
	rules := []Rule{CastDateParse(d), DateConvert(d)}
	if unwrapDateParse {
		rules = append(rules, UnwrapDateParse(d))
	}
	return append(rules, CreateProperties(), RedundantCast())
}

// CastDateParse collapses CAST(DATE_PARSE(x, fmt) AS DATE) and
// CAST(TO_DATE(x, fmt) AS DATE) to CAST(x AS DATE).
func CastDateParse(d *dialect.Dialect) Rule {
	inner := func(n core.Node) *core.FuncCall {
		cast, ok := n.(*core.CastExpr)
		if !ok || cast.Type.Name != "DATE" || len(cast.Type.Params) > 0 {
			return nil
		}
		fn, ok := unparen(cast.Expr).(*core.FuncCall)
		if !ok || !isPlainCall(fn, 1, 2) {
			return nil
		}
		if !d.IsDateParse(fn.Name) && !d.IsDateConvert(fn.Name) {
			return nil
		}
		return fn
	}
	return Rule{
		Name:        RuleCastDateParse,
		Description: "CAST(date_parse(x, fmt) AS DATE) becomes CAST(x AS DATE)",
		Match: func(n, _ core.Node) bool {
			return inner(n) != nil
		},
		Apply: func(n core.Node) core.Node {
			cast := n.(*core.CastExpr)
			cp := *cast
			cp.Expr = inner(n).Args[0]
			return &cp
		},
	}
}

// DateConvert rewrites a date conversion call that is not itself the
// operand of a CAST, TO_DATE(x[, fmt]), to CAST(x AS DATE).
func DateConvert(d *dialect.Dialect) Rule {
	return Rule{
		Name:        RuleDateConvert,
		Description: "to_date(x[, fmt]) becomes CAST(x AS DATE)",
		Match: func(n, parent core.Node) bool {
			fn, ok := n.(*core.FuncCall)
			if !ok || !isPlainCall(fn, 1, 2) || !d.IsDateConvert(fn.Name) {
				return false
			}
			return !isCast(parent)
		},
		Apply: func(n core.Node) core.Node {
			fn := n.(*core.FuncCall)
			return &core.CastExpr{
				NodeInfo: fn.NodeInfo,
				Expr:     fn.Args[0],
				Type:     core.DataType{Name: "DATE"},
			}
		},
	}
}

// UnwrapDateParse replaces a bare DATE_PARSE(x, fmt) that is not the operand
// of a CAST with x.
func UnwrapDateParse(d *dialect.Dialect) Rule {
	return Rule{
		Name:        RuleUnwrapDateParse,
		Description: "date_parse(x, fmt) outside a CAST becomes x",
		Match: func(n, parent core.Node) bool {
			fn, ok := n.(*core.FuncCall)
			if !ok || !isPlainCall(fn, 1, 2) || !d.IsDateParse(fn.Name) {
				return false
			}
			return !isCast(parent)
		},
		Apply: func(n core.Node) core.Node {
			return n.(*core.FuncCall).Args[0]
		},
	}
}

// CreateProperties drops storage and placement properties from CREATE
// statements, along with the GLOBAL and TEMPORARY modifiers.
func CreateProperties() Rule {
	return Rule{
		Name:        RuleCreateProperties,
		Description: "CREATE properties and temporary modifiers are removed",
		Match: func(n, _ core.Node) bool {
			c, ok := n.(*core.CreateStmt)
			return ok && (len(c.Properties) > 0 || c.Temporary || c.Global)
		},
		Apply: func(n core.Node) core.Node {
			cp := *n.(*core.CreateStmt)
			cp.Properties = nil
			cp.Temporary = false
			cp.Global = false
			return &cp
		},
	}
}

// RedundantCast collapses CAST(CAST(x AS T) AS T) to CAST(x AS T).
func RedundantCast() Rule {
	inner := func(n core.Node) *core.CastExpr {
		outer, ok := n.(*core.CastExpr)
		if !ok {
			return nil
		}
		in, ok := unparen(outer.Expr).(*core.CastExpr)
		if !ok || !in.Type.Equal(outer.Type) {
			return nil
		}
		return in
	}
	return Rule{
		Name:        RuleRedundantCast,
		Description: "CAST(CAST(x AS T) AS T) becomes CAST(x AS T)",
		Match: func(n, _ core.Node) bool {
			return inner(n) != nil
		},
		Apply: func(n core.Node) core.Node {
			cp := *n.(*core.CastExpr)
			cp.Expr = inner(n).Expr
			return &cp
		},
	}
}

// isPlainCall reports whether fn is an ordinary call with between min and
// max arguments and no aggregate or window decoration.
func isPlainCall(fn *core.FuncCall, min, max int) bool {
	if fn.NoParens || fn.Star || fn.Distinct || fn.Over != nil || len(fn.WithinGroup) > 0 {
		return false
	}
	return len(fn.Args) >= min && len(fn.Args) <= max
}

func isCast(n core.Node) bool {
	_, ok := n.(*core.CastExpr)
	return ok
}

// unparen strips any number of enclosing parentheses.
func unparen(e core.Expr) core.Expr {
	for {
		p, ok := e.(*core.ParenExpr)
		if !ok {
			return e
		}
		e = p.Expr
	}
}
