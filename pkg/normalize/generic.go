package normalize

import (
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/rewrite"
)

// DefaultMaxCNFSize is the largest predicate, in nodes, that CNF conversion
// may produce.
const DefaultMaxCNFSize = 128

type genericOptions struct {
	cnf        bool
	maxCNFSize int
}

// GenericOption configures Generic.
type GenericOption func(*genericOptions)

// WithCNF toggles conversion of WHERE, HAVING and ON predicates to
// conjunctive normal form. It is on by default.
func WithCNF(enabled bool) GenericOption {
	return func(o *genericOptions) { o.cnf = enabled }
}

// WithMaxCNFSize sets the size limit for CNF conversion.
func WithMaxCNFSize(n int) GenericOption {
	return func(o *genericOptions) {
		if n > 0 {
			o.maxCNFSize = n
		}
	}
}

// Generic puts a tree into the final canonical form for dialect d:
// identifiers are folded and quoted only where needed, self-aliases are
// dropped, number literals are canonical, type names use their canonical
// spelling, redundant parentheses are removed and AND/OR chains are
// flattened (and, by default, converted to CNF).
func Generic(n core.Node, d *dialect.Dialect, opts ...GenericOption) core.Node {
	o := genericOptions{cnf: true, maxCNFSize: DefaultMaxCNFSize}
	for _, opt := range opts {
		opt(&o)
	}

	n = rewrite.Transform(n, func(node, _ core.Node) core.Node {
		if e, ok := node.(core.Expr); ok {
			node = unparen(e)
		}
		return normalizeNode(node, d)
	})
	return rewrite.Rewrite(predicateRewriter{opts: o}, n)
}

// normalizeNode canonicalizes the non-child fields of a single node.
func normalizeNode(n core.Node, d *dialect.Dialect) core.Node {
	n = rewrite.MapIdents(n, func(id core.Ident) core.Ident { return normIdent(id, d) })

	switch x := n.(type) {
	case *core.TableName:
		if x.Alias == x.Name {
			cp := *x
			cp.Alias = core.Ident{}
			return &cp
		}

	case *core.SelectItem:
		if col, ok := unparen(x.Expr).(*core.ColumnRef); ok && !x.Alias.IsZero() && normIdent(col.Name, d) == x.Alias {
			cp := *x
			cp.Alias = core.Ident{}
			return &cp
		}

	case *core.ColumnDef:
		cp := *x
		cp.Type = normType(x.Type, d)
		return &cp

	case *core.CastExpr:
		cp := *x
		cp.Type = normType(x.Type, d)
		return &cp

	case *core.Literal:
		switch x.Type {
		case core.LiteralNumber:
			if v := canonicalNumber(x.Value); v != x.Value {
				cp := *x
				cp.Value = v
				return &cp
			}
		case core.LiteralBool, core.LiteralNull:
			if v := strings.ToUpper(x.Value); v != x.Value {
				cp := *x
				cp.Value = v
				return &cp
			}
		}
	}
	return n
}

// normIdent folds an identifier and quotes it only when the folded name
// would not read back as itself.
func normIdent(id core.Ident, d *dialect.Dialect) core.Ident {
	if id.IsZero() {
		return id
	}
	name := d.FoldIdent(id)
	return core.Ident{Name: name, Quoted: d.NeedsQuoting(name)}
}

func normType(dt core.DataType, d *dialect.Dialect) core.DataType {
	return core.DataType{Name: d.CanonicalType(dt.Name), Params: dt.Params}
}

// canonicalNumber renders a numeric literal without leading integer zeros,
// trailing fraction zeros or exponent padding: 007.50E+03 becomes 7.5e3.
func canonicalNumber(s string) string {
	mantissa, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exp = s[:i], s[i+1:]
	}

	intPart, frac, _ := strings.Cut(mantissa, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	frac = strings.TrimRight(frac, "0")

	out := intPart
	if frac != "" {
		out += "." + frac
	}

	if exp == "" {
		return out
	}
	sign := ""
	switch exp[0] {
	case '-':
		sign = "-"
		exp = exp[1:]
	case '+':
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		return out
	}
	return out + "e" + sign + exp
}
