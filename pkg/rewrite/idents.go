package rewrite

import "github.com/leapstack-labs/sqlequiv/pkg/core"

// MapIdents returns a copy of n with f applied to every identifier the node
// holds directly: names, qualifiers, aliases and column lists. Children are
// not visited and absent identifiers are skipped. Nodes without
// identifiers are returned as is.
func MapIdents(n core.Node, f func(core.Ident) core.Ident) core.Node {
	one := func(id core.Ident) core.Ident {
		if id.IsZero() {
			return id
		}
		return f(id)
	}
	list := func(ids []core.Ident) []core.Ident {
		if len(ids) == 0 {
			return ids
		}
		out := make([]core.Ident, len(ids))
		for i, id := range ids {
			out[i] = one(id)
		}
		return out
	}

	switch x := n.(type) {
	case *core.ColumnRef:
		cp := *x
		cp.Qualifier = list(x.Qualifier)
		cp.Name = one(x.Name)
		return &cp
	case *core.StarExpr:
		if len(x.Qualifier) == 0 {
			return x
		}
		cp := *x
		cp.Qualifier = list(x.Qualifier)
		return &cp
	case *core.TableName:
		cp := *x
		cp.Catalog = one(x.Catalog)
		cp.Schema = one(x.Schema)
		cp.Name = one(x.Name)
		cp.Alias = one(x.Alias)
		return &cp
	case *core.DerivedTable:
		if x.Alias.IsZero() {
			return x
		}
		cp := *x
		cp.Alias = one(x.Alias)
		return &cp
	case *core.JoinExpr:
		if len(x.Using) == 0 {
			return x
		}
		cp := *x
		cp.Using = list(x.Using)
		return &cp
	case *core.SelectItem:
		if x.Alias.IsZero() {
			return x
		}
		cp := *x
		cp.Alias = one(x.Alias)
		return &cp
	case *core.CTE:
		cp := *x
		cp.Name = one(x.Name)
		cp.Columns = list(x.Columns)
		return &cp
	case *core.InsertStmt:
		if len(x.Columns) == 0 {
			return x
		}
		cp := *x
		cp.Columns = list(x.Columns)
		return &cp
	case *core.Assignment:
		cp := *x
		cp.Column = one(x.Column)
		return &cp
	case *core.ColumnDef:
		cp := *x
		cp.Name = one(x.Name)
		return &cp
	}
	return n
}
