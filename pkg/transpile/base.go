package transpile

import (
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/rewrite"
)

// FuncHandler rewrites one function call. It returns an *Error (built with
// BaseTranslator.Errorf) when the call cannot be translated.
type FuncHandler func(fn *core.FuncCall) (core.Expr, error)

// ColumnHandler rewrites an unqualified pseudo-column such as SYSDATE.
type ColumnHandler func(col *core.ColumnRef) (core.Expr, error)

// StmtHandler rewrites a whole query before its parts are translated.
type StmtHandler func(stmt *core.SelectStmt) (*core.SelectStmt, error)

// TypeMapping is the target spelling of a source type name.
type TypeMapping struct {
	Name string
	// DropParams discards the source type's length or precision.
	DropParams bool
}

// BaseTranslator provides the shared tree walk for table-driven
// translators. Lookups use upper-case names.
type BaseTranslator struct {
	from string
	to   string

	// Function mappings: source name -> target name
	functionRenames map[string]string

	// Functions that need special handling (argument reordering, etc.)
	specialFunctions map[string]FuncHandler

	// Pseudo-columns: SYSDATE -> CURRENT_TIMESTAMP
	pseudoColumns map[string]ColumnHandler

	// Type mappings for casts and column definitions
	typeMappings map[string]TypeMapping

	// Functions with no target equivalent, by name or name prefix
	unsupported        map[string]bool
	unsupportedPrefix  []string
	stmtHandlers       []StmtHandler
	foldIdent          func(core.Ident) core.Ident
	dropTableClauses   bool
	outerJoinMarkerErr string
}

// NewBaseTranslator creates an empty translator for a dialect pair.
func NewBaseTranslator(from, to string) *BaseTranslator {
	return &BaseTranslator{
		from:             from,
		to:               to,
		functionRenames:  make(map[string]string),
		specialFunctions: make(map[string]FuncHandler),
		pseudoColumns:    make(map[string]ColumnHandler),
		typeMappings:     make(map[string]TypeMapping),
		unsupported:      make(map[string]bool),
	}
}

// From implements Translator.
func (b *BaseTranslator) From() string { return b.from }

// To implements Translator.
func (b *BaseTranslator) To() string { return b.to }

// Errorf builds a translation error for this dialect pair.
func (b *BaseTranslator) Errorf(msg string) *Error {
	return &Error{From: b.from, To: b.to, Message: msg}
}

// Translate implements Translator.
func (b *BaseTranslator) Translate(stmt core.Stmt) (core.Stmt, error) {
	var firstErr error
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	out := rewrite.Transform(stmt, func(n, _ core.Node) core.Node {
		if firstErr != nil {
			return n
		}
		replaced, err := b.translateNode(n)
		if err != nil {
			fail(err)
			return n
		}
		return replaced
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out.(core.Stmt), nil
}

func (b *BaseTranslator) translateNode(n core.Node) (core.Node, error) {
	if b.foldIdent != nil {
		n = rewrite.MapIdents(n, b.foldIdent)
	}

	switch x := n.(type) {
	case *core.SelectStmt:
		for _, h := range b.stmtHandlers {
			var err error
			if x, err = h(x); err != nil {
				return nil, err
			}
		}
		return x, nil

	case *core.FuncCall:
		return b.translateFunc(x)

	case *core.ColumnRef:
		if len(x.Qualifier) == 0 && !x.Name.Quoted {
			if h, ok := b.pseudoColumns[strings.ToUpper(x.Name.Name)]; ok {
				return h(x)
			}
		}
		return x, nil

	case *core.CastExpr:
		cp := *x
		cp.Type = b.mapType(x.Type)
		return &cp, nil

	case *core.ColumnDef:
		cp := *x
		cp.Type = b.mapType(x.Type)
		return &cp, nil

	case *core.CreateStmt:
		if !b.dropTableClauses || len(x.Properties) == 0 {
			return x, nil
		}
		cp := *x
		cp.Properties = nil
		for _, p := range x.Properties {
			if p.Style != core.PropertyClause {
				cp.Properties = append(cp.Properties, p)
			}
		}
		return &cp, nil

	case *core.OuterJoinMarker:
		if b.outerJoinMarkerErr != "" {
			return nil, b.Errorf(b.outerJoinMarkerErr)
		}
	}
	return n, nil
}

func (b *BaseTranslator) translateFunc(fn *core.FuncCall) (core.Node, error) {
	name := fn.Name
	if b.isUnsupported(name) {
		return nil, b.Errorf(name + " has no " + b.to + " equivalent")
	}
	if h, ok := b.specialFunctions[name]; ok {
		return h(fn)
	}
	if target, ok := b.functionRenames[name]; ok {
		cp := *fn
		cp.Name = target
		return &cp, nil
	}
	return fn, nil
}

func (b *BaseTranslator) isUnsupported(name string) bool {
	if b.unsupported[name] {
		return true
	}
	for _, prefix := range b.unsupportedPrefix {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (b *BaseTranslator) mapType(dt core.DataType) core.DataType {
	m, ok := b.typeMappings[dt.Name]
	if !ok {
		return dt
	}
	out := core.DataType{Name: m.Name}
	if !m.DropParams {
		out.Params = dt.Params
	}
	return out
}
