package core

import "github.com/leapstack-labs/sqlequiv/pkg/token"

// ---------- Expression Types ----------

// ColumnRef is a possibly qualified column reference. Unqualified
// pseudo-columns such as Oracle's ROWNUM and SYSDATE also parse as ColumnRef.
type ColumnRef struct {
	NodeInfo
	Qualifier []Ident
	Name      Ident
}

func (*ColumnRef) exprNode() {}

// Kind implements Node.
func (*ColumnRef) Kind() Kind { return KindColumnRef }

// Children implements Node.
func (*ColumnRef) Children() []Node { return nil }

// WithChildren implements Node.
func (c *ColumnRef) WithChildren(ch []Node) Node {
	checkArity(c.Kind(), len(ch), 0)
	cp := *c
	return &cp
}

// LiteralType represents the type of a literal value.
type LiteralType int

// Literal types.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal is a literal value. String values are stored unescaped.
type Literal struct {
	NodeInfo
	Type  LiteralType
	Value string
}

func (*Literal) exprNode() {}

// Kind implements Node.
func (*Literal) Kind() Kind { return KindLiteral }

// Children implements Node.
func (*Literal) Children() []Node { return nil }

// WithChildren implements Node.
func (l *Literal) WithChildren(c []Node) Node {
	checkArity(l.Kind(), len(c), 0)
	cp := *l
	return &cp
}

// UnaryExpr is a prefix operator applied to an expression: NOT, - or +.
type UnaryExpr struct {
	NodeInfo
	Op   token.TokenType
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// Kind implements Node.
func (*UnaryExpr) Kind() Kind { return KindUnaryExpr }

// Children implements Node.
func (u *UnaryExpr) Children() []Node { return []Node{exprSlot(u.Expr)} }

// WithChildren implements Node.
func (u *UnaryExpr) WithChildren(c []Node) Node {
	checkArity(u.Kind(), len(c), 1)
	cp := *u
	cp.Expr = as[Expr](c[0])
	return &cp
}

// BinaryExpr is an infix operator applied to two expressions.
type BinaryExpr struct {
	NodeInfo
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// Kind implements Node.
func (*BinaryExpr) Kind() Kind { return KindBinaryExpr }

// Children implements Node.
func (b *BinaryExpr) Children() []Node { return []Node{exprSlot(b.Left), exprSlot(b.Right)} }

// WithChildren implements Node.
func (b *BinaryExpr) WithChildren(c []Node) Node {
	checkArity(b.Kind(), len(c), 2)
	cp := *b
	cp.Left = as[Expr](c[0])
	cp.Right = as[Expr](c[1])
	return &cp
}

// FuncCall is a function call. Name is stored upper-cased.
// NoParens marks niladic keywords written without parentheses (CURRENT_DATE).
type FuncCall struct {
	NodeInfo
	Name        string
	Distinct    bool
	Star        bool
	NoParens    bool
	Args        []Expr
	WithinGroup []*OrderItem
	Over        *WindowSpec
}

func (*FuncCall) exprNode() {}

// Kind implements Node.
func (*FuncCall) Kind() Kind { return KindFuncCall }

// Children implements Node: Over, Args, then WithinGroup.
func (f *FuncCall) Children() []Node {
	c := appendList([]Node{slot(f.Over)}, f.Args)
	return appendList(c, f.WithinGroup)
}

// WithChildren implements Node.
func (f *FuncCall) WithChildren(c []Node) Node {
	na := len(f.Args)
	checkArity(f.Kind(), len(c), 1+na+len(f.WithinGroup))
	cp := *f
	cp.Over = as[*WindowSpec](c[0])
	cp.Args = asList[Expr](c[1 : 1+na])
	cp.WithinGroup = asList[*OrderItem](c[1+na:])
	return &cp
}

// Arg returns the i-th argument or nil.
func (f *FuncCall) Arg(i int) Expr {
	if i < len(f.Args) {
		return f.Args[i]
	}
	return nil
}

// FrameSpec is a window frame: ROWS|RANGE BETWEEN start AND end.
type FrameSpec struct {
	Type  string // ROWS or RANGE
	Start FrameBound
	End   FrameBound // zero when the frame has a single bound
}

// FrameBound is one edge of a window frame.
type FrameBound struct {
	Kind   string // UNBOUNDED PRECEDING, CURRENT ROW, PRECEDING, FOLLOWING, UNBOUNDED FOLLOWING
	Offset string // numeric offset for PRECEDING/FOLLOWING
}

// WindowSpec is the OVER (...) clause of a window function.
type WindowSpec struct {
	NodeInfo
	PartitionBy []Expr
	OrderBy     []*OrderItem
	Frame       *FrameSpec
}

// Kind implements Node.
func (*WindowSpec) Kind() Kind { return KindWindowSpec }

// Children implements Node: PartitionBy, then OrderBy.
func (w *WindowSpec) Children() []Node {
	return appendList(appendList(nil, w.PartitionBy), w.OrderBy)
}

// WithChildren implements Node.
func (w *WindowSpec) WithChildren(c []Node) Node {
	np := len(w.PartitionBy)
	checkArity(w.Kind(), len(c), np+len(w.OrderBy))
	cp := *w
	cp.PartitionBy = asList[Expr](c[:np])
	cp.OrderBy = asList[*OrderItem](c[np:])
	return &cp
}

// DataType is a type name with optional parameters, e.g. DECIMAL(10, 2).
// Name is stored upper-cased.
type DataType struct {
	Name   string
	Params []string
}

// Equal reports whether two data types are identical.
func (d DataType) Equal(o DataType) bool {
	if d.Name != o.Name || len(d.Params) != len(o.Params) {
		return false
	}
	for i := range d.Params {
		if d.Params[i] != o.Params[i] {
			return false
		}
	}
	return true
}

// CastExpr is CAST(expr AS type). Typed literals (DATE '2020-01-01') parse
// into a CastExpr as well.
type CastExpr struct {
	NodeInfo
	Expr Expr
	Type DataType
}

func (*CastExpr) exprNode() {}

// Kind implements Node.
func (*CastExpr) Kind() Kind { return KindCastExpr }

// Children implements Node.
func (c *CastExpr) Children() []Node { return []Node{exprSlot(c.Expr)} }

// WithChildren implements Node.
func (c *CastExpr) WithChildren(ch []Node) Node {
	checkArity(c.Kind(), len(ch), 1)
	cp := *c
	cp.Expr = as[Expr](ch[0])
	return &cp
}

// CaseExpr is a simple (with Operand) or searched CASE expression.
type CaseExpr struct {
	NodeInfo
	Operand Expr
	Whens   []*WhenClause
	Else    Expr
}

func (*CaseExpr) exprNode() {}

// Kind implements Node.
func (*CaseExpr) Kind() Kind { return KindCaseExpr }

// Children implements Node: Operand, Else, then Whens.
func (c *CaseExpr) Children() []Node {
	return appendList([]Node{exprSlot(c.Operand), exprSlot(c.Else)}, c.Whens)
}

// WithChildren implements Node.
func (c *CaseExpr) WithChildren(ch []Node) Node {
	checkArity(c.Kind(), len(ch), 2+len(c.Whens))
	cp := *c
	cp.Operand = as[Expr](ch[0])
	cp.Else = as[Expr](ch[1])
	cp.Whens = asList[*WhenClause](ch[2:])
	return &cp
}

// WhenClause is one WHEN ... THEN ... arm of a CASE.
type WhenClause struct {
	NodeInfo
	Condition Expr
	Result    Expr
}

// Kind implements Node.
func (*WhenClause) Kind() Kind { return KindWhenClause }

// Children implements Node.
func (w *WhenClause) Children() []Node {
	return []Node{exprSlot(w.Condition), exprSlot(w.Result)}
}

// WithChildren implements Node.
func (w *WhenClause) WithChildren(c []Node) Node {
	checkArity(w.Kind(), len(c), 2)
	cp := *w
	cp.Condition = as[Expr](c[0])
	cp.Result = as[Expr](c[1])
	return &cp
}

// InExpr is expr [NOT] IN (values...) or expr [NOT] IN (subquery).
type InExpr struct {
	NodeInfo
	Expr   Expr
	Not    bool
	Values []Expr
	Query  *SelectStmt
}

func (*InExpr) exprNode() {}

// Kind implements Node.
func (*InExpr) Kind() Kind { return KindInExpr }

// Children implements Node: Expr, Query, then Values.
func (i *InExpr) Children() []Node {
	return appendList([]Node{exprSlot(i.Expr), slot(i.Query)}, i.Values)
}

// WithChildren implements Node.
func (i *InExpr) WithChildren(c []Node) Node {
	checkArity(i.Kind(), len(c), 2+len(i.Values))
	cp := *i
	cp.Expr = as[Expr](c[0])
	cp.Query = as[*SelectStmt](c[1])
	cp.Values = asList[Expr](c[2:])
	return &cp
}

// BetweenExpr is expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	NodeInfo
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) exprNode() {}

// Kind implements Node.
func (*BetweenExpr) Kind() Kind { return KindBetweenExpr }

// Children implements Node.
func (b *BetweenExpr) Children() []Node {
	return []Node{exprSlot(b.Expr), exprSlot(b.Low), exprSlot(b.High)}
}

// WithChildren implements Node.
func (b *BetweenExpr) WithChildren(c []Node) Node {
	checkArity(b.Kind(), len(c), 3)
	cp := *b
	cp.Expr = as[Expr](c[0])
	cp.Low = as[Expr](c[1])
	cp.High = as[Expr](c[2])
	return &cp
}

// IsNullExpr is expr IS [NOT] NULL.
type IsNullExpr struct {
	NodeInfo
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// Kind implements Node.
func (*IsNullExpr) Kind() Kind { return KindIsNullExpr }

// Children implements Node.
func (i *IsNullExpr) Children() []Node { return []Node{exprSlot(i.Expr)} }

// WithChildren implements Node.
func (i *IsNullExpr) WithChildren(c []Node) Node {
	checkArity(i.Kind(), len(c), 1)
	cp := *i
	cp.Expr = as[Expr](c[0])
	return &cp
}

// LikeExpr is expr [NOT] LIKE pattern [ESCAPE esc].
type LikeExpr struct {
	NodeInfo
	Expr    Expr
	Not     bool
	Pattern Expr
	Escape  Expr
}

func (*LikeExpr) exprNode() {}

// Kind implements Node.
func (*LikeExpr) Kind() Kind { return KindLikeExpr }

// Children implements Node.
func (l *LikeExpr) Children() []Node {
	return []Node{exprSlot(l.Expr), exprSlot(l.Pattern), exprSlot(l.Escape)}
}

// WithChildren implements Node.
func (l *LikeExpr) WithChildren(c []Node) Node {
	checkArity(l.Kind(), len(c), 3)
	cp := *l
	cp.Expr = as[Expr](c[0])
	cp.Pattern = as[Expr](c[1])
	cp.Escape = as[Expr](c[2])
	return &cp
}

// ParenExpr is an explicitly parenthesized expression.
type ParenExpr struct {
	NodeInfo
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// Kind implements Node.
func (*ParenExpr) Kind() Kind { return KindParenExpr }

// Children implements Node.
func (p *ParenExpr) Children() []Node { return []Node{exprSlot(p.Expr)} }

// WithChildren implements Node.
func (p *ParenExpr) WithChildren(c []Node) Node {
	checkArity(p.Kind(), len(c), 1)
	cp := *p
	cp.Expr = as[Expr](c[0])
	return &cp
}

// StarExpr is * or qualifier.*.
type StarExpr struct {
	NodeInfo
	Qualifier []Ident
}

func (*StarExpr) exprNode() {}

// Kind implements Node.
func (*StarExpr) Kind() Kind { return KindStarExpr }

// Children implements Node.
func (*StarExpr) Children() []Node { return nil }

// WithChildren implements Node.
func (s *StarExpr) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 0)
	cp := *s
	return &cp
}

// SubqueryExpr is a scalar subquery.
type SubqueryExpr struct {
	NodeInfo
	Query *SelectStmt
}

func (*SubqueryExpr) exprNode() {}

// Kind implements Node.
func (*SubqueryExpr) Kind() Kind { return KindSubqueryExpr }

// Children implements Node.
func (s *SubqueryExpr) Children() []Node { return []Node{slot(s.Query)} }

// WithChildren implements Node.
func (s *SubqueryExpr) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 1)
	cp := *s
	cp.Query = as[*SelectStmt](c[0])
	return &cp
}

// ExistsExpr is [NOT] EXISTS (subquery).
type ExistsExpr struct {
	NodeInfo
	Not   bool
	Query *SelectStmt
}

func (*ExistsExpr) exprNode() {}

// Kind implements Node.
func (*ExistsExpr) Kind() Kind { return KindExistsExpr }

// Children implements Node.
func (e *ExistsExpr) Children() []Node { return []Node{slot(e.Query)} }

// WithChildren implements Node.
func (e *ExistsExpr) WithChildren(c []Node) Node {
	checkArity(e.Kind(), len(c), 1)
	cp := *e
	cp.Query = as[*SelectStmt](c[0])
	return &cp
}

// IntervalExpr is INTERVAL value unit, e.g. INTERVAL '1' DAY.
type IntervalExpr struct {
	NodeInfo
	Value Expr
	Unit  string
}

func (*IntervalExpr) exprNode() {}

// Kind implements Node.
func (*IntervalExpr) Kind() Kind { return KindIntervalExpr }

// Children implements Node.
func (i *IntervalExpr) Children() []Node { return []Node{exprSlot(i.Value)} }

// WithChildren implements Node.
func (i *IntervalExpr) WithChildren(c []Node) Node {
	checkArity(i.Kind(), len(c), 1)
	cp := *i
	cp.Value = as[Expr](c[0])
	return &cp
}

// OuterJoinMarker is Oracle's legacy outer join suffix: col (+).
type OuterJoinMarker struct {
	NodeInfo
	Expr Expr
}

func (*OuterJoinMarker) exprNode() {}

// Kind implements Node.
func (*OuterJoinMarker) Kind() Kind { return KindOuterJoinMarker }

// Children implements Node.
func (o *OuterJoinMarker) Children() []Node { return []Node{exprSlot(o.Expr)} }

// WithChildren implements Node.
func (o *OuterJoinMarker) WithChildren(c []Node) Node {
	checkArity(o.Kind(), len(c), 1)
	cp := *o
	cp.Expr = as[Expr](c[0])
	return &cp
}
