package core

// ---------- Table Reference Types ----------

// TableName is a possibly qualified table reference with an optional alias.
// Name is the unqualified base name used as the key for name mapping.
type TableName struct {
	NodeInfo
	Catalog Ident
	Schema  Ident
	Name    Ident
	Alias   Ident
}

func (*TableName) tableRefNode() {}

// Kind implements Node.
func (*TableName) Kind() Kind { return KindTableName }

// Children implements Node.
func (*TableName) Children() []Node { return nil }

// WithChildren implements Node.
func (t *TableName) WithChildren(c []Node) Node {
	checkArity(t.Kind(), len(c), 0)
	cp := *t
	return &cp
}

// Parts returns the non-empty name parts, outermost first.
func (t *TableName) Parts() []Ident {
	parts := make([]Ident, 0, 3)
	if !t.Catalog.IsZero() {
		parts = append(parts, t.Catalog)
	}
	if !t.Schema.IsZero() {
		parts = append(parts, t.Schema)
	}
	return append(parts, t.Name)
}

// DerivedTable is a parenthesized subquery in FROM.
type DerivedTable struct {
	NodeInfo
	Query *SelectStmt
	Alias Ident
}

func (*DerivedTable) tableRefNode() {}

// Kind implements Node.
func (*DerivedTable) Kind() Kind { return KindDerivedTable }

// Children implements Node.
func (d *DerivedTable) Children() []Node { return []Node{slot(d.Query)} }

// WithChildren implements Node.
func (d *DerivedTable) WithChildren(c []Node) Node {
	checkArity(d.Kind(), len(c), 1)
	cp := *d
	cp.Query = as[*SelectStmt](c[0])
	return &cp
}

// JoinType is the kind of an explicit join.
type JoinType string

// Join types.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
)

// JoinExpr is an explicit join between two table references.
type JoinExpr struct {
	NodeInfo
	Type    JoinType
	Natural bool
	Left    TableRef
	Right   TableRef
	On      Expr
	Using   []Ident
}

func (*JoinExpr) tableRefNode() {}

// Kind implements Node.
func (*JoinExpr) Kind() Kind { return KindJoinExpr }

// Children implements Node.
func (j *JoinExpr) Children() []Node {
	return []Node{tableSlot(j.Left), tableSlot(j.Right), exprSlot(j.On)}
}

// WithChildren implements Node.
func (j *JoinExpr) WithChildren(c []Node) Node {
	checkArity(j.Kind(), len(c), 3)
	cp := *j
	cp.Left = as[TableRef](c[0])
	cp.Right = as[TableRef](c[1])
	cp.On = as[Expr](c[2])
	return &cp
}

func tableSlot(t TableRef) Node {
	if t == nil {
		return nil
	}
	return t
}
