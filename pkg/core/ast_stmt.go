package core

// ---------- Query Statements ----------

// SelectStmt is a complete query: optional WITH, a body, and the ordering and
// row limiting that apply to the body as a whole.
type SelectStmt struct {
	NodeInfo
	With    *WithClause
	Body    QueryBody
	OrderBy []*OrderItem
	Limit   Expr
	Offset  Expr
}

func (*SelectStmt) stmtNode()      {}
func (*SelectStmt) queryBodyNode() {}

// Kind implements Node.
func (*SelectStmt) Kind() Kind { return KindSelectStmt }

// Children implements Node: With, Body, Limit, Offset, then OrderBy items.
func (s *SelectStmt) Children() []Node {
	c := []Node{slot(s.With), s.bodySlot(), exprSlot(s.Limit), exprSlot(s.Offset)}
	return appendList(c, s.OrderBy)
}

func (s *SelectStmt) bodySlot() Node {
	if s.Body == nil {
		return nil
	}
	return s.Body
}

// WithChildren implements Node.
func (s *SelectStmt) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 4+len(s.OrderBy))
	cp := *s
	cp.With = as[*WithClause](c[0])
	cp.Body = as[QueryBody](c[1])
	cp.Limit = as[Expr](c[2])
	cp.Offset = as[Expr](c[3])
	cp.OrderBy = asList[*OrderItem](c[4:])
	return &cp
}

// WithClause holds common table expressions.
type WithClause struct {
	NodeInfo
	Recursive bool
	CTEs      []*CTE
}

// Kind implements Node.
func (*WithClause) Kind() Kind { return KindWithClause }

// Children implements Node.
func (w *WithClause) Children() []Node { return appendList(nil, w.CTEs) }

// WithChildren implements Node.
func (w *WithClause) WithChildren(c []Node) Node {
	checkArity(w.Kind(), len(c), len(w.CTEs))
	cp := *w
	cp.CTEs = asList[*CTE](c)
	return &cp
}

// CTE is a single named subquery in a WITH clause.
type CTE struct {
	NodeInfo
	Name    Ident
	Columns []Ident
	Query   *SelectStmt
}

// Kind implements Node.
func (*CTE) Kind() Kind { return KindCTE }

// Children implements Node.
func (c *CTE) Children() []Node { return []Node{slot(c.Query)} }

// WithChildren implements Node.
func (c *CTE) WithChildren(ch []Node) Node {
	checkArity(c.Kind(), len(ch), 1)
	cp := *c
	cp.Query = as[*SelectStmt](ch[0])
	return &cp
}

// SetOpType is UNION, INTERSECT or EXCEPT.
type SetOpType string

// Set operation types. Oracle's MINUS parses as SetExcept.
const (
	SetUnion     SetOpType = "UNION"
	SetIntersect SetOpType = "INTERSECT"
	SetExcept    SetOpType = "EXCEPT"
)

// SetOperation combines two query bodies.
type SetOperation struct {
	NodeInfo
	Op    SetOpType
	All   bool
	Left  QueryBody
	Right QueryBody
}

func (*SetOperation) queryBodyNode() {}

// Kind implements Node.
func (*SetOperation) Kind() Kind { return KindSetOperation }

// Children implements Node.
func (s *SetOperation) Children() []Node { return []Node{s.Left, s.Right} }

// WithChildren implements Node.
func (s *SetOperation) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 2)
	cp := *s
	cp.Left = as[QueryBody](c[0])
	cp.Right = as[QueryBody](c[1])
	return &cp
}

// SelectCore is a single SELECT ... FROM ... WHERE ... GROUP BY ... HAVING block.
// From holds comma-separated items; explicit joins nest inside a JoinExpr.
type SelectCore struct {
	NodeInfo
	Distinct bool
	Columns  []*SelectItem
	From     []TableRef
	Where    Expr
	GroupBy  []Expr
	Having   Expr
}

func (*SelectCore) queryBodyNode() {}

// Kind implements Node.
func (*SelectCore) Kind() Kind { return KindSelectCore }

// Children implements Node: Where, Having, Columns, From, GroupBy.
func (s *SelectCore) Children() []Node {
	c := []Node{exprSlot(s.Where), exprSlot(s.Having)}
	c = appendList(c, s.Columns)
	c = appendList(c, s.From)
	return appendList(c, s.GroupBy)
}

// WithChildren implements Node.
func (s *SelectCore) WithChildren(c []Node) Node {
	nc, nf := len(s.Columns), len(s.From)
	checkArity(s.Kind(), len(c), 2+nc+nf+len(s.GroupBy))
	cp := *s
	cp.Where = as[Expr](c[0])
	cp.Having = as[Expr](c[1])
	cp.Columns = asList[*SelectItem](c[2 : 2+nc])
	cp.From = asList[TableRef](c[2+nc : 2+nc+nf])
	cp.GroupBy = asList[Expr](c[2+nc+nf:])
	return &cp
}

// SelectItem is one entry of the select list.
type SelectItem struct {
	NodeInfo
	Expr  Expr
	Alias Ident
}

// Kind implements Node.
func (*SelectItem) Kind() Kind { return KindSelectItem }

// Children implements Node.
func (s *SelectItem) Children() []Node { return []Node{exprSlot(s.Expr)} }

// WithChildren implements Node.
func (s *SelectItem) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 1)
	cp := *s
	cp.Expr = as[Expr](c[0])
	return &cp
}

// NullsOrder is the NULLS FIRST/LAST modifier of an ORDER BY item.
type NullsOrder int

// Null ordering options.
const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// OrderItem is one ORDER BY entry.
type OrderItem struct {
	NodeInfo
	Expr  Expr
	Desc  bool
	Nulls NullsOrder
}

// Kind implements Node.
func (*OrderItem) Kind() Kind { return KindOrderItem }

// Children implements Node.
func (o *OrderItem) Children() []Node { return []Node{exprSlot(o.Expr)} }

// WithChildren implements Node.
func (o *OrderItem) WithChildren(c []Node) Node {
	checkArity(o.Kind(), len(c), 1)
	cp := *o
	cp.Expr = as[Expr](c[0])
	return &cp
}

// ---------- Data Modification ----------

// InsertStmt is INSERT INTO table [(cols)] VALUES ... | query.
type InsertStmt struct {
	NodeInfo
	Table   *TableName
	Columns []Ident
	Rows    []*ValuesRow
	Query   *SelectStmt
}

func (*InsertStmt) stmtNode() {}

// Kind implements Node.
func (*InsertStmt) Kind() Kind { return KindInsertStmt }

// Children implements Node: Table, Query, then Rows.
func (s *InsertStmt) Children() []Node {
	return appendList([]Node{slot(s.Table), slot(s.Query)}, s.Rows)
}

// WithChildren implements Node.
func (s *InsertStmt) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 2+len(s.Rows))
	cp := *s
	cp.Table = as[*TableName](c[0])
	cp.Query = as[*SelectStmt](c[1])
	cp.Rows = asList[*ValuesRow](c[2:])
	return &cp
}

// ValuesRow is one parenthesized row of a VALUES list.
type ValuesRow struct {
	NodeInfo
	Values []Expr
}

// Kind implements Node.
func (*ValuesRow) Kind() Kind { return KindValuesRow }

// Children implements Node.
func (v *ValuesRow) Children() []Node { return appendList(nil, v.Values) }

// WithChildren implements Node.
func (v *ValuesRow) WithChildren(c []Node) Node {
	checkArity(v.Kind(), len(c), len(v.Values))
	cp := *v
	cp.Values = asList[Expr](c)
	return &cp
}

// UpdateStmt is UPDATE table SET col = expr, ... [WHERE expr].
type UpdateStmt struct {
	NodeInfo
	Table *TableName
	Set   []*Assignment
	Where Expr
}

func (*UpdateStmt) stmtNode() {}

// Kind implements Node.
func (*UpdateStmt) Kind() Kind { return KindUpdateStmt }

// Children implements Node: Table, Where, then Set.
func (s *UpdateStmt) Children() []Node {
	return appendList([]Node{slot(s.Table), exprSlot(s.Where)}, s.Set)
}

// WithChildren implements Node.
func (s *UpdateStmt) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 2+len(s.Set))
	cp := *s
	cp.Table = as[*TableName](c[0])
	cp.Where = as[Expr](c[1])
	cp.Set = asList[*Assignment](c[2:])
	return &cp
}

// Assignment is one column = value pair of an UPDATE.
type Assignment struct {
	NodeInfo
	Column Ident
	Value  Expr
}

// Kind implements Node.
func (*Assignment) Kind() Kind { return KindAssignment }

// Children implements Node.
func (a *Assignment) Children() []Node { return []Node{exprSlot(a.Value)} }

// WithChildren implements Node.
func (a *Assignment) WithChildren(c []Node) Node {
	checkArity(a.Kind(), len(c), 1)
	cp := *a
	cp.Value = as[Expr](c[0])
	return &cp
}

// DeleteStmt is DELETE FROM table [WHERE expr].
type DeleteStmt struct {
	NodeInfo
	Table *TableName
	Where Expr
}

func (*DeleteStmt) stmtNode() {}

// Kind implements Node.
func (*DeleteStmt) Kind() Kind { return KindDeleteStmt }

// Children implements Node.
func (s *DeleteStmt) Children() []Node { return []Node{slot(s.Table), exprSlot(s.Where)} }

// WithChildren implements Node.
func (s *DeleteStmt) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 2)
	cp := *s
	cp.Table = as[*TableName](c[0])
	cp.Where = as[Expr](c[1])
	return &cp
}
