package core

// ---------- Definition Statements ----------

// ObjectKind is the kind of object a CREATE or DROP targets.
type ObjectKind string

// Object kinds.
const (
	ObjectTable ObjectKind = "TABLE"
	ObjectView  ObjectKind = "VIEW"
)

// PropertyStyle distinguishes how a storage property was written.
type PropertyStyle int

// Property styles.
const (
	// PropertyClause is a trailing clause such as ON COMMIT PRESERVE ROWS or TABLESPACE users.
	PropertyClause PropertyStyle = iota
	// PropertyKeyValue is an entry of a WITH (key = value, ...) list.
	PropertyKeyValue
	// PropertyComment is COMMENT 'text'.
	PropertyComment
)

// Property is a dialect-specific storage or placement option of a CREATE
// statement. Value is kept as source text.
type Property struct {
	Style PropertyStyle
	Key   string
	Value string
}

// CreateStmt is CREATE [OR REPLACE] [GLOBAL] [TEMPORARY] TABLE|VIEW name ...
type CreateStmt struct {
	NodeInfo
	Object      ObjectKind
	OrReplace   bool
	Global      bool
	Temporary   bool
	IfNotExists bool
	Name        *TableName
	Columns     []*ColumnDef
	Query       *SelectStmt
	Properties  []Property
}

func (*CreateStmt) stmtNode() {}

// Kind implements Node.
func (*CreateStmt) Kind() Kind { return KindCreateStmt }

// Children implements Node: Name, Query, then Columns.
func (s *CreateStmt) Children() []Node {
	return appendList([]Node{slot(s.Name), slot(s.Query)}, s.Columns)
}

// WithChildren implements Node.
func (s *CreateStmt) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 2+len(s.Columns))
	cp := *s
	cp.Name = as[*TableName](c[0])
	cp.Query = as[*SelectStmt](c[1])
	cp.Columns = asList[*ColumnDef](c[2:])
	return &cp
}

// ColumnDef is a column definition inside CREATE TABLE.
type ColumnDef struct {
	NodeInfo
	Name       Ident
	Type       DataType
	NotNull    bool
	PrimaryKey bool
	Default    Expr
}

// Kind implements Node.
func (*ColumnDef) Kind() Kind { return KindColumnDef }

// Children implements Node.
func (c *ColumnDef) Children() []Node { return []Node{exprSlot(c.Default)} }

// WithChildren implements Node.
func (c *ColumnDef) WithChildren(ch []Node) Node {
	checkArity(c.Kind(), len(ch), 1)
	cp := *c
	cp.Default = as[Expr](ch[0])
	return &cp
}

// DropStmt is DROP TABLE|VIEW [IF EXISTS] name [CASCADE] [PURGE].
type DropStmt struct {
	NodeInfo
	Object   ObjectKind
	IfExists bool
	Name     *TableName
	Cascade  bool
	Purge    bool
}

func (*DropStmt) stmtNode() {}

// Kind implements Node.
func (*DropStmt) Kind() Kind { return KindDropStmt }

// Children implements Node.
func (s *DropStmt) Children() []Node { return []Node{slot(s.Name)} }

// WithChildren implements Node.
func (s *DropStmt) WithChildren(c []Node) Node {
	checkArity(s.Kind(), len(c), 1)
	cp := *s
	cp.Name = as[*TableName](c[0])
	return &cp
}
