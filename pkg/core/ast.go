package core

import "github.com/leapstack-labs/sqlequiv/pkg/token"

// Node is the interface implemented by every syntax tree node.
//
// The node set is closed: every implementation lives in this package and is
// tagged by a Kind. Children returns the node's child slots in a fixed order;
// a nil entry marks an absent optional child. WithChildren returns a shallow
// copy of the node with its slots replaced and must be given exactly as many
// entries as Children returned.
type Node interface {
	Kind() Kind
	Children() []Node
	WithChildren(children []Node) Node
	Info() *NodeInfo
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for top-level statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// TableRef is a marker interface for FROM clause items.
type TableRef interface {
	Node
	tableRefNode()
}

// QueryBody is a marker interface for what may follow SELECT's WITH clause:
// a select core, a set operation, or a parenthesized query.
type QueryBody interface {
	Node
	queryBodyNode()
}

// NodeInfo provides common fields for all AST nodes.
type NodeInfo struct {
	Span             token.Span
	LeadingComments  []*token.Comment
	TrailingComments []*token.Comment
}

// Info returns the node info itself; embedding it satisfies Node.Info.
func (n *NodeInfo) Info() *NodeInfo {
	return n
}

// AddLeadingComment adds a leading comment to the node.
func (n *NodeInfo) AddLeadingComment(c *token.Comment) {
	n.LeadingComments = append(n.LeadingComments, c)
}

// AddTrailingComment adds a trailing comment to the node.
func (n *NodeInfo) AddTrailingComment(c *token.Comment) {
	n.TrailingComments = append(n.TrailingComments, c)
}

// HasComments reports whether any comment is attached.
func (n *NodeInfo) HasComments() bool {
	return len(n.LeadingComments) > 0 || len(n.TrailingComments) > 0
}

// ClearComments drops all attached comments.
func (n *NodeInfo) ClearComments() {
	n.LeadingComments = nil
	n.TrailingComments = nil
}

// Ident is an identifier as written: its text and whether it was quoted.
type Ident struct {
	Name   string
	Quoted bool
}

// IsZero reports whether the identifier is absent.
func (i Ident) IsZero() bool {
	return i.Name == ""
}

func (i Ident) String() string {
	if i.Quoted {
		return `"` + i.Name + `"`
	}
	return i.Name
}

// slot converts a possibly-nil concrete child pointer into a Node slot that is
// a true nil interface when absent.
func slot[T interface {
	Node
	comparable
}](n T) Node {
	var zero T
	if n == zero {
		return nil
	}
	return n
}

// exprSlot is slot for interface-typed expression fields.
func exprSlot(e Expr) Node {
	if e == nil {
		return nil
	}
	return e
}

// as converts a child slot back to its field type.
func as[T any](n Node) T {
	var zero T
	if n == nil {
		return zero
	}
	return n.(T)
}

// asList converts a run of child slots back into a typed slice.
func asList[T any](nodes []Node) []T {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]T, len(nodes))
	for i, n := range nodes {
		out[i] = as[T](n)
	}
	return out
}

func appendList[T Node](dst []Node, items []T) []Node {
	for _, it := range items {
		dst = append(dst, it)
	}
	return dst
}

func checkArity(kind Kind, got, want int) {
	if got != want {
		panic("core: " + kind.String() + ".WithChildren: wrong number of children")
	}
}
