package parser

import (
	"sort"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// Decorate attaches comments to statements, select cores, select items and
// table references based on position. A comment ending on a line before a
// node starts becomes leading; one starting on the line a node ends becomes
// trailing. Comments that fit no node trail the closest statement before
// them, or the first statement.
func Decorate(stmts []core.Stmt, comments []*token.Comment) {
	if len(comments) == 0 || len(stmts) == 0 {
		return
	}

	d := &decorator{
		comments: comments,
		used:     make([]bool, len(comments)),
	}
	for _, stmt := range stmts {
		d.collect(stmt)
	}
	// outer nodes stay ahead of inner ones that start at the same offset
	sort.SliceStable(d.nodes, func(i, j int) bool {
		return d.nodes[i].Span.Start.Offset < d.nodes[j].Span.Start.Offset
	})
	for _, info := range d.nodes {
		d.attachComments(info)
	}

	for i, c := range d.comments {
		if d.used[i] {
			continue
		}
		owner := stmts[0]
		for _, stmt := range stmts {
			span := stmt.Info().Span
			if span.IsValid() && span.Start.Offset <= c.Span.Start.Offset {
				owner = stmt
			}
		}
		owner.Info().AddTrailingComment(c)
	}
}

type decorator struct {
	comments []*token.Comment
	used     []bool
	nodes    []*core.NodeInfo
}

// collect gathers the decoratable nodes of a subtree in pre-order.
func (d *decorator) collect(n core.Node) {
	if n == nil {
		return
	}
	if decorated(n) && n.Info().Span.IsValid() {
		d.nodes = append(d.nodes, n.Info())
	}
	for _, child := range n.Children() {
		d.collect(child)
	}
}

// decorated reports whether comments may attach to n.
func decorated(n core.Node) bool {
	switch n.(type) {
	case core.Stmt, core.TableRef, *core.SelectCore, *core.SelectItem, *core.CTE, *core.ColumnDef:
		return true
	}
	return false
}

func (d *decorator) attachComments(node *core.NodeInfo) {
	span := node.Span

	for i, c := range d.comments {
		if d.used[i] {
			continue
		}

		// Leading: comment ends before node starts, on previous line
		if c.Span.End.Offset <= span.Start.Offset &&
			c.Span.End.Line < span.Start.Line {
			node.AddLeadingComment(c)
			d.used[i] = true
			continue
		}

		// Trailing: comment starts after node ends, on same line
		if c.Span.Start.Offset >= span.End.Offset &&
			c.Span.Start.Line == span.End.Line {
			node.AddTrailingComment(c)
			d.used[i] = true
		}
	}
}
